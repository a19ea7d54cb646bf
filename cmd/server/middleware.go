package main

import (
	"time"

	"codeberg.org/agentic/server/internal/config"
	"codeberg.org/agentic/server/internal/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// configures CORS for browser clients. Credentials are allowed because
// the session travels in a cookie.
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins: []string{
			cfg.BaseURL,
			"http://localhost:3000",
			"http://localhost:8080",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	return cors.New(corsConfig)
}

// returns an in-memory rate limiting middleware for the given rate,
// e.g. "20-M" for twenty requests per minute per client IP
func RateLimitMiddleware(format string) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(format)
	if err != nil {
		logger.Fatal("invalid rate limit format", "format", format, "error", err)
	}

	return mgin.NewMiddleware(limiter.New(memory.NewStore(), rate))
}
