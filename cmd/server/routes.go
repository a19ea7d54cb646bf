package main

import (
	authapi "codeberg.org/agentic/server/api/rest/auth"
	botsapi "codeberg.org/agentic/server/api/rest/bots"
	contactapi "codeberg.org/agentic/server/api/rest/contact"
	"codeberg.org/agentic/server/api/rest/health"
	notesapi "codeberg.org/agentic/server/api/rest/notes"
	userapi "codeberg.org/agentic/server/api/rest/user"
	"codeberg.org/agentic/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware(server.config))
	router.GET("/health", health.Handler)

	authed := auth.Middleware(server.userRepo)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		// credential and email flows get a tighter rate limit than the
		// rest of the API
		limited := v1.Group("", RateLimitMiddleware("20-M"))
		authapi.RegisterRoutes(limited, server.userRepo, server.tokenRepo, server.resolver, server.mail, authed)
		contactapi.RegisterRoutes(limited, server.mail)

		userapi.RegisterRoutes(v1, server.userRepo, server.objects, server.config.MaxAvatarBytes, authed)
		notesapi.RegisterRoutes(v1, server.noteRepo, server.shareRepo, server.catalog, authed)
		botsapi.RegisterRoutes(v1, server.catalog)
	}
}
