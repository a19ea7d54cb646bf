package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/agentic/server/internal/auth"
	"codeberg.org/agentic/server/internal/config"
	"codeberg.org/agentic/server/internal/logger"
	"codeberg.org/agentic/server/internal/migrations"
)

// @title Agentic API
// @version 1.0
// @description Account and workspace backend for the agent directory
// @description
// @description Features:
// @description - Password, OAuth (Google, GitHub) and magic-link sign-in
// @description - Stateless cookie sessions
// @description - Per-user notes on catalog agents, with public share snapshots
// @description - Avatar uploads to object storage

// @contact.name API Support
// @contact.url https://codeberg.org/agentic/server

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authenticated requests. Format: Bearer {token}

// how often expired magic-link tokens are swept
const tokenSweepInterval = time.Hour

func main() {
	logger.Info("starting agentic server")

	// load configuration from environment
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	// initialize OAuth providers
	if err := auth.InitializeProviders(cfg); err != nil {
		logger.Fatal("failed to initialize OAuth providers", "error", err)
	}

	// bring the schema up to date before serving traffic
	if err := migrations.Run(context.Background(), cfg.DatabaseURL); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}

	// create server with all dependencies
	srv, err := NewServer(cfg)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      srv.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// start server in goroutine
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	// sweep expired login tokens in the background
	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	go sweepLoginTokens(sweepCtx, srv)

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sweepCancel()

	logger.Info("shutting down server")

	// graceful shutdown with 10 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	// close database connection
	srv.db.Close()

	logger.Info("server stopped")
}

// deletes expired magic-link tokens on a fixed interval until the
// context is cancelled
func sweepLoginTokens(ctx context.Context, srv *Server) {
	ticker := time.NewTicker(tokenSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			n, err := srv.tokenRepo.DeleteExpired(ctx)
			if err != nil {
				logger.ErrorErr(err, "failed to sweep login tokens")
				continue
			}

			if n > 0 {
				logger.Debug("swept expired login tokens", "count", n)
			}
		}
	}
}
