package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/agentic/server/agentic/accounts"
	"codeberg.org/agentic/server/agentic/bots"
	"codeberg.org/agentic/server/agentic/logintokens"
	"codeberg.org/agentic/server/agentic/notes"
	"codeberg.org/agentic/server/agentic/sharednotes"
	"codeberg.org/agentic/server/agentic/users"
	"codeberg.org/agentic/server/internal/config"
	"codeberg.org/agentic/server/internal/identity"
	"codeberg.org/agentic/server/internal/logger"
	"codeberg.org/agentic/server/internal/mailer"
	"codeberg.org/agentic/server/internal/objstore"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// keep the pool small; hosted poolers allow few connections
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// simple protocol for PgBouncer transaction mode, which does not
	// support prepared statements
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	userRepo := users.NewRepository(db)
	accountRepo := accounts.NewRepository(db)
	noteRepo := notes.NewRepository(db)
	shareRepo := sharednotes.NewRepository(db)
	tokenRepo := logintokens.NewRepository(db)

	resolver := identity.NewResolver(userRepo, accountRepo, tokenRepo)

	catalog, err := bots.NewCatalog()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load agent catalog: %w", err)
	}

	var objects objstore.Store = objstore.Disabled{}
	if cfg.S3Bucket != "" {
		client, err := objstore.New(ctx, cfg)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize object storage: %w", err)
		}
		objects = client
	} else {
		logger.Warn("no S3 bucket configured, avatar uploads are disabled")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	server := &Server{
		db:        db,
		config:    cfg,
		router:    router,
		catalog:   catalog,
		userRepo:  userRepo,
		noteRepo:  noteRepo,
		shareRepo: shareRepo,
		tokenRepo: tokenRepo,
		resolver:  resolver,
		mail:      mailer.New(cfg),
		objects:   objects,
	}

	RegisterRoutes(router, server)

	return server, nil
}
