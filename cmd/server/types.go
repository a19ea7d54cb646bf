package main

import (
	"codeberg.org/agentic/server/agentic/bots"
	"codeberg.org/agentic/server/agentic/logintokens"
	"codeberg.org/agentic/server/agentic/notes"
	"codeberg.org/agentic/server/agentic/sharednotes"
	"codeberg.org/agentic/server/agentic/users"
	"codeberg.org/agentic/server/internal/config"
	"codeberg.org/agentic/server/internal/identity"
	"codeberg.org/agentic/server/internal/mailer"
	"codeberg.org/agentic/server/internal/objstore"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// holds all dependencies and state for the API server
type Server struct {
	db        *pgxpool.Pool
	config    *config.Config
	router    *gin.Engine
	catalog   *bots.Catalog
	userRepo  *users.Repository
	noteRepo  *notes.Repository
	shareRepo *sharednotes.Repository
	tokenRepo *logintokens.Repository
	resolver  *identity.Resolver
	mail      mailer.Sender
	objects   objstore.Store
}
