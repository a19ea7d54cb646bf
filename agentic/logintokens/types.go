package logintokens

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles magic-link login token database operations
type Repository struct {
	db *pgxpool.Pool
}

// tokens live for this long before a fresh request is needed
const TokenTTLMinutes = 15

// returned when a token is unknown, already consumed, or expired
var ErrInvalidOrExpired = errors.New("login token invalid or expired")
