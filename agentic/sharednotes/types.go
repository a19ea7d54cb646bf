package sharednotes

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles shared note database operations
type Repository struct {
	db *pgxpool.Pool
}

// an immutable, publicly fetchable snapshot of a note
type SharedNote struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	BotID     string    `json:"bot_id"`
	BotName   string    `json:"bot_name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// returned when no shared note matches the public id
var ErrNotFound = errors.New("shared note not found")
