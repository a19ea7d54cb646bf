package notes

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles note database operations
type Repository struct {
	db *pgxpool.Pool
}

// one scratchpad per user per agent, keyed (user_id, bot_id)
type Note struct {
	UserID    string    `json:"user_id"`
	BotID     string    `json:"bot_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// returned when the user has no note for the agent
var ErrNotFound = errors.New("note not found")
