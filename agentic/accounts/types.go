package accounts

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles OAuth linkage database operations
type Repository struct {
	db *pgxpool.Pool
}

// ties an external provider account to a local user.
// Rows are never deleted directly; they cascade with the user.
type Account struct {
	UserID            string    `json:"user_id"`
	Provider          string    `json:"provider"`
	ProviderAccountID string    `json:"provider_account_id"`
	AccessToken       string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// returned when no linkage matches (provider, provider account id)
var ErrNotFound = errors.New("oauth account not found")
