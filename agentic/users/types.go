package users

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles user database operations
type Repository struct {
	db *pgxpool.Pool
}

// represents a registered account.
// PasswordHash is nil for accounts created through an OAuth provider or a
// magic link only; at least one sign-in method always resolves the user.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	AvatarURL    *string    `json:"avatar_url"`
	PasswordHash *string    `json:"-"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

var (
	// returned when no user matches the lookup key
	ErrNotFound = errors.New("user not found")

	// returned when a signup email is already registered
	ErrEmailTaken = errors.New("email already registered")

	// returned when a reset token does not match any live token pair
	ErrTokenInvalid = errors.New("reset token invalid or expired")
)
