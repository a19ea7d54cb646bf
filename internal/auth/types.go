package auth

import (
	"context"

	"codeberg.org/agentic/server/agentic/users"
	"github.com/golang-jwt/jwt/v5"
)

// session cookie carrying the signed token
const CookieName = "auth_token"

// represents the session token claims. Name and AvatarURL are snapshots of
// the user row at issuance time; they can go stale until the next refresh
// or re-login. Role is carried for display only; authorization always
// re-reads the store (see Middleware).
type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// the slice of the users repository the middleware needs
type UserFinder interface {
	FindByID(ctx context.Context, userID string) (*users.User, error)
}
