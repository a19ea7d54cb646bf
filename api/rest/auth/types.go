package auth

import (
	"context"
	"time"

	"codeberg.org/agentic/server/agentic/users"
	"codeberg.org/agentic/server/internal/identity"
)

// UserStore is the slice of the users repository the auth handlers need
type UserStore interface {
	Create(ctx context.Context, email, name string, passwordHash, avatarURL *string) (*users.User, error)
	FindByID(ctx context.Context, userID string) (*users.User, error)
	SetResetToken(ctx context.Context, email, tokenHash string, expires time.Time) error
	ConsumeResetToken(ctx context.Context, tokenHash, newPasswordHash string) error
}

// TokenStore records single-use sign-in tokens
type TokenStore interface {
	Create(ctx context.Context, email, tokenHash string, expiresAt time.Time) error
}

// UserResolver turns a sign-in attempt into a canonical user
type UserResolver interface {
	Resolve(ctx context.Context, attempt identity.Attempt) (*users.User, error)
}

// SignupRequest for password-based account creation
type SignupRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignInRequest for password-based sign-in
type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// EmailRequest for the magic-link and forgot-password flows
type EmailRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResetPasswordRequest consumes a reset token
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse returned after a successful sign-in
type AuthResponse struct {
	User *users.User `json:"user"`
}

// UserResponse wraps user data
type UserResponse struct {
	User *users.User `json:"user"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}
