package user

import (
	"context"

	"codeberg.org/agentic/server/agentic/users"
)

// UserStore is the slice of the users repository the profile handlers need
type UserStore interface {
	FindByID(ctx context.Context, userID string) (*users.User, error)
	UpdateName(ctx context.Context, userID, name string) (*users.User, error)
	UpdateAvatar(ctx context.Context, userID, avatarURL string) (*users.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	Delete(ctx context.Context, userID string) error
}

// ChangePasswordRequest re-verifies the current password before replacing it
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// UpdateNameRequest for display name changes
type UpdateNameRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// UserResponse wraps user data
type UserResponse struct {
	User *users.User `json:"user"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}
