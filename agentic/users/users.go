package users

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new user repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// row is satisfied by both pgx.Row and pgx.Rows
type row interface {
	Scan(dest ...any) error
}

func scanUser(r row) (*User, error) {
	var user User

	err := r.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.AvatarURL,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// creates a user with an optional password hash and avatar.
// passwordHash is nil for accounts resolved through an external provider.
func (r *Repository) Create(ctx context.Context, email, name string, passwordHash, avatarURL *string) (*User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, queryCreate, email, name, passwordHash, avatarURL))

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return nil, ErrEmailTaken
	}

	return user, err
}

// returns the user for the email, creating a passwordless account on first
// sign-in. Used by the magic-link flow.
func (r *Repository) FindOrCreateByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, queryFindOrCreateByEmail, email))
}

// finds a user by their ID
func (r *Repository) FindByID(ctx context.Context, userID string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, queryFindByID, userID))
}

// finds a user by email, case-insensitively
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, queryFindByEmail, email))
}

// updates the user's display name
func (r *Repository) UpdateName(ctx context.Context, userID, name string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, queryUpdateName, name, userID))
}

// updates the user's avatar URL
func (r *Repository) UpdateAvatar(ctx context.Context, userID, avatarURL string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, queryUpdateAvatar, avatarURL, userID))
}

// replaces the user's password hash
func (r *Repository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	tag, err := r.db.Exec(ctx, queryUpdatePassword, passwordHash, userID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// stores a hashed reset token and its expiry on the user row
func (r *Repository) SetResetToken(ctx context.Context, email, tokenHash string, expires time.Time) error {
	tag, err := r.db.Exec(ctx, querySetResetToken, tokenHash, expires, email)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// sets the new password and clears the token pair in one statement.
// A consumed or expired token matches zero rows, so a second use fails.
func (r *Repository) ConsumeResetToken(ctx context.Context, tokenHash, newPasswordHash string) error {
	tag, err := r.db.Exec(ctx, queryConsumeResetToken, tokenHash, newPasswordHash)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrTokenInvalid
	}

	return nil
}

// deletes the user row; linked accounts, notes and tokens cascade
func (r *Repository) Delete(ctx context.Context, userID string) error {
	tag, err := r.db.Exec(ctx, queryDelete, userID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
