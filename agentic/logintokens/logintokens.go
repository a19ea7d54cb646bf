package logintokens

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new login token repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// stores a hashed single-use token for the email
func (r *Repository) Create(ctx context.Context, email, tokenHash string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, queryCreate, uuid.NewString(), email, tokenHash, expiresAt)
	return err
}

// atomically consumes a live token and returns its target email.
// A second consumption of the same token fails with ErrInvalidOrExpired.
func (r *Repository) Consume(ctx context.Context, tokenHash string) (string, error) {
	var email string

	err := r.db.QueryRow(ctx, queryConsume, tokenHash).Scan(&email)

	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrInvalidOrExpired
	}

	if err != nil {
		return "", err
	}

	return email, nil
}

// removes expired tokens; safe to run periodically
func (r *Repository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, queryDeleteExpired)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
