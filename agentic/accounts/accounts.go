package accounts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new OAuth linkage repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// returns the local user id linked to the provider account
func (r *Repository) FindUserID(ctx context.Context, provider, providerAccountID string) (string, error) {
	var userID string

	err := r.db.QueryRow(ctx, queryFindUserID, provider, providerAccountID).Scan(&userID)

	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}

	if err != nil {
		return "", err
	}

	return userID, nil
}

// links the provider account to the user, refreshing the stored access token
// when the linkage already exists
func (r *Repository) Link(ctx context.Context, userID, provider, providerAccountID, accessToken string) error {
	_, err := r.db.Exec(ctx, queryLink, userID, provider, providerAccountID, accessToken)
	return err
}
