package notes

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new note repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// returns the note for (user, agent), or ErrNotFound
func (r *Repository) Get(ctx context.Context, userID, botID string) (*Note, error) {
	var note Note

	err := r.db.QueryRow(ctx, queryGet, userID, botID).Scan(
		&note.UserID,
		&note.BotID,
		&note.Content,
		&note.CreatedAt,
		&note.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return &note, nil
}

// creates or replaces the note for (user, agent) and returns the saved row
func (r *Repository) Upsert(ctx context.Context, userID, botID, content string) (*Note, error) {
	var note Note

	err := r.db.QueryRow(ctx, queryUpsert, userID, botID, content).Scan(
		&note.UserID,
		&note.BotID,
		&note.Content,
		&note.CreatedAt,
		&note.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &note, nil
}
