package sharednotes

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// URL-safe alphabet for public share ids
const (
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	idLength   = 12
)

// creates a new shared note repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// snapshots a note under a fresh public id and returns the stored row
func (r *Repository) Create(ctx context.Context, userID, botID, botName, content string) (*SharedNote, error) {
	id, err := gonanoid.Generate(idAlphabet, idLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate share id: %w", err)
	}

	var note SharedNote

	err = r.db.QueryRow(ctx, queryCreate, id, userID, botID, botName, content).Scan(
		&note.ID,
		&note.UserID,
		&note.BotID,
		&note.BotName,
		&note.Content,
		&note.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &note, nil
}

// fetches a shared note by its public id
func (r *Repository) Get(ctx context.Context, id string) (*SharedNote, error) {
	var note SharedNote

	err := r.db.QueryRow(ctx, queryGet, id).Scan(
		&note.ID,
		&note.UserID,
		&note.BotID,
		&note.BotName,
		&note.Content,
		&note.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return &note, nil
}
