package notes

import (
	"context"

	"codeberg.org/agentic/server/agentic/bots"
	"codeberg.org/agentic/server/agentic/notes"
	"codeberg.org/agentic/server/agentic/sharednotes"
)

// NoteStore is the slice of the notes repository the handlers need
type NoteStore interface {
	Get(ctx context.Context, userID, botID string) (*notes.Note, error)
	Upsert(ctx context.Context, userID, botID, content string) (*notes.Note, error)
}

// ShareStore records and serves public note snapshots
type ShareStore interface {
	Create(ctx context.Context, userID, botID, botName, content string) (*sharednotes.SharedNote, error)
	Get(ctx context.Context, id string) (*sharednotes.SharedNote, error)
}

// AgentDirectory resolves agent ids to catalog entries
type AgentDirectory interface {
	Get(id string) (*bots.Bot, error)
}

// SaveNoteRequest replaces the note body for one agent
type SaveNoteRequest struct {
	Content string `json:"content" binding:"required,max=50000"`
}

// ShareResponse carries the public id of a fresh snapshot
type ShareResponse struct {
	NoteID string `json:"note_id"`
}
