package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// returns a tea.Cmd that signs in and loads the catalog on success
func (c *Client) SignInCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		user, err := c.SignIn(ctx, email, password)
		if err != nil {
			if strings.Contains(err.Error(), "invalid_credentials") {
				return AuthFailedMsg{message: "invalid email or password"}
			}
			return ErrorMsg{err: err}
		}

		return SignedInMsg{user: user}
	}
}

// returns a tea.Cmd that re-issues the session claims
func (c *Client) RefreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		user, err := c.Refresh(ctx)
		if err != nil {
			return ErrorMsg{err: err}
		}

		return SignedInMsg{user: user}
	}
}

// returns a tea.Cmd that fetches the agent catalog
func (c *Client) ListBotsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		bots, err := c.ListBots(ctx)
		if err != nil {
			return ErrorMsg{err: err}
		}

		return BotsLoadedMsg{bots: bots}
	}
}

// returns a tea.Cmd that fetches the caller's note for the agent
func (c *Client) GetNoteCmd(botID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		note, err := c.GetNote(ctx, botID)
		if err != nil {
			return ErrorMsg{err: err}
		}

		return NoteLoadedMsg{botID: botID, note: note}
	}
}

// returns a tea.Cmd that saves the note body
func (c *Client) SaveNoteCmd(botID, content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		note, err := c.SaveNote(ctx, botID, content)
		if err != nil {
			return ErrorMsg{err: err}
		}

		return NoteSavedMsg{note: note}
	}
}

// returns a tea.Cmd that publishes a share snapshot
func (c *Client) ShareNoteCmd(botID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		noteID, err := c.ShareNote(ctx, botID)
		if err != nil {
			return ErrorMsg{err: err}
		}

		return NoteSharedMsg{noteID: noteID}
	}
}
