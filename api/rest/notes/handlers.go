package notes

import (
	"errors"
	"net/http"

	"codeberg.org/agentic/server/agentic/bots"
	"codeberg.org/agentic/server/agentic/notes"
	"codeberg.org/agentic/server/agentic/sharednotes"
	"codeberg.org/agentic/server/internal/auth"
	apierrors "codeberg.org/agentic/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// GetNoteHandler godoc
// @Summary Get the caller's note for an agent
// @Description Returns the note for the agent, or JSON null when none has been saved yet.
// @Tags notes
// @Produce json
// @Param botId path string true "Agent id"
// @Success 200 {object} notes.Note
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/notes/{botId} [get]
// @Security BearerAuth
func GetNoteHandler(noteStore NoteStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			return
		}

		note, err := noteStore.Get(c.Request.Context(), userID, c.Param("botId"))

		// no note yet is a normal state, not an error
		if errors.Is(err, notes.ErrNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}

		if err != nil {
			apierrors.InternalError(c, "failed to load note", err)
			return
		}

		c.JSON(http.StatusOK, note)
	}
}

// SaveNoteHandler godoc
// @Summary Save the caller's note for an agent
// @Description Creates the note on first save and replaces it afterwards. Concurrent saves resolve to last-write-wins.
// @Tags notes
// @Accept json
// @Produce json
// @Param botId path string true "Agent id"
// @Param request body SaveNoteRequest true "Note body"
// @Success 200 {object} notes.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/notes/{botId} [post]
// @Security BearerAuth
func SaveNoteHandler(noteStore NoteStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			return
		}

		var req SaveNoteRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.ValidationError(c, err)
			return
		}

		note, err := noteStore.Upsert(c.Request.Context(), userID, c.Param("botId"), req.Content)
		if err != nil {
			apierrors.InternalError(c, "failed to save note", err)
			return
		}

		c.JSON(http.StatusOK, note)
	}
}

// ShareNoteHandler godoc
// @Summary Publish a snapshot of the caller's note
// @Description Copies the current note into a public snapshot with its own id. Later edits to the note do not change the snapshot.
// @Tags notes
// @Produce json
// @Param botId path string true "Agent id"
// @Success 201 {object} ShareResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/notes/{botId}/share [post]
// @Security BearerAuth
func ShareNoteHandler(noteStore NoteStore, shareStore ShareStore, directory AgentDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			return
		}

		botID := c.Param("botId")

		note, err := noteStore.Get(c.Request.Context(), userID, botID)

		if errors.Is(err, notes.ErrNotFound) {
			apierrors.NotFound(c, "note")
			return
		}

		if err != nil {
			apierrors.InternalError(c, "failed to load note", err)
			return
		}

		botName := botID
		if bot, err := directory.Get(botID); err == nil {
			botName = bot.Name
		} else if !errors.Is(err, bots.ErrNotFound) {
			apierrors.InternalError(c, "failed to resolve agent", err)
			return
		}

		shared, err := shareStore.Create(c.Request.Context(), userID, botID, botName, note.Content)
		if err != nil {
			apierrors.InternalError(c, "failed to share note", err)
			return
		}

		c.JSON(http.StatusCreated, ShareResponse{NoteID: shared.ID})
	}
}

// GetSharedNoteHandler godoc
// @Summary Fetch a shared note snapshot
// @Description Public, no session required. The owner is not disclosed.
// @Tags notes
// @Produce json
// @Param noteId path string true "Public snapshot id"
// @Success 200 {object} sharednotes.SharedNote
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/shared/{noteId} [get]
func GetSharedNoteHandler(shareStore ShareStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		shared, err := shareStore.Get(c.Request.Context(), c.Param("noteId"))

		if errors.Is(err, sharednotes.ErrNotFound) {
			apierrors.NotFound(c, "shared note")
			return
		}

		if err != nil {
			apierrors.InternalError(c, "failed to load shared note", err)
			return
		}

		c.JSON(http.StatusOK, shared)
	}
}
