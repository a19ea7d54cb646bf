package notes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"codeberg.org/agentic/server/agentic/bots"
	"codeberg.org/agentic/server/agentic/notes"
	"codeberg.org/agentic/server/agentic/sharednotes"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteKey struct{ userID, botID string }

type fakeNoteStore struct {
	notes map[noteKey]*notes.Note
}

func newFakeNoteStore() *fakeNoteStore {
	return &fakeNoteStore{notes: map[noteKey]*notes.Note{}}
}

func (s *fakeNoteStore) Get(_ context.Context, userID, botID string) (*notes.Note, error) {
	if n, ok := s.notes[noteKey{userID, botID}]; ok {
		return n, nil
	}
	return nil, notes.ErrNotFound
}

func (s *fakeNoteStore) Upsert(_ context.Context, userID, botID, content string) (*notes.Note, error) {
	n := &notes.Note{UserID: userID, BotID: botID, Content: content, UpdatedAt: time.Now()}
	s.notes[noteKey{userID, botID}] = n
	return n, nil
}

type fakeShareStore struct {
	shares map[string]*sharednotes.SharedNote
	nextID string
}

func newFakeShareStore() *fakeShareStore {
	return &fakeShareStore{shares: map[string]*sharednotes.SharedNote{}, nextID: "abc123def456"}
}

func (s *fakeShareStore) Create(_ context.Context, userID, botID, botName, content string) (*sharednotes.SharedNote, error) {
	n := &sharednotes.SharedNote{ID: s.nextID, UserID: userID, BotID: botID, BotName: botName, Content: content}
	s.shares[n.ID] = n
	return n, nil
}

func (s *fakeShareStore) Get(_ context.Context, id string) (*sharednotes.SharedNote, error) {
	if n, ok := s.shares[id]; ok {
		return n, nil
	}
	return nil, sharednotes.ErrNotFound
}

type fakeDirectory struct {
	bots map[string]*bots.Bot
}

func (d *fakeDirectory) Get(id string) (*bots.Bot, error) {
	if b, ok := d.bots[id]; ok {
		return b, nil
	}
	return nil, bots.ErrNotFound
}

func asPrincipal(userID string) gin.HandlerFunc {
	return func(c *gin.Context) { c.Set("user_id", userID) }
}

func newNotesRouter(userID string, noteStore NoteStore, shareStore ShareStore, directory AgentDirectory) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api/v1")
	RegisterRoutes(group, noteStore, shareStore, directory, asPrincipal(userID))
	return router
}

func TestGetNoteHandler_NullWhenAbsent(t *testing.T) {
	router := newNotesRouter("user-1", newFakeNoteStore(), newFakeShareStore(), &fakeDirectory{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notes/research-scout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))
}

func TestSaveNoteHandler_UpsertRoundTrip(t *testing.T) {
	store := newFakeNoteStore()
	router := newNotesRouter("user-1", store, newFakeShareStore(), &fakeDirectory{})

	body := `{"content":"# findings\n\nfirst pass"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notes/research-scout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var saved notes.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, "research-scout", saved.BotID)
	assert.Equal(t, "# findings\n\nfirst pass", saved.Content)

	// a second save replaces, it does not duplicate
	body = `{"content":"revised"}`
	req = httptest.NewRequest(http.MethodPost, "/api/v1/notes/research-scout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, store.notes, 1)
	assert.Equal(t, "revised", store.notes[noteKey{"user-1", "research-scout"}].Content)
}

func TestNotes_ScopedToPrincipal(t *testing.T) {
	store := newFakeNoteStore()
	store.notes[noteKey{"someone-else", "research-scout"}] = &notes.Note{
		UserID: "someone-else", BotID: "research-scout", Content: "private",
	}

	router := newNotesRouter("user-1", store, newFakeShareStore(), &fakeDirectory{})

	// the path carries only the agent id; ownership comes from the session
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notes/research-scout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))
}

func TestShareNoteHandler_Snapshot(t *testing.T) {
	store := newFakeNoteStore()
	shares := newFakeShareStore()
	directory := &fakeDirectory{bots: map[string]*bots.Bot{
		"research-scout": {ID: "research-scout", Name: "Research Scout"},
	}}
	router := newNotesRouter("user-1", store, shares, directory)

	store.notes[noteKey{"user-1", "research-scout"}] = &notes.Note{
		UserID: "user-1", BotID: "research-scout", Content: "v1",
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notes/research-scout/share", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp ShareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.NoteID)

	// editing the note afterwards must not touch the snapshot
	store.notes[noteKey{"user-1", "research-scout"}].Content = "v2"

	shared, err := shares.Get(context.Background(), resp.NoteID)
	require.NoError(t, err)
	assert.Equal(t, "v1", shared.Content)
	assert.Equal(t, "Research Scout", shared.BotName)
}

func TestShareNoteHandler_NoNote(t *testing.T) {
	router := newNotesRouter("user-1", newFakeNoteStore(), newFakeShareStore(), &fakeDirectory{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notes/research-scout/share", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSharedNoteHandler_PublicAndOwnerHidden(t *testing.T) {
	shares := newFakeShareStore()
	_, err := shares.Create(context.Background(), "user-1", "research-scout", "Research Scout", "published")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	// registered without any session middleware
	router.GET("/shared/:noteId", GetSharedNoteHandler(shares))

	req := httptest.NewRequest(http.MethodGet, "/shared/"+shares.nextID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "published")
	assert.NotContains(t, w.Body.String(), "user-1", "owner id is not exposed")
}

func TestGetSharedNoteHandler_Unknown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/shared/:noteId", GetSharedNoteHandler(newFakeShareStore()))

	req := httptest.NewRequest(http.MethodGet, "/shared/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
