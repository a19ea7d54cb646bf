package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// timeout for API requests
const requestTimeout = 15 * time.Second

// manages HTTP requests to the agentic REST API. The session token is
// captured from the sign-in response cookie and replayed as a Bearer
// header on later calls.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// creates a new REST client
func NewClient() *Client {
	endpoint := os.Getenv("AGENTIC_API_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:8080"
	}

	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// UserData mirrors the server's user summary
type UserData struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url"`
	Role      string  `json:"role"`
}

// BotData mirrors one catalog entry
type BotData struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	EmbedURL    string   `json:"embed_url"`
	UseCaseTags []string `json:"use_case_tags"`
	Complexity  int      `json:"complexity"`
}

// NoteData mirrors a saved note
type NoteData struct {
	BotID     string    `json:"bot_id"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

type userEnvelope struct {
	User *UserData `json:"user"`
}

type botsEnvelope struct {
	Bots []BotData `json:"bots"`
}

type shareEnvelope struct {
	NoteID string `json:"note_id"`
}

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// signs in with email and password and captures the session cookie
func (c *Client) SignIn(ctx context.Context, email, password string) (*UserData, error) {
	payload := map[string]string{"email": email, "password": password}

	resp, body, err := c.do(ctx, http.MethodPost, "/api/v1/auth/sign-in", payload)
	if err != nil {
		return nil, err
	}

	for _, ck := range resp.Cookies() {
		if ck.Name == "auth_token" {
			c.token = ck.Value
		}
	}

	var envelope userEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return envelope.User, nil
}

// re-issues the session claims from the server's current view of the user
func (c *Client) Refresh(ctx context.Context) (*UserData, error) {
	resp, body, err := c.do(ctx, http.MethodPost, "/api/v1/auth/refresh", nil)
	if err != nil {
		return nil, err
	}

	for _, ck := range resp.Cookies() {
		if ck.Name == "auth_token" {
			c.token = ck.Value
		}
	}

	var envelope userEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return envelope.User, nil
}

// fetches the agent catalog
func (c *Client) ListBots(ctx context.Context) ([]BotData, error) {
	_, body, err := c.do(ctx, http.MethodGet, "/api/v1/bots", nil)
	if err != nil {
		return nil, err
	}

	var envelope botsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return envelope.Bots, nil
}

// fetches the caller's note for the agent; nil means none saved yet
func (c *Client) GetNote(ctx context.Context, botID string) (*NoteData, error) {
	_, body, err := c.do(ctx, http.MethodGet, "/api/v1/notes/"+botID, nil)
	if err != nil {
		return nil, err
	}

	var note *NoteData
	if err := json.Unmarshal(body, &note); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return note, nil
}

// saves (creates or replaces) the note for the agent
func (c *Client) SaveNote(ctx context.Context, botID, content string) (*NoteData, error) {
	payload := map[string]string{"content": content}

	_, body, err := c.do(ctx, http.MethodPost, "/api/v1/notes/"+botID, payload)
	if err != nil {
		return nil, err
	}

	var note NoteData
	if err := json.Unmarshal(body, &note); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &note, nil
}

// publishes a snapshot of the current note and returns its public id
func (c *Client) ShareNote(ctx context.Context, botID string) (string, error) {
	_, body, err := c.do(ctx, http.MethodPost, "/api/v1/notes/"+botID+"/share", nil)
	if err != nil {
		return "", err
	}

	var envelope shareEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return envelope.NoteID, nil
}

// returns the public URL for a shared note id
func (c *Client) ShareURL(noteID string) string {
	return fmt.Sprintf("%s/api/v1/shared/%s", c.endpoint, noteID)
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (*http.Response, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorEnvelope
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return nil, nil, fmt.Errorf("%s: %s", errResp.Error, errResp.Message)
		}
		return nil, nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return resp, body, nil
}
