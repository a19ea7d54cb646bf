package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SignInCapturesSessionToken(t *testing.T) {
	var sawBearer string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/sign-in":
			http.SetCookie(w, &http.Cookie{Name: "auth_token", Value: "issued-token"})
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"user":{"id":"user-1","email":"ada@x.com","name":"Ada","role":"member"}}`))

		case "/api/v1/notes/research-scout":
			sawBearer = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`null`))

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := &Client{endpoint: srv.URL, httpClient: srv.Client()}

	user, err := client.SignIn(context.Background(), "ada@x.com", "longenough")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "ada@x.com", user.Email)

	// the cookie value is replayed as a Bearer header
	note, err := client.GetNote(context.Background(), "research-scout")
	require.NoError(t, err)
	assert.Nil(t, note, "no note saved yet")
	assert.Equal(t, "Bearer issued-token", sawBearer)
}

func TestClient_SurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_credentials","message":"invalid email or password"}`))
	}))
	defer srv.Close()

	client := &Client{endpoint: srv.URL, httpClient: srv.Client()}

	_, err := client.SignIn(context.Background(), "ada@x.com", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_credentials")
}
