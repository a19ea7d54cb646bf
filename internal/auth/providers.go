package auth

import (
	"fmt"
	"net/http"
	"strings"

	"codeberg.org/agentic/server/internal/config"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/github"
	"github.com/markbates/goth/providers/google"
)

// sets up all OAuth providers using goth
func InitializeProviders(cfg *config.Config) error {
	// gothic needs a cookie store for the redirect handshake
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))

	isHTTPS := strings.HasPrefix(cfg.BaseURL, "https://")

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300, // 5 minutes, enough for the OAuth flow
		HttpOnly: true,
		Secure:   isHTTPS,
		SameSite: http.SameSiteLaxMode,
	}

	gothic.Store = store

	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		return fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
	}

	providers := []goth.Provider{
		google.New(
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.BaseURL+"/api/v1/auth/google/callback",
			"email", "profile",
		),
	}

	if cfg.GithubClientID != "" && cfg.GithubClientSecret != "" {
		providers = append(providers, github.New(
			cfg.GithubClientID,
			cfg.GithubClientSecret,
			cfg.BaseURL+"/api/v1/auth/github/callback",
			"user:email",
		))
	}

	goth.UseProviders(providers...)
	return nil
}
