package identity

import (
	"context"
	"errors"

	"codeberg.org/agentic/server/agentic/users"
)

// a sign-in attempt in one of the three supported shapes
type Attempt interface {
	attempt()
}

// email + password credentials
type Password struct {
	Email    string
	Password string
}

// an identity assertion returned by an OAuth provider redirect
type OAuthAssertion struct {
	Provider          string
	ProviderAccountID string
	Email             string
	Name              string
	AvatarURL         string
	AccessToken       string
}

// a single-use token delivered by email
type MagicToken struct {
	Token string
}

func (Password) attempt()       {}
func (OAuthAssertion) attempt() {}
func (MagicToken) attempt()     {}

var (
	// one error for "no such user", "no password set" and "wrong password";
	// sign-in responses must not reveal which one happened
	ErrInvalidCredentials = errors.New("invalid credentials")

	// returned for unknown, consumed, or expired magic tokens
	ErrTokenInvalid = errors.New("token invalid or expired")
)

// the slice of the users repository the resolver needs
type UserStore interface {
	FindByID(ctx context.Context, userID string) (*users.User, error)
	FindByEmail(ctx context.Context, email string) (*users.User, error)
	Create(ctx context.Context, email, name string, passwordHash, avatarURL *string) (*users.User, error)
	FindOrCreateByEmail(ctx context.Context, email string) (*users.User, error)
}

// the slice of the OAuth linkage repository the resolver needs
type AccountStore interface {
	FindUserID(ctx context.Context, provider, providerAccountID string) (string, error)
	Link(ctx context.Context, userID, provider, providerAccountID, accessToken string) error
}

// the slice of the login token repository the resolver needs
type LoginTokenStore interface {
	Consume(ctx context.Context, tokenHash string) (string, error)
}

// resolves sign-in attempts to canonical users
type Resolver struct {
	users    UserStore
	accounts AccountStore
	tokens   LoginTokenStore
}
