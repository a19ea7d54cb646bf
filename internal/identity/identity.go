// Package identity normalizes the three authentication modes (password,
// OAuth redirect, magic link) into one user-resolution contract.
package identity

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/agentic/server/agentic/accounts"
	"codeberg.org/agentic/server/agentic/logintokens"
	"codeberg.org/agentic/server/agentic/users"
	"golang.org/x/crypto/bcrypt"
)

// creates a new identity resolver
func NewResolver(userStore UserStore, accountStore AccountStore, tokenStore LoginTokenStore) *Resolver {
	return &Resolver{
		users:    userStore,
		accounts: accountStore,
		tokens:   tokenStore,
	}
}

// resolves a sign-in attempt to a canonical user or fails.
// May create user and linkage rows for the OAuth and magic-link modes.
func (r *Resolver) Resolve(ctx context.Context, attempt Attempt) (*users.User, error) {
	switch a := attempt.(type) {
	case Password:
		return r.resolvePassword(ctx, a)

	case OAuthAssertion:
		return r.resolveOAuth(ctx, a)

	case MagicToken:
		return r.resolveMagicToken(ctx, a)

	default:
		return nil, fmt.Errorf("unsupported attempt type %T", attempt)
	}
}

func (r *Resolver) resolvePassword(ctx context.Context, a Password) (*users.User, error) {
	user, err := r.users.FindByEmail(ctx, a.Email)

	if errors.Is(err, users.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}

	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// OAuth-only accounts have no password hash and cannot sign in this way
	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(a.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// resolves an OAuth assertion through three branches: existing linkage,
// email match, or fresh account. All three end in the same linked state.
func (r *Resolver) resolveOAuth(ctx context.Context, a OAuthAssertion) (*users.User, error) {
	userID, err := r.accounts.FindUserID(ctx, a.Provider, a.ProviderAccountID)

	switch {
	case err == nil:
		// known linkage; refresh the stored access token
		if err := r.accounts.Link(ctx, userID, a.Provider, a.ProviderAccountID, a.AccessToken); err != nil {
			return nil, fmt.Errorf("failed to refresh linkage: %w", err)
		}

		user, err := r.users.FindByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load linked user: %w", err)
		}

		return user, nil

	case errors.Is(err, accounts.ErrNotFound):
		return r.attachOrCreate(ctx, a)

	default:
		return nil, fmt.Errorf("failed to look up linkage: %w", err)
	}
}

func (r *Resolver) attachOrCreate(ctx context.Context, a OAuthAssertion) (*users.User, error) {
	user, err := r.users.FindByEmail(ctx, a.Email)

	if errors.Is(err, users.ErrNotFound) {
		var avatar *string
		if a.AvatarURL != "" {
			avatar = &a.AvatarURL
		}

		user, err = r.users.Create(ctx, a.Email, a.Name, nil, avatar)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	if err := r.accounts.Link(ctx, user.ID, a.Provider, a.ProviderAccountID, a.AccessToken); err != nil {
		return nil, fmt.Errorf("failed to create linkage: %w", err)
	}

	return user, nil
}

func (r *Resolver) resolveMagicToken(ctx context.Context, a MagicToken) (*users.User, error) {
	email, err := r.tokens.Consume(ctx, HashToken(a.Token))

	if errors.Is(err, logintokens.ErrInvalidOrExpired) {
		return nil, ErrTokenInvalid
	}

	if err != nil {
		return nil, fmt.Errorf("failed to consume login token: %w", err)
	}

	user, err := r.users.FindOrCreateByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token email: %w", err)
	}

	return user, nil
}
