package auth

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotSignedIn is returned by providers that hold no credentials.
var ErrNotSignedIn = errors.New("not signed in")

// AccessTokenProvider produces a bearer token for authenticated requests.
// It is invoked for every authenticated request and may be shared between
// concurrent callers.
type AccessTokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// ProviderFunc adapts a function to AccessTokenProvider.
type ProviderFunc func(ctx context.Context) (string, error)

func (f ProviderFunc) AccessToken(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticToken is an already issued access token.
type StaticToken string

func (t StaticToken) AccessToken(_ context.Context) (string, error) {
	return string(t), nil
}

// Unauthenticated never yields a token.
type Unauthenticated struct{}

func (Unauthenticated) AccessToken(_ context.Context) (string, error) {
	return "", ErrNotSignedIn
}

// TokenExchangeError wraps a failed exchange with the authorization server.
type TokenExchangeError struct {
	Err error
}

func (e *TokenExchangeError) Error() string {
	return fmt.Sprintf("token exchange failed: %v", e.Err)
}

func (e *TokenExchangeError) Unwrap() error {
	return e.Err
}
