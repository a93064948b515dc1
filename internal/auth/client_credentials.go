package auth

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// TokenURL is the authorization server's token endpoint.
const TokenURL = "https://account.bitski.com/oauth2/token"

// ClientCredentials exchanges a client id and secret for an access token
// using the OAuth2 client-credentials grant.
//
// Tokens are not cached: every AccessToken call performs a new exchange, so
// concurrent callers each hit the authorization server.
type ClientCredentials struct {
	config     clientcredentials.Config
	httpClient *http.Client
}

// ClientCredentialsOption configures a ClientCredentials provider.
type ClientCredentialsOption func(*ClientCredentials)

// WithHTTPClient sets the HTTP client used for the token exchange.
func WithHTTPClient(client *http.Client) ClientCredentialsOption {
	return func(c *ClientCredentials) {
		c.httpClient = client
	}
}

// WithTokenURL points the provider at a different token endpoint.
func WithTokenURL(tokenURL string) ClientCredentialsOption {
	return func(c *ClientCredentials) {
		c.config.TokenURL = tokenURL
	}
}

// NewClientCredentials creates a provider for the given credentials. scopes may be empty.
func NewClientCredentials(clientID, clientSecret string, scopes []string, opts ...ClientCredentialsOption) *ClientCredentials {
	c := &ClientCredentials{
		config: clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     TokenURL,
			Scopes:       scopes,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Scopes returns the scopes requested with every exchange.
func (c *ClientCredentials) Scopes() []string {
	return c.config.Scopes
}

// AccessToken performs a client-credentials exchange and returns the access
// token. Refresh token and expiry of the response are discarded.
func (c *ClientCredentials) AccessToken(ctx context.Context) (string, error) {
	if c.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	}

	token, err := c.config.Token(ctx)
	if err != nil {
		log.Warn().
			Str("component", "client_credentials").
			Str("token_url", c.config.TokenURL).
			Err(err).
			Msg("Failed to exchange client credentials")
		return "", &TokenExchangeError{Err: err}
	}

	return token.AccessToken, nil
}
