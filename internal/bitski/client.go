// Package bitski is the entry point for talking to service-hosted and local
// blockchain endpoints. A Client owns the credentials and hands out routers
// bound to a single network.
package bitski

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github/chapool/go-bitski/internal/auth"
	"github/chapool/go-bitski/internal/chains"
	"github/chapool/go-bitski/internal/config"
	"github/chapool/go-bitski/internal/metrics"
	"github/chapool/go-bitski/internal/network"
	"github/chapool/go-bitski/internal/router"
)

// LocalClientID is sent as API key in local mode.
const LocalClientID = "TEST_CLIENT"

var (
	ErrMissingClientID = errors.New("BITSKI_API_KEY or BITSKI_CLIENT_ID is required")
	ErrChainIDMismatch = errors.New("chain id mismatch")
)

type Client struct {
	clientID    string
	tokens      auth.AccessTokenProvider
	rpcOverride string

	registry   *chains.Registry
	resolver   *network.Resolver
	httpClient *http.Client
	metrics    *metrics.Service
	userAgent  string
	tokenURL   string
	logger     zerolog.Logger
}

type Option func(*Client)

// WithHTTPClient sets the HTTP client used for RPC calls and token exchanges.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithRegistry resolves identifiers against registry instead of the embedded one.
func WithRegistry(registry *chains.Registry) Option {
	return func(c *Client) {
		c.registry = registry
	}
}

func WithMetrics(m *metrics.Service) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTokenURL points the client credentials grant at another token endpoint.
func WithTokenURL(tokenURL string) Option {
	return func(c *Client) {
		c.tokenURL = tokenURL
	}
}

func newClient(clientID string, opts []Option) *Client {
	c := &Client{
		clientID:   clientID,
		tokens:     auth.Unauthenticated{},
		httpClient: &http.Client{Timeout: config.DefaultHTTPTimeout},
		userAgent:  config.UserAgent(),
		tokenURL:   auth.TokenURL,
		logger:     log.With().Str("component", "bitski").Logger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.registry == nil {
		c.registry = chains.Default()
	}
	c.resolver = network.NewResolver(c.registry)

	return c
}

// New authenticates with the OAuth2 client credentials grant. A new token is
// requested for every authenticated call.
func New(clientID, credentialID, credentialSecret string, scopes []string, opts ...Option) *Client {
	c := newClient(clientID, opts)
	c.tokens = auth.NewClientCredentials(credentialID, credentialSecret, scopes,
		auth.WithHTTPClient(c.httpClient),
		auth.WithTokenURL(c.tokenURL),
	)

	return c
}

// NewWithAccessToken authenticates every call with a fixed access token.
func NewWithAccessToken(clientID, accessToken string, opts ...Option) *Client {
	c := newClient(clientID, opts)
	c.tokens = auth.StaticToken(accessToken)

	return c
}

// NewUnauthenticated only allows calls that need no access token.
func NewUnauthenticated(clientID string, opts ...Option) *Client {
	return newClient(clientID, opts)
}

// NewLocalMode talks to a local development node. rpcOverride replaces the
// node's default localhost URL when not empty.
func NewLocalMode(rpcOverride string, opts ...Option) *Client {
	c := newClient(LocalClientID, opts)
	c.rpcOverride = rpcOverride

	return c
}

// FromConfig builds a client from environment derived config. Client
// credentials are used when both credential id and secret are set,
// otherwise the client is unauthenticated.
func FromConfig(cfg config.Client, opts ...Option) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}

	// explicit options win over config
	opts = append([]Option{WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout})}, opts...)

	var c *Client
	if cfg.HasCredentials() {
		c = New(cfg.ClientID, cfg.CredentialID, cfg.CredentialSecret, cfg.Scopes, opts...)
	} else {
		c = NewUnauthenticated(cfg.ClientID, opts...)
	}

	if cfg.RPCOverride != "" {
		c.SetRPCOverride(cfg.RPCOverride)
	}

	return c, nil
}

// SetRPCOverride sends every call to rpcURL instead of the resolved network's endpoint.
// The chain id of the resolved network is kept.
func (c *Client) SetRPCOverride(rpcURL string) {
	c.rpcOverride = rpcURL
}

func (c *Client) ClientID() string {
	return c.clientID
}

// Network resolves identifier and applies the RPC override.
func (c *Client) Network(identifier string) (network.Network, error) {
	n, err := c.resolver.FromIdentifier(identifier)
	if err != nil {
		return network.Network{}, errors.Wrap(err, "invalid network")
	}

	if c.rpcOverride != "" {
		n = n.WithRPCURL(c.rpcOverride)
	}

	return n, nil
}

// Router returns a router for the network identified by identifier.
// The caller must Close it.
func (c *Client) Router(identifier string) (*router.Router, error) {
	n, err := c.Network(identifier)
	if err != nil {
		return nil, err
	}

	return c.newRouter(n)
}

// LocalRouter returns a router for a local development node, e.g. "anvil".
// The caller must Close it.
func (c *Client) LocalRouter(name string) (*router.Router, error) {
	n, err := network.NewLocal(name, c.rpcOverride)
	if err != nil {
		return nil, err
	}

	return c.newRouter(n)
}

func (c *Client) newRouter(n network.Network) (*router.Router, error) {
	opts := []router.Option{
		router.WithHTTPClient(c.httpClient),
		router.WithUserAgent(c.userAgent),
		router.WithLogger(c.logger.With().Str("network", n.String()).Logger()),
	}
	if c.metrics != nil {
		opts = append(opts, router.WithMetrics(c.metrics))
	}

	r, err := router.New(n, c.clientID, c.tokens, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create router for %s", n)
	}

	return r, nil
}

// AccessToken fetches an access token from the client's provider.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	return c.tokens.AccessToken(ctx)
}

// Execute sends a single call to the network identified by identifier.
func (c *Client) Execute(ctx context.Context, identifier string, method string, params []any) (json.RawMessage, error) {
	r, err := c.Router(identifier)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return r.Send(ctx, method, params)
}

// ExecuteLocal sends a single call to a local development node.
func (c *Client) ExecuteLocal(ctx context.Context, name string, method string, params []any) (json.RawMessage, error) {
	r, err := c.LocalRouter(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return r.Send(ctx, method, params)
}

func (c *Client) withRouter(identifier string, f func(r *router.Router) error) error {
	r, err := c.Router(identifier)
	if err != nil {
		return err
	}
	defer r.Close()

	return f(r)
}

// ChainID returns the chain id reported by the endpoint of identifier.
func (c *Client) ChainID(ctx context.Context, identifier string) (uint64, error) {
	var chainID hexutil.Uint64
	err := c.withRouter(identifier, func(r *router.Router) error {
		return r.CallContext(ctx, &chainID, "eth_chainId")
	})

	return uint64(chainID), err
}

// BlockNumber returns the latest block number of identifier.
func (c *Client) BlockNumber(ctx context.Context, identifier string) (uint64, error) {
	var number hexutil.Uint64
	err := c.withRouter(identifier, func(r *router.Router) error {
		return r.CallContext(ctx, &number, "eth_blockNumber")
	})

	return uint64(number), err
}

// BalanceAt returns the wei balance of account at block, e.g. "latest" or a hex number.
func (c *Client) BalanceAt(ctx context.Context, identifier string, account common.Address, block string) (*big.Int, error) {
	var balance hexutil.Big
	err := c.withRouter(identifier, func(r *router.Router) error {
		return r.CallContext(ctx, &balance, "eth_getBalance", account, block)
	})
	if err != nil {
		return nil, err
	}

	return balance.ToInt(), nil
}

// Accounts returns the accounts of the signed in user.
func (c *Client) Accounts(ctx context.Context, identifier string) ([]common.Address, error) {
	var accounts []common.Address
	err := c.withRouter(identifier, func(r *router.Router) error {
		return r.CallContext(ctx, &accounts, "eth_accounts")
	})

	return accounts, err
}

// VerifyChainID asks the endpoint of identifier for its chain id and compares
// it with the registry's.
func (c *Client) VerifyChainID(ctx context.Context, identifier string) (uint64, error) {
	n, err := c.Network(identifier)
	if err != nil {
		return 0, err
	}

	actual, err := c.ChainID(ctx, identifier)
	if err != nil {
		return 0, err
	}

	if actual != n.ChainID {
		c.logger.Warn().Str("network", identifier).Uint64("expected", n.ChainID).Uint64("actual", actual).Msg("Endpoint serves another chain")
		return actual, errors.Wrapf(ErrChainIDMismatch, "%s: expected %s, got %s", identifier, c.describeChain(n.ChainID), c.describeChain(actual))
	}

	return actual, nil
}

func (c *Client) describeChain(chainID uint64) string {
	if chain, ok := c.registry.ByID(chainID); ok {
		return fmt.Sprintf("%d (%s)", chainID, chain.Name)
	}

	return fmt.Sprintf("%d", chainID)
}
