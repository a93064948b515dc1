package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github/chapool/go-bitski/internal/auth"
	"github/chapool/go-bitski/internal/metrics"
	"github/chapool/go-bitski/internal/network"
	"golang.org/x/net/http/httpguts"
)

const (
	// HeaderAPIKey carries the client id.
	HeaderAPIKey = "X-API-Key"
	// DefaultUserAgent is sent unless WithUserAgent is used.
	DefaultUserAgent = "go-bitski/dev"
)

// Router routes JSON-RPC calls of one network to the authenticated, REST or
// plain lane depending on the method. It is safe for concurrent use.
type Router struct {
	network    network.Network
	clientID   string
	tokens     auth.AccessTokenProvider
	httpClient *http.Client
	userAgent  string
	metrics    *metrics.Service
	logger     zerolog.Logger

	plainHeaders http.Header
	nextID       atomic.Uint64
}

// Option configures a Router.
type Option func(*Router)

// WithHTTPClient sets the HTTP client shared by all lanes.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Router) {
		r.httpClient = client
	}
}

// WithUserAgent sets the User-Agent header, "<client-name>/<version>".
func WithUserAgent(userAgent string) Option {
	return func(r *Router) {
		r.userAgent = userAgent
	}
}

// WithMetrics records per-lane call metrics.
func WithMetrics(m *metrics.Service) Option {
	return func(r *Router) {
		r.metrics = m
	}
}

// WithLogger replaces the router's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// New creates a router for n. clientID is sent as the API key; tokens is
// asked for a bearer token on every authenticated call. A nil tokens
// provider behaves like auth.Unauthenticated.
func New(n network.Network, clientID string, tokens auth.AccessTokenProvider, opts ...Option) (*Router, error) {
	r := &Router{
		network:   n,
		clientID:  clientID,
		tokens:    tokens,
		userAgent: DefaultUserAgent,
		logger:    log.With().Str("component", "router").Uint64("chain_id", n.ChainID).Logger(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.tokens == nil {
		r.tokens = auth.Unauthenticated{}
	}
	if r.httpClient == nil {
		r.httpClient = &http.Client{}
	}

	if err := validateEndpoint(n.RPCURL); err != nil {
		return nil, err
	}
	if !httpguts.ValidHeaderFieldValue(clientID) {
		return nil, newError(KindInternal, "invalid client id", nil)
	}
	if !httpguts.ValidHeaderFieldValue(r.userAgent) {
		return nil, newError(KindInternal, "invalid user agent", nil)
	}

	r.plainHeaders = http.Header{}
	r.plainHeaders.Set("User-Agent", r.userAgent)
	if n.ForwardsAPIKey() {
		r.plainHeaders.Set(HeaderAPIKey, clientID)
	}

	return r, nil
}

func validateEndpoint(rpcURL string) error {
	u, err := url.Parse(rpcURL)
	if err != nil {
		return newError(KindInternal, "invalid RPC URL", err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return newError(KindInternal, "invalid RPC URL", errors.Errorf("%q is not an absolute http(s) URL", rpcURL))
	}

	return nil
}

// Network returns the network the router sends to.
func (r *Router) Network() network.Network {
	return r.network
}

// Close releases idle connections of the router's HTTP client.
func (r *Router) Close() {
	r.httpClient.CloseIdleConnections()
}

// Prepare assigns the next request id to a call. Ids are unique and strictly
// increasing per router, across all lanes and goroutines.
func (r *Router) Prepare(method string, params []any) Request {
	return Request{
		ID:     r.nextID.Add(1),
		Method: method,
		Params: params,
	}
}

// Send prepares and dispatches a single call.
func (r *Router) Send(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	return r.Dispatch(ctx, r.Prepare(method, params))
}

// Dispatch sends a prepared call through the lane Classify selects for it.
// Failures are returned as *Error and never retried.
func (r *Router) Dispatch(ctx context.Context, req Request) (json.RawMessage, error) {
	lane := Classify(req.Method, r.network.RPCURL)

	logger := r.logger.With().
		Uint64("id", req.ID).
		Str("method", req.Method).
		Str("lane", lane.String()).
		Logger()
	logger.Debug().Msg("Dispatching request")

	start := time.Now()

	var (
		result json.RawMessage
		err    error
	)

	switch lane {
	case LaneAuthenticated:
		result, err = r.sendAuthenticated(ctx, req)
	case LaneREST:
		result, err = r.sendREST(ctx, req)
	default:
		result, err = r.post(ctx, r.plainHeaders, req)
	}

	r.observeCall(lane, err, start)

	if err != nil {
		logger.Debug().Err(err).Msg("Request failed")
		return nil, err
	}

	return result, nil
}

// SendBatch fetches one access token and sends every request sequentially
// over the authenticated lane, whatever its method. Results keep the input
// order and carry their own error; the returned error is only set when no
// token could be obtained.
func (r *Router) SendBatch(ctx context.Context, requests []Request) ([]BatchResult, error) {
	headers, err := r.authenticatedHeaders(ctx)
	if err != nil {
		return nil, err
	}

	r.logger.Debug().Int("size", len(requests)).Msg("Sending batch")

	results := make([]BatchResult, len(requests))
	for i, req := range requests {
		start := time.Now()
		result, err := r.post(ctx, headers, req)
		r.observeCall(LaneAuthenticated, err, start)

		results[i] = BatchResult{ID: req.ID, Result: result, Err: err}
	}

	return results, nil
}

func (r *Router) observeCall(lane Lane, err error, start time.Time) {
	if r.metrics != nil {
		r.metrics.ObserveCall(lane.String(), err, time.Since(start))
	}
}
