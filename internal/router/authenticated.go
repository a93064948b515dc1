package router

import (
	"context"
	"encoding/json"
	"net/http"

	"golang.org/x/net/http/httpguts"
)

func (r *Router) sendAuthenticated(ctx context.Context, req Request) (json.RawMessage, error) {
	headers, err := r.authenticatedHeaders(ctx)
	if err != nil {
		return nil, err
	}

	return r.post(ctx, headers, req)
}

// authenticatedHeaders fetches a fresh access token and returns the headers
// sending it. No request is made when the token cannot be fetched.
func (r *Router) authenticatedHeaders(ctx context.Context) (http.Header, error) {
	token, err := r.tokens.AccessToken(ctx)
	if r.metrics != nil {
		r.metrics.ObserveTokenFetch(err)
	}
	if err != nil {
		return nil, authenticationFailed(err)
	}

	authorization := "Bearer " + token
	if !httpguts.ValidHeaderFieldValue(authorization) {
		return nil, newError(KindInternal, "invalid access token", nil)
	}

	headers := http.Header{}
	headers.Set("Authorization", authorization)
	headers.Set(HeaderAPIKey, r.clientID)
	headers.Set("User-Agent", r.userAgent)

	return headers, nil
}
