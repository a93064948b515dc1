package router

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// sendREST calls the REST gateway: GET <rpcUrl>/<method>?params=<json>.
// The gateway answers with the bare result, not a JSON-RPC envelope.
func (r *Router) sendREST(ctx context.Context, req Request) (json.RawMessage, error) {
	params, err := req.encodedParams()
	if err != nil {
		return nil, newError(KindInternal, "failed to encode params", err)
	}

	endpoint := fmt.Sprintf("%s/%s?params=%s",
		strings.TrimSuffix(r.network.RPCURL, "/"),
		req.Method,
		url.QueryEscape(params),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, newError(KindInternal, "failed to build request", err)
	}
	httpReq.Header.Set(HeaderAPIKey, r.clientID)

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return nil, newError(KindTransport, "failed to send request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(KindTransport, "failed to read response body", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, httpStatusError(resp.StatusCode, body)
	}

	var result json.RawMessage
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, newError(KindDeserialization, "failed to decode response", err)
	}

	return result, nil
}
