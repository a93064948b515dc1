package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

const jsonrpcVersion = "2.0"

type jsonrpcRequest struct {
	Version string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type jsonrpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type jsonrpcResponse struct {
	Version string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *jsonrpcError   `json:"error"`
}

// post sends req as a JSON-RPC POST carrying the router's id and checks that
// the response answers that id.
func (r *Router) post(ctx context.Context, headers http.Header, req Request) (json.RawMessage, error) {
	params, err := req.encodedParams()
	if err != nil {
		return nil, newError(KindInternal, "failed to encode params", err)
	}

	body, err := json.Marshal(jsonrpcRequest{
		Version: jsonrpcVersion,
		ID:      req.ID,
		Method:  req.Method,
		Params:  json.RawMessage(params),
	})
	if err != nil {
		return nil, newError(KindInternal, "failed to encode request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.network.RPCURL, bytes.NewReader(body))
	if err != nil {
		return nil, newError(KindInternal, "failed to build request", err)
	}
	for key, values := range headers {
		httpReq.Header[key] = values
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return nil, newError(KindTransport, "failed to send request", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(KindTransport, "failed to read response body", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, httpStatusError(resp.StatusCode, respBody)
	}

	var msg jsonrpcResponse
	if err := json.Unmarshal(respBody, &msg); err != nil {
		return nil, newError(KindDeserialization, "failed to decode response", err)
	}

	id := string(bytes.TrimSpace(msg.ID))
	unidentified := id == "" || id == "null"

	// servers answer unparsable requests with a null id
	if msg.Error != nil && (unidentified || id == strconv.FormatUint(req.ID, 10)) {
		return nil, remoteError(msg.Error)
	}

	if id != strconv.FormatUint(req.ID, 10) {
		return nil, newError(KindDeserialization, fmt.Sprintf("response id %s does not match request id %d", id, req.ID), nil)
	}

	if len(msg.Result) == 0 {
		return nil, newError(KindDeserialization, "response has neither result nor error", nil)
	}

	return msg.Result, nil
}

func remoteError(e *jsonrpcError) *Error {
	result := &Error{Kind: KindRPC, Code: e.Code, Message: e.Message}
	if len(e.Data) > 0 {
		result.Data = e.Data
	}

	return result
}
