package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

type rpcCall struct {
	Version string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type recordedRequest struct {
	HTTPMethod string
	Header     http.Header
	Call       rpcCall
}

// rpcServer is a minimal JSON-RPC over HTTP endpoint recording every request.
type rpcServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

func newRPCServer(t *testing.T, handle func(call rpcCall) (any, *rpcError)) *rpcServer {
	t.Helper()

	s := &rpcServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var call rpcCall
		if err := json.NewDecoder(r.Body).Decode(&call); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		s.requests = append(s.requests, recordedRequest{HTTPMethod: r.Method, Header: r.Header.Clone(), Call: call})
		s.mu.Unlock()

		result, rpcErr := handle(call)

		response := map[string]any{"jsonrpc": "2.0", "id": call.ID}
		if rpcErr != nil {
			response["error"] = rpcErr
		} else {
			response["result"] = result
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	}))
	t.Cleanup(s.Close)

	return s
}

func (s *rpcServer) Requests() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]recordedRequest, len(s.requests))
	copy(result, s.requests)
	return result
}

// countingServer answers every request with status and body and counts hits.
func countingServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)

		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server, &hits
}
