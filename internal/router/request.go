package router

import "encoding/json"

// Request is a single prepared JSON-RPC call.
type Request struct {
	ID     uint64 `json:"id"`
	Method string `json:"method"`
	Params []any  `json:"params"`
}

// BatchResult is the outcome of one call of a batch.
type BatchResult struct {
	ID     uint64
	Result json.RawMessage
	Err    error
}

// encodedParams renders params as the JSON array sent to the REST gateway.
func (r Request) encodedParams() (string, error) {
	params := r.Params
	if params == nil {
		params = []any{}
	}

	data, err := json.Marshal(params)
	if err != nil {
		return "", err
	}

	return string(data), nil
}
