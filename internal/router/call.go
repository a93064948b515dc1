package router

import (
	"context"
	"encoding/json"

	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

// CallContext dispatches method like go-ethereum's rpc.Client does and
// decodes the result into result, which is skipped when nil.
func (r *Router) CallContext(ctx context.Context, result any, method string, args ...any) error {
	raw, err := r.Send(ctx, method, args)
	if err != nil {
		return err
	}

	return decodeResult(raw, result)
}

// BatchCallContext sends all elements with SendBatch. Per-element failures are
// stored in BatchElem.Error; the returned error is only set when the batch
// could not be sent at all.
func (r *Router) BatchCallContext(ctx context.Context, b []gethrpc.BatchElem) error {
	requests := make([]Request, len(b))
	for i, elem := range b {
		requests[i] = r.Prepare(elem.Method, elem.Args)
	}

	results, err := r.SendBatch(ctx, requests)
	if err != nil {
		return err
	}

	for i, result := range results {
		if result.Err != nil {
			b[i].Error = result.Err
			continue
		}
		b[i].Error = decodeResult(result.Result, b[i].Result)
	}

	return nil
}

func decodeResult(raw json.RawMessage, result any) error {
	if result == nil {
		return nil
	}

	if err := json.Unmarshal(raw, result); err != nil {
		return newError(KindDeserialization, "failed to decode result", err)
	}

	return nil
}
