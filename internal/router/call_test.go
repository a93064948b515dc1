package router_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-bitski/internal/auth"
	"github/chapool/go-bitski/internal/router"
)

func TestCallContext(t *testing.T) {
	server := newRPCServer(t, func(call rpcCall) (any, *rpcError) {
		switch call.Method {
		case "eth_chainId":
			return "0x89", nil
		case "eth_getBalance":
			return "0xde0b6b3a7640000", nil
		}
		return nil, &rpcError{Code: -32601, Message: "method not found"}
	})

	r := newRouter(t, server.URL, nil)

	var chainID hexutil.Uint64
	require.NoError(t, r.CallContext(t.Context(), &chainID, "eth_chainId"))
	assert.Equal(t, uint64(137), uint64(chainID))

	var balance hexutil.Big
	require.NoError(t, r.CallContext(t.Context(), &balance, "eth_getBalance", "0x00000000000000000000000000000000000000aa", "latest"))
	assert.Equal(t, "1000000000000000000", balance.ToInt().String())

	// nil result only checks for errors
	require.NoError(t, r.CallContext(t.Context(), nil, "eth_chainId"))

	err := r.CallContext(t.Context(), &chainID, "eth_unknown")
	assert.True(t, errors.Is(err, router.ErrRPC))

	var notAString bool
	err = r.CallContext(t.Context(), &notAString, "eth_chainId")
	assert.True(t, errors.Is(err, router.ErrDeserialization))

	recorded := server.Requests()
	require.Len(t, recorded, 5)
	assert.JSONEq(t, `[]`, string(recorded[0].Call.Params))
	assert.JSONEq(t, `["0x00000000000000000000000000000000000000aa","latest"]`, string(recorded[1].Call.Params))
}

func TestBatchCallContext(t *testing.T) {
	server := newRPCServer(t, func(call rpcCall) (any, *rpcError) {
		switch call.Method {
		case "eth_chainId":
			return "0x1", nil
		case "eth_blockNumber":
			return "0x10", nil
		}
		return nil, &rpcError{Code: -32000, Message: "execution reverted"}
	})

	var fetches atomic.Int32
	r := newRouter(t, server.URL, auth.ProviderFunc(func(_ context.Context) (string, error) {
		fetches.Add(1)
		return "token", nil
	}))

	var (
		chainID     hexutil.Uint64
		blockNumber hexutil.Uint64
		callResult  hexutil.Bytes
	)
	batch := []gethrpc.BatchElem{
		{Method: "eth_chainId", Result: &chainID},
		{Method: "eth_call", Args: []any{map[string]any{"to": "0x00000000000000000000000000000000000000aa"}, "latest"}, Result: &callResult},
		{Method: "eth_blockNumber", Result: &blockNumber},
		{Method: "eth_chainId"},
	}

	require.NoError(t, r.BatchCallContext(t.Context(), batch))
	assert.Equal(t, int32(1), fetches.Load())

	require.NoError(t, batch[0].Error)
	assert.Equal(t, uint64(1), uint64(chainID))

	require.Error(t, batch[1].Error)
	assert.True(t, errors.Is(batch[1].Error, router.ErrRPC))

	require.NoError(t, batch[2].Error)
	assert.Equal(t, uint64(16), uint64(blockNumber))

	require.NoError(t, batch[3].Error)

	for _, req := range server.Requests() {
		assert.Equal(t, "Bearer token", req.Header.Get("Authorization"))
		assert.Equal(t, http.MethodPost, req.HTTPMethod)
	}
}

func TestBatchCallContextNotSignedIn(t *testing.T) {
	server, hits := countingServer(t, http.StatusOK, `{"jsonrpc":"2.0","id":1,"result":"0x1"}`)
	r := newRouter(t, server.URL, nil)

	batch := []gethrpc.BatchElem{{Method: "eth_chainId"}}

	err := r.BatchCallContext(t.Context(), batch)
	require.Error(t, err)
	assert.True(t, errors.Is(err, auth.ErrNotSignedIn))
	assert.NoError(t, batch[0].Error)
	assert.Equal(t, int32(0), hits.Load())
}
