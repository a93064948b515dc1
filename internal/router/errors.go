package router

import (
	"fmt"
	"net/http"

	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

// Kind classifies router failures.
type Kind int

const (
	// KindTransport is a network or IO failure.
	KindTransport Kind = iota + 1
	// KindAuthenticationFailed means no access token could be obtained.
	KindAuthenticationFailed
	// KindHTTPStatus is a non-2xx HTTP response.
	KindHTTPStatus
	// KindDeserialization means the response body was not the expected JSON.
	KindDeserialization
	// KindInternal is a malformed URL or header, a configuration defect.
	KindInternal
	// KindRPC is an error object returned by the remote JSON-RPC server.
	KindRPC
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport error"
	case KindAuthenticationFailed:
		return "authentication failed"
	case KindHTTPStatus:
		return "http status error"
	case KindDeserialization:
		return "deserialization error"
	case KindInternal:
		return "internal error"
	case KindRPC:
		return "rpc error"
	default:
		return "unknown error"
	}
}

// CodeAuthenticationFailed is the RPC error code reported for token failures.
const CodeAuthenticationFailed = http.StatusForbidden

var (
	_ gethrpc.Error     = (*Error)(nil)
	_ gethrpc.DataError = (*Error)(nil)
)

// Sentinels for errors.Is; they match any *Error of the same kind.
var (
	ErrTransport            = &Error{Kind: KindTransport}
	ErrAuthenticationFailed = &Error{Kind: KindAuthenticationFailed}
	ErrHTTPStatus           = &Error{Kind: KindHTTPStatus}
	ErrDeserialization      = &Error{Kind: KindDeserialization}
	ErrInternal             = &Error{Kind: KindInternal}
	ErrRPC                  = &Error{Kind: KindRPC}
)

// Error is returned for every failed call.
// Code holds the HTTP status for KindHTTPStatus, the server's error code for
// KindRPC and CodeAuthenticationFailed for KindAuthenticationFailed.
type Error struct {
	Kind    Kind
	Code    int
	Message string
	Data    any
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// ErrorCode makes *Error satisfy go-ethereum's rpc.Error.
func (e *Error) ErrorCode() int {
	return e.Code
}

// ErrorData makes *Error satisfy go-ethereum's rpc.DataError.
func (e *Error) ErrorData() any {
	return e.Data
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func authenticationFailed(err error) *Error {
	return &Error{
		Kind:    KindAuthenticationFailed,
		Code:    CodeAuthenticationFailed,
		Message: "failed to get access token",
		Err:     err,
	}
}

func httpStatusError(statusCode int, body []byte) *Error {
	return &Error{
		Kind:    KindHTTPStatus,
		Code:    statusCode,
		Message: fmt.Sprintf("unexpected status %d: %s", statusCode, string(body)),
	}
}
