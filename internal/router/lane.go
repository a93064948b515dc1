package router

import (
	"slices"

	"github/chapool/go-bitski/internal/network"
)

// Lane is the transport path a call is routed through.
type Lane int

const (
	// LanePlain forwards standard JSON-RPC POSTs to the network endpoint.
	LanePlain Lane = iota
	// LaneAuthenticated sends JSON-RPC POSTs with a bearer token.
	LaneAuthenticated
	// LaneREST issues GET requests against the service's REST gateway.
	LaneREST
)

func (l Lane) String() string {
	switch l {
	case LaneAuthenticated:
		return "authenticated"
	case LaneREST:
		return "rest"
	default:
		return "plain"
	}
}

// AuthMethods always need a signed in user.
var AuthMethods = []string{
	"eth_sendTransaction",
	"eth_accounts",
	"eth_sign",
	"personal_sign",
	"eth_signTypedData",
	"eth_signTypedData_v3",
	"eth_signTypedData_v4",
}

// RESTMethods are served by the REST gateway when the endpoint is service-hosted.
var RESTMethods = []string{
	"eth_blockNumber",
	"eth_getBlockByNumber",
	"net_version",
	"eth_getLogs",
}

// IsAuthMethod reports whether method is one of AuthMethods.
func IsAuthMethod(method string) bool {
	return slices.Contains(AuthMethods, method)
}

// IsRESTMethod reports whether method is one of RESTMethods.
func IsRESTMethod(method string) bool {
	return slices.Contains(RESTMethods, method)
}

// Classify picks the lane for method on the endpoint rpcURL.
// The first match wins: auth methods, then REST methods on the service's
// domain, then everything else.
func Classify(method string, rpcURL string) Lane {
	switch {
	case IsAuthMethod(method):
		return LaneAuthenticated
	case IsRESTMethod(method) && (network.Network{RPCURL: rpcURL}).IsServiceEndpoint():
		return LaneREST
	default:
		return LanePlain
	}
}
