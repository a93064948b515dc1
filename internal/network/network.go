package network

import (
	"fmt"
	"strings"

	"github/chapool/go-bitski/internal/chains"
)

const (
	// ServiceBaseURL is the prefix of every service-hosted RPC endpoint.
	ServiceBaseURL = "https://api.bitski.com/v1/web3"
	// ServiceDomain gates the REST lane.
	ServiceDomain = "bitski.com"
	// ServiceAPIHost gates the X-API-Key header on the plain lane.
	ServiceAPIHost = "api.bitski.com"

	// MainnetIdentifier bypasses the chain registry.
	MainnetIdentifier = "mainnet"
	// GoerliIdentifier is remapped to GoerliShortName before the registry lookup.
	GoerliIdentifier = "goerli"
	GoerliShortName  = "gor"

	MainnetChainID uint64 = 1
)

// Mainnet is served from a dedicated endpoint instead of the chain id suffixed one.
var Mainnet = Network{
	RPCURL:  ServiceBaseURL + "/" + MainnetIdentifier,
	ChainID: MainnetChainID,
}

// Network pairs an RPC endpoint with the chain id it serves.
// Two networks are equal iff both fields are equal.
type Network struct {
	RPCURL  string `json:"rpcUrl"`
	ChainID uint64 `json:"chainId"`
}

// FromChain builds the service-hosted network for a registry entry.
func FromChain(chain chains.Chain) Network {
	return Network{
		RPCURL:  fmt.Sprintf("%s/%d", ServiceBaseURL, chain.ChainID),
		ChainID: chain.ChainID,
	}
}

// WithRPCURL returns a copy of n pointing at rpcURL.
func (n Network) WithRPCURL(rpcURL string) Network {
	n.RPCURL = rpcURL
	return n
}

// IsServiceEndpoint reports whether the endpoint belongs to the service's domain.
func (n Network) IsServiceEndpoint() bool {
	return strings.Contains(n.RPCURL, ServiceDomain)
}

// ForwardsAPIKey reports whether plain JSON-RPC calls may carry the client's API key.
// Third-party endpoints must never receive it.
func (n Network) ForwardsAPIKey() bool {
	return strings.Contains(n.RPCURL, ServiceAPIHost)
}

func (n Network) String() string {
	return fmt.Sprintf("%s (chain %d)", n.RPCURL, n.ChainID)
}
