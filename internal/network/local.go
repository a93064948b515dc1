package network

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	// LocalAnvil is the reserved name of the local development node.
	LocalAnvil = "anvil"
	// LocalChainID is the chain id local development nodes run with.
	LocalChainID uint64 = 31337
	// DefaultLocalPort is the port a local node listens on unless overridden.
	DefaultLocalPort = 8545
)

// ErrLocalNetworkNotConfigured is returned for unknown local network names.
var ErrLocalNetworkNotConfigured = errors.New("local network not configured")

// NewLocal returns the network of a local development node. rpcOverride, if
// not empty, replaces the default localhost URL.
func NewLocal(name string, rpcOverride string) (Network, error) {
	switch name {
	case LocalAnvil:
		rpcURL := rpcOverride
		if rpcURL == "" {
			rpcURL = fmt.Sprintf("http://localhost:%d", DefaultLocalPort)
		}

		return Network{RPCURL: rpcURL, ChainID: LocalChainID}, nil
	default:
		return Network{}, errors.Wrapf(ErrLocalNetworkNotConfigured, "%q", name)
	}
}
