package network

import (
	"github/chapool/go-bitski/internal/chains"
)

// Resolver turns user supplied identifiers into service-hosted networks.
type Resolver struct {
	registry *chains.Registry
}

// NewResolver creates a resolver backed by registry.
func NewResolver(registry *chains.Registry) *Resolver {
	return &Resolver{registry: registry}
}

// FromIdentifier resolves a chain name, short name or chain id.
// "mainnet" never touches the registry and "goerli" is looked up by its short name.
// Registry misses are returned as chains.ErrChainNotFound.
func (r *Resolver) FromIdentifier(identifier string) (Network, error) {
	switch identifier {
	case MainnetIdentifier:
		return Mainnet, nil
	case GoerliIdentifier:
		identifier = GoerliShortName
	}

	chain, err := r.registry.Resolve(identifier)
	if err != nil {
		return Network{}, err
	}

	return FromChain(chain), nil
}

// FromIdentifier resolves identifier against the embedded chain registry.
func FromIdentifier(identifier string) (Network, error) {
	return NewResolver(chains.Default()).FromIdentifier(identifier)
}
