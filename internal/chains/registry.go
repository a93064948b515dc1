package chains

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

//go:embed chains.json
var chainsJSON []byte

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Registry is the read-only table of known chains, kept in asset order.
type Registry struct {
	chains []Chain
}

// Default returns the registry parsed from the embedded chain data asset.
// The asset is parsed once per process; a malformed asset panics.
func Default() *Registry {
	defaultOnce.Do(func() {
		registry, err := Parse(chainsJSON)
		if err != nil {
			panic(errors.Wrap(err, "failed to load embedded chain data"))
		}
		defaultRegistry = registry
	})

	return defaultRegistry
}

// Parse decodes and validates a chain data asset.
func Parse(data []byte) (*Registry, error) {
	var chains []Chain
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&chains); err != nil {
		return nil, errors.Wrapf(ErrInvalidAsset, "decode: %v", err)
	}

	seen := make(map[uint64]string, len(chains))
	for i := range chains {
		chain := &chains[i]

		switch {
		case chain.ChainID == 0:
			return nil, errors.Wrapf(ErrInvalidAsset, "entry %d (%q) has no chainId", i, chain.Name)
		case chain.Name == "":
			return nil, errors.Wrapf(ErrInvalidAsset, "entry %d (chainId %d) has no name", i, chain.ChainID)
		case chain.ShortName == "":
			return nil, errors.Wrapf(ErrInvalidAsset, "entry %d (chainId %d) has no shortName", i, chain.ChainID)
		case chain.Chain == "":
			return nil, errors.Wrapf(ErrInvalidAsset, "entry %d (chainId %d) has no chain", i, chain.ChainID)
		}

		if other, ok := seen[chain.ChainID]; ok {
			return nil, errors.Wrapf(ErrInvalidAsset, "chainId %d used by both %q and %q", chain.ChainID, other, chain.Name)
		}
		seen[chain.ChainID] = chain.Name

		if chain.RPC == nil {
			chain.RPC = []string{}
		}
	}

	return &Registry{chains: chains}, nil
}

// Resolve finds the first chain whose name, chain family, short name or
// decimal chain id equals identifier, ignoring case.
func (r *Registry) Resolve(identifier string) (Chain, error) {
	value := strings.ToLower(identifier)

	for _, chain := range r.chains {
		if strings.ToLower(chain.Name) == value ||
			strings.ToLower(chain.Chain) == value ||
			strings.ToLower(chain.ShortName) == value ||
			strconv.FormatUint(chain.ChainID, 10) == value {
			return chain, nil
		}
	}

	return Chain{}, errors.Wrapf(ErrChainNotFound, "%q", identifier)
}

// ByID returns the chain with the given chain id.
func (r *Registry) ByID(chainID uint64) (Chain, bool) {
	for _, chain := range r.chains {
		if chain.ChainID == chainID {
			return chain, true
		}
	}

	return Chain{}, false
}

// All returns a copy of every chain in asset order.
func (r *Registry) All() []Chain {
	result := make([]Chain, len(r.chains))
	copy(result, r.chains)
	return result
}
