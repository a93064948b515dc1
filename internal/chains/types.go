package chains

import "github.com/pkg/errors"

var (
	// ErrChainNotFound is returned when no registry entry matches an identifier.
	ErrChainNotFound = errors.New("chain not found")
	// ErrInvalidAsset is returned when the chain data asset violates its schema.
	ErrInvalidAsset = errors.New("invalid chain data asset")
)

// Chain is a single entry of the chain data asset.
type Chain struct {
	Name      string   `json:"name"`      // Display name (e.g. "Polygon Mainnet")
	ShortName string   `json:"shortName"` // Canonical abbreviation (e.g. "matic")
	Chain     string   `json:"chain"`     // Network family label (e.g. "ETH", "Polygon")
	ChainID   uint64   `json:"chainId"`   // Unique numeric chain id
	RPC       []string `json:"rpc"`       // Default RPC endpoints, may be empty
}
