package chains

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/go-bitski/internal/network"
)

func newResolve() *cobra.Command {
	var rpcURL string

	cmd := &cobra.Command{
		Use:   "resolve <identifier>",
		Short: "Resolves a network identifier",
		Long: `Resolves a chain name, short name or chain id to the network it is served from.
"mainnet" and "goerli" are accepted as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := network.FromIdentifier(args[0])
			if err != nil {
				return err
			}

			if rpcURL != "" {
				n = n.WithRPCURL(rpcURL)
			}

			out, err := json.MarshalIndent(n, "", "  ")
			if err != nil {
				return errors.Wrap(err, "failed to marshal network")
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&rpcURL, "rpc-url", "", "Override the network's RPC URL")

	return cmd
}
