package chains

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github/chapool/go-bitski/internal/chains"
	"github/chapool/go-bitski/internal/network"
)

func newList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lists all known chains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tab := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)

			fmt.Fprintln(tab, "CHAIN ID\tSHORT NAME\tNAME\tRPC URL")
			for _, chain := range chains.Default().All() {
				fmt.Fprintf(tab, "%d\t%s\t%s\t%s\n", chain.ChainID, chain.ShortName, chain.Name, network.FromChain(chain).RPCURL)
			}

			return tab.Flush()
		},
	}
}
