package chains

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/go-bitski/internal/bitski"
	"github/chapool/go-bitski/internal/config"
	"github/chapool/go-bitski/internal/util/command"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentVerifications = 4

var ErrVerificationFailed = errors.New("chain id verification failed")

func newVerify() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <identifier>...",
		Short: "Checks that endpoints serve the expected chain",
		Long: `Asks the endpoint of every given network for its chain id (eth_chainId)
and compares it with the chain registry.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultClientConfigFromEnv()

			return command.WithClient(cmd.Context(), cfg, func(ctx context.Context, c *bitski.Client) error {
				return Verify(ctx, cmd.OutOrStdout(), c, args)
			})
		},
	}
}

// Verify checks all identifiers concurrently and prints one line per identifier
// in input order. Returns ErrVerificationFailed if any check failed.
func Verify(ctx context.Context, out io.Writer, c *bitski.Client, identifiers []string) error {
	results := make([]error, len(identifiers))
	chainIDs := make([]uint64, len(identifiers))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentVerifications)

	for i, identifier := range identifiers {
		g.Go(func() error {
			chainID, err := c.VerifyChainID(ctx, identifier)

			results[i] = err
			chainIDs[i] = chainID

			// a failing endpoint must not cancel the others
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for i, identifier := range identifiers {
		if results[i] != nil {
			failed++
			fmt.Fprintf(out, "%s %s: %v\n", color.RedString("FAIL"), identifier, results[i])
			continue
		}

		fmt.Fprintf(out, "%s %s: chain id %d\n", color.GreenString("OK"), identifier, chainIDs[i])
	}

	if failed > 0 {
		return errors.Wrapf(ErrVerificationFailed, "%d of %d networks", failed, len(identifiers))
	}

	return nil
}
