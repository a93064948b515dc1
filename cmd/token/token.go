package token

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github/chapool/go-bitski/internal/bitski"
	"github/chapool/go-bitski/internal/config"
	"github/chapool/go-bitski/internal/util/command"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Fetches an access token",
		Long: `Exchanges the configured client credentials for an access token and prints it.
Requires BITSKI_CREDENTIAL_ID and BITSKI_CREDENTIAL_SECRET.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.DefaultClientConfigFromEnv()

			return command.WithClient(cmd.Context(), cfg, func(ctx context.Context, c *bitski.Client) error {
				token, err := c.AccessToken(ctx)
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), token)
				return nil
			})
		},
	}
}
