package execute

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/go-bitski/internal/bitski"
	"github/chapool/go-bitski/internal/config"
	"github/chapool/go-bitski/internal/metrics"
	"github/chapool/go-bitski/internal/network"
	"github/chapool/go-bitski/internal/util/command"
)

const (
	networkFlag = "network"
	methodFlag  = "method"
	paramsFlag  = "params"
	localFlag   = "local"
	rpcURLFlag  = "rpc-url"
	metricsFlag = "metrics"
)

type flags struct {
	network    string
	networkSet bool
	method  string
	params  []string
	local   bool
	rpcURL  string
	metrics bool
}

func New() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "execute",
		Short: "Sends a single JSON-RPC call",
		Long: `Sends a single JSON-RPC call and prints its result.

Every --params value is one JSON encoded positional parameter.

Examples:
  app execute --method eth_blockNumber
  app execute -n polygon -m eth_getBalance -p '"0x00000000000000000000000000000000000000aa"' -p '"latest"'
  app execute --local -n anvil -m eth_chainId`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.networkSet = cmd.Flags().Changed(networkFlag)
			return run(cmd.Context(), cmd.OutOrStdout(), f)
		},
	}

	cmd.Flags().StringVarP(&f.network, networkFlag, "n", config.DefaultNetwork, "Network name, short name or chain id, BITSKI_NETWORK if unset; local node name with --local, anvil if unset")
	cmd.Flags().StringVarP(&f.method, methodFlag, "m", "", "JSON-RPC method")
	cmd.Flags().StringArrayVarP(&f.params, paramsFlag, "p", nil, "JSON encoded parameter, repeatable")
	cmd.Flags().BoolVar(&f.local, localFlag, false, "Talk to a local development node")
	cmd.Flags().StringVar(&f.rpcURL, rpcURLFlag, "", "Override the network's RPC URL")
	cmd.Flags().BoolVar(&f.metrics, metricsFlag, false, "Print call metrics after the result")

	if err := cmd.MarkFlagRequired(methodFlag); err != nil {
		panic(err)
	}

	return cmd
}

// ParseParams decodes every raw value as one JSON parameter.
func ParseParams(raw []string) ([]any, error) {
	params := make([]any, 0, len(raw))

	for i, value := range raw {
		var param any
		if err := json.Unmarshal([]byte(value), &param); err != nil {
			return nil, errors.Wrapf(err, "param %d is not valid JSON: %s", i, value)
		}
		params = append(params, param)
	}

	return params, nil
}

func run(ctx context.Context, out io.Writer, f flags) error {
	params, err := ParseParams(f.params)
	if err != nil {
		return err
	}

	cfg := config.DefaultClientConfigFromEnv()
	if f.rpcURL != "" {
		cfg.RPCOverride = f.rpcURL
	}

	m := metrics.New()

	var result json.RawMessage
	if f.local {
		command.SetupLogger(cfg.Logger)

		name := f.network
		if !f.networkSet {
			name = network.LocalAnvil
		}

		c := bitski.NewLocalMode(cfg.RPCOverride, bitski.WithMetrics(m))
		result, err = c.ExecuteLocal(ctx, name, f.method, params)
	} else {
		err = command.WithClient(ctx, cfg, func(ctx context.Context, c *bitski.Client) error {
			identifier := f.network
			if !f.networkSet {
				identifier = cfg.Network
			}

			var execErr error
			result, execErr = c.Execute(ctx, identifier, f.method, params)
			return execErr
		}, bitski.WithMetrics(m))
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, string(result))

	if f.metrics {
		return m.WriteText(out)
	}

	return nil
}
