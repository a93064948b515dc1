package command

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-bitski/internal/bitski"
	"github/chapool/go-bitski/internal/config"
)

// NewSubcommandGroup returns a command that only groups subcommands and
// prints its help when run directly.
func NewSubcommandGroup(use string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: use + " related subcommands",
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	cmd.AddCommand(subcommands...)

	return cmd
}

// SetupLogger configures the global zerolog logger.
func SetupLogger(cfg config.Logger) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(cfg.Level)

	if cfg.PrettyPrintConsole {
		log.Logger = log.Output(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = os.Stderr
			w.TimeFormat = "15:04:05"
		}))
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

// WithClient sets up logging, builds a client from cfg and runs f with it.
func WithClient(ctx context.Context, cfg config.Client, f func(ctx context.Context, c *bitski.Client) error, opts ...bitski.Option) error {
	SetupLogger(cfg.Logger)

	c, err := bitski.FromConfig(cfg, opts...)
	if err != nil {
		log.Debug().Err(err).Msg("Failed to create client")
		return errors.Wrap(err, "failed to create client")
	}

	return f(ctx, c)
}
