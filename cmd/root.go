package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-bitski/cmd/chains"
	"github/chapool/go-bitski/cmd/env"
	"github/chapool/go-bitski/cmd/execute"
	"github/chapool/go-bitski/cmd/token"
	"github/chapool/go-bitski/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: config.GetFormattedBuildArgs(),
	Use:     "app",
	Short:   config.ModuleName,
	Long: fmt.Sprintf(`%v

A JSON-RPC client for service-hosted and local blockchain endpoints.
Requires configuration through ENV, a .env file in the working directory is loaded first.`, config.ModuleName),
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Warn().Err(err).Msg("Failed to load .env file")
	}

	// attach the subcommands
	rootCmd.AddCommand(
		chains.New(),
		env.New(),
		execute.New(),
		token.New(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		os.Exit(1)
	}
}
