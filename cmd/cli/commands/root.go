package commands

import (
	"context"
	"log/slog"

	"github.com/hwickert/pidkeep/cmd/cli/config"
	"github.com/hwickert/pidkeep/cmd/cli/console"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewRootCmd(
	ctx context.Context,
	logger *slog.Logger,
	viper *viper.Viper,
	console *console.Console,
	cfg *config.Cfg,
) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pidkeep",
		Short:         "single-instance guard around a pid file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetOut(console.Stdout)
	rootCmd.SetErr(console.Stderr)

	rootCmd.AddCommand(
		NewRunCmd(ctx, logger, viper, console, cfg),
		NewStatusCmd(ctx, logger, viper, console, cfg),
		NewRemoveCmd(ctx, logger, viper, console, cfg),
	)

	return rootCmd
}
