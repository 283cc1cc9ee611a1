package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hwickert/pidkeep/cmd/cli/config"
	"github.com/hwickert/pidkeep/cmd/cli/console"
	"github.com/hwickert/pidkeep/cmd/cli/runner"
	"github.com/hwickert/pidkeep/internal/pidkeep"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewRemoveCmd(
	ctx context.Context,
	logger *slog.Logger,
	viper *viper.Viper,
	console *console.Console,
	cfg *config.Cfg,
) *cobra.Command {
	var force bool

	removeCmd := &cobra.Command{
		Use:   "remove",
		Short: "remove the pid file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return runner.RunCmdE(ctx, logger, viper, console, args, cfg, runRemoveCmd(force))
		},
	}

	removeCmd.Flags().BoolVar(&force, "force", false, "remove without ownership checks")

	removeCmd.SetOut(console.Stdout)
	removeCmd.SetErr(console.Stderr)

	return removeCmd
}

func runRemoveCmd(force bool) runner.RunE {
	return func(
		ctx context.Context,
		console *console.Console,
		_ []string,
		di *pidkeep.Pidkeep,
	) error {
		path, err := di.PidFile.File()
		if err != nil {
			return err
		}

		if err := di.PidFile.Remove(force); err != nil {
			return err
		}

		fmt.Fprintf(console.Stdout, "removed: %s\n", path)
		return nil
	}
}
