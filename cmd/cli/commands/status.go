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

func NewStatusCmd(
	ctx context.Context,
	logger *slog.Logger,
	viper *viper.Viper,
	console *console.Console,
	cfg *config.Cfg,
) *cobra.Command {
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "report whether a live instance holds the pid file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return runner.RunCmdE(ctx, logger, viper, console, args, cfg, runStatusCmd())
		},
	}

	statusCmd.SetOut(console.Stdout)
	statusCmd.SetErr(console.Stderr)

	return statusCmd
}

func runStatusCmd() runner.RunE {
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

		if di.PidFile.Running() {
			// a live owner holding the flock never lets us read its pid
			if pid := di.PidFile.Pid(); pid > 0 {
				fmt.Fprintf(console.Stdout, "running (pid %d): %s\n", pid, path)
			} else {
				fmt.Fprintf(console.Stdout, "running (owner unknown): %s\n", path)
			}
			return nil
		}

		fmt.Fprintf(console.Stdout, "not running: %s\n", path)
		return fmt.Errorf("status: no live owner for %s", path)
	}
}
