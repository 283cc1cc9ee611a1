package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/hwickert/pidkeep/cmd/cli/config"
	"github.com/hwickert/pidkeep/cmd/cli/console"
	"github.com/hwickert/pidkeep/cmd/cli/runner"
	"github.com/hwickert/pidkeep/internal/pidkeep"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

func NewRunCmd(
	ctx context.Context,
	logger *slog.Logger,
	viper *viper.Viper,
	console *console.Console,
	cfg *config.Cfg,
) *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run -- command [args...]",
		Short: "run a command while holding the pid file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if retries, err := cmd.Flags().GetInt("retries"); err == nil && cmd.Flags().Changed("retries") {
				cfg.Retries = retries
			}
			if sleep, err := cmd.Flags().GetDuration("sleep"); err == nil && cmd.Flags().Changed("sleep") {
				cfg.Sleep = sleep
			}

			return runner.RunCmdE(ctx, logger, viper, console, args, cfg, runRunCmd())
		},
	}

	runCmd.Flags().Int("retries", cfg.Retries, "additional create attempts before giving up")
	runCmd.Flags().Duration("sleep", cfg.Sleep, "pause between create attempts")

	runCmd.SetOut(console.Stdout)
	runCmd.SetErr(console.Stderr)

	return runCmd
}

func runRunCmd() runner.RunE {
	return func(
		ctx context.Context,
		console *console.Console,
		args []string,
		di *pidkeep.Pidkeep,
	) error {
		path, err := di.PidFile.File()
		if err != nil {
			return err
		}

		if !di.PidFile.Create(ctx, di.Cfg.Sleep, di.Cfg.Retries) {
			return fmt.Errorf("run: another instance already holds %s", path)
		}

		// The deferred Close in RunCmdE executes the armed removal, so the
		// file disappears on every exit path, panics included.
		if err := di.PidFile.ArmSelfCleanup(false); err != nil {
			return err
		}

		di.Logger.InfoContext(ctx, "run: holding pid file",
			slog.String("path", path),
			slog.Int("pid", di.PidFile.Pid()))

		sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		g, gctx := errgroup.WithContext(sigCtx)

		g.Go(func() error {
			// cancel the signal context once the child is done, so the
			// watcher below unblocks on clean exits too
			defer stop()
			return di.Command.RunInteractive(gctx, console.Stdout, console.Stderr, args[0], args[1:]...)
		})

		g.Go(func() error {
			<-gctx.Done()
			di.Logger.DebugContext(ctx, "run: shutting down")
			return nil
		})

		return g.Wait()
	}
}
