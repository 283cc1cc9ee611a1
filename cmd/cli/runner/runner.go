package runner

import (
	"context"
	"log/slog"

	"github.com/hwickert/pidkeep/cmd/cli/config"
	"github.com/hwickert/pidkeep/cmd/cli/console"
	"github.com/hwickert/pidkeep/internal/pidkeep"

	"github.com/spf13/viper"
)

type RunE = func(
	ctx context.Context,
	console *console.Console,
	args []string,
	di *pidkeep.Pidkeep,
) error

// RunCmdE builds the dependency container for a command and tears the pid
// file down again when the command returns, whichever way it returns.
func RunCmdE(
	ctx context.Context,
	logger *slog.Logger,
	viper *viper.Viper,
	console *console.Console,
	args []string,
	cfg *config.Cfg,
	run RunE,
) error {
	di, err := pidkeep.New(logger, viper, cfg)

	if err != nil {
		return err
	}

	defer func() {
		_ = di.PidFile.Close()
	}()

	return run(ctx, console, args, di)
}
