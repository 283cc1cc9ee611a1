package setup

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hwickert/pidkeep/cmd/cli/commands"
	"github.com/hwickert/pidkeep/cmd/cli/config"
	"github.com/hwickert/pidkeep/cmd/cli/console"

	"github.com/lmittmann/tint"
	"github.com/spf13/viper"
)

type ExecutionResult = int

const (
	Ok    ExecutionResult = 0
	NotOk ExecutionResult = -1
)

func initViper(cfg *config.Cfg) (*viper.Viper, error) {
	viperInstance := viper.New()

	viperInstance.SetEnvPrefix("PIDKEEP")
	viperInstance.AutomaticEnv()

	viperInstance.SetDefault("pid_file", cfg.PidFile)
	viperInstance.SetDefault("retries", cfg.Retries)
	viperInstance.SetDefault("sleep", cfg.Sleep)

	return viperInstance, nil
}

type ProgramExecutor func(ctx context.Context, logger *slog.Logger) error

type ExecutorBuilder func(
	viper *viper.Viper,
	console *console.Console,
	cfg *config.Cfg,
) ProgramExecutor

func NewCliExecutor(
	viper *viper.Viper,
	console *console.Console,
	cfg *config.Cfg,
) ProgramExecutor {
	return func(ctx context.Context, logger *slog.Logger) error {
		return commands.NewRootCmd(ctx, logger, viper, console, cfg).ExecuteContext(ctx)
	}
}

func Run(buildExecutor ExecutorBuilder) ExecutionResult {
	start := time.Now()

	cfg, err := config.ReadYaml()

	if err != nil {
		cfg = config.Default()
	}

	logger := slog.New(tint.NewHandler(
		os.Stderr,
		&tint.Options{Level: cfg.SlogLevel()},
	))

	if err != nil {
		logger.Warn("main: could not read configuration, using defaults", slog.Any("err", err))
	}

	defer func() {
		elapsed := time.Since(start)
		logger.Debug("cli: took", slog.Duration("elapsed", elapsed))
	}()

	viper, err := initViper(cfg)

	if err != nil {
		logger.Error("main: could not setup configuration", slog.Any("err", err))
		return NotOk
	}

	console := &console.Console{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	ctx := context.Background()
	err = buildExecutor(viper, console, cfg)(ctx, logger)

	if err != nil {
		logger.Error("main: failed to execute program", slog.Any("err", err))
		return NotOk
	}

	logger.Debug("main: completed", slog.Int("status_code", Ok))

	return Ok
}
