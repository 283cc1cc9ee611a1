package pidkeep

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hwickert/pidkeep/cmd/cli/config"
	"github.com/hwickert/pidkeep/internal/clock"
	"github.com/hwickert/pidkeep/internal/command"
	"github.com/hwickert/pidkeep/internal/pidfile"
	"github.com/spf13/viper"
)

// Pidkeep wires the pieces a command needs.
type Pidkeep struct {
	Logger  *slog.Logger
	Cfg     *config.Cfg
	Clock   clock.Clock
	Command *command.Command
	PidFile *pidfile.PidFile
}

func New(logger *slog.Logger, viper *viper.Viper, cfg *config.Cfg) (*Pidkeep, error) {
	applyOverrides(viper, cfg)

	cl := clock.NewSystemClock()

	opts := []pidfile.Option{pidfile.WithClock(cl)}

	// The default path location is computed once here and injected; the
	// library itself only falls back to os.Executable when nothing is given.
	if exe, err := os.Executable(); err == nil {
		name := filepath.Base(exe)
		opts = append(opts, pidfile.WithProgramInfo(
			filepath.Dir(exe),
			strings.TrimSuffix(name, filepath.Ext(name)),
		))
	}

	if cfg.PidFile != "" {
		opts = append(opts, pidfile.WithPath(cfg.PidFile))
	}

	return &Pidkeep{
		Logger:  logger,
		Cfg:     cfg,
		Clock:   cl,
		Command: command.NewCommand(logger),
		PidFile: pidfile.New(logger, opts...),
	}, nil
}

// applyOverrides layers PIDKEEP_* environment values over the file config.
func applyOverrides(v *viper.Viper, cfg *config.Cfg) {
	if v == nil {
		return
	}

	if v.IsSet("pid_file") {
		cfg.PidFile = v.GetString("pid_file")
	}
	if v.IsSet("retries") {
		cfg.Retries = v.GetInt("retries")
	}
	if v.IsSet("sleep") {
		cfg.Sleep = v.GetDuration("sleep")
	}
}
