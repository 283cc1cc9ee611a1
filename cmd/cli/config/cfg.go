package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hwickert/pidkeep/internal/homedir"
	"gopkg.in/yaml.v2"
)

type Cfg struct {
	PidFile  string
	Retries  int
	Sleep    time.Duration
	LogLevel string
}

type ConfigData struct {
	PidFile  string `yaml:"pid_file"`
	Retries  int    `yaml:"retries"`
	Sleep    string `yaml:"sleep"`
	LogLevel string `yaml:"log_level"`
}

func Default() *Cfg {
	return &Cfg{
		Retries:  0,
		Sleep:    time.Second,
		LogLevel: "info",
	}
}

// ReadYaml loads {configDir}/pidkeep/config.yaml. A missing file is not an
// error; defaults apply.
func ReadYaml() (*Cfg, error) {
	dir, err := homedir.Config()

	if err != nil {
		//nolint:errorlint // no wrap
		return nil, fmt.Errorf("config: error getting config dir. %v", err)
	}

	return readYamlFrom(filepath.Join(dir, "pidkeep", "config.yaml"))
}

func readYamlFrom(path string) (*Cfg, error) {
	yamlData, err := os.ReadFile(path)

	if os.IsNotExist(err) {
		return Default(), nil
	}

	if err != nil {
		//nolint:errorlint // no wrap
		return nil, fmt.Errorf("config: could not read file. %v", err)
	}

	var configData ConfigData
	err = yaml.Unmarshal(yamlData, &configData)

	if err != nil {
		//nolint:errorlint // no wrap
		return nil, fmt.Errorf("config: could not unmarshal cfg. %v", err)
	}

	cfg := Default()
	cfg.PidFile = configData.PidFile
	cfg.Retries = configData.Retries

	if configData.Sleep != "" {
		sleep, err := time.ParseDuration(configData.Sleep)
		if err != nil {
			return nil, fmt.Errorf("config: could not parse sleep: %w", err)
		}
		cfg.Sleep = sleep
	}

	if configData.LogLevel != "" {
		cfg.LogLevel = configData.LogLevel
	}

	return cfg, nil
}

func (c *Cfg) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
