// Where: internal/config/project.go
// What: Project config load/save helpers.
// Why: Merge defaults, oapigen.yaml, and OAPIGEN_* environment variables consistently.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	env "github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/poruru-code/oapigen/internal/meta"
)

const (
	RuntimeExec   = "exec"
	RuntimeDocker = "docker"
)

// Config holds the settings for one oapigen run.
// Fields are filled from defaults, then the project file, then the environment.
type Config struct {
	Version        int    `yaml:"version"`
	Generator      string `yaml:"generator,omitempty" env:"GENERATOR"`
	Runtime        string `yaml:"runtime,omitempty" env:"RUNTIME"`
	Image          string `yaml:"image,omitempty" env:"IMAGE"`
	FailOnExitCode bool   `yaml:"fail_on_exit_code,omitempty" env:"FAIL_ON_EXIT_CODE"`
	LogLevel       string `yaml:"log_level,omitempty" env:"LOG_LEVEL"`
}

type locator struct {
	Dir string `env:"DIR"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Version:   1,
		Generator: meta.GeneratorProgram,
		Runtime:   RuntimeExec,
		Image:     meta.GeneratorImage,
		LogLevel:  "info",
	}
}

// ResolveDir returns flagValue, else OAPIGEN_DIR, else ".".
func ResolveDir(flagValue string) (string, error) {
	if dir := strings.TrimSpace(flagValue); dir != "" {
		return dir, nil
	}
	var loc locator
	if err := env.ParseWithOptions(&loc, env.Options{Prefix: meta.EnvPrefix}); err != nil {
		return "", fmt.Errorf("read environment: %w", err)
	}
	if dir := strings.TrimSpace(loc.Dir); dir != "" {
		return dir, nil
	}
	return ".", nil
}

// ProjectFilePath returns the config file location for dir.
func ProjectFilePath(dir string) string {
	return filepath.Join(dir, meta.ConfigFile)
}

// Load builds the effective config. path names the project file; when empty
// the default location under dir is used and a missing file is not an error.
func Load(dir, path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = ProjectFilePath(dir)
	}
	if err := mergeProjectFile(&cfg, path, explicit); err != nil {
		return Config{}, err
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: meta.EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeProjectFile(cfg *Config, path string, required bool) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := validateProjectFile(payload); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(payload, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate checks values that may have come from the environment.
func (c Config) Validate() error {
	switch c.Runtime {
	case RuntimeExec, RuntimeDocker:
	default:
		return fmt.Errorf("unsupported runtime %q (expected %s or %s)", c.Runtime, RuntimeExec, RuntimeDocker)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLogLevel maps debug, info, warn, or error to a slog level.
// Only the lowercase names are accepted, matching the project file schema.
func ParseLogLevel(value string) (slog.Level, error) {
	level, ok := logLevels[value]
	if !ok {
		return slog.LevelInfo, fmt.Errorf("unsupported log level %q (expected debug, info, warn, or error)", value)
	}
	return level, nil
}

// Save writes cfg to path, creating parent directories as needed.
func Save(path string, cfg Config) error {
	payload, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, payload, 0o644)
}
