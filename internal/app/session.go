// Where: internal/app/session.go
// What: Per-invocation setup shared by build and plan.
// Why: Resolve config, logger, runner, and generator in one place.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/poruru-code/oapigen/internal/codegen"
	"github.com/poruru-code/oapigen/internal/config"
	"github.com/poruru-code/oapigen/internal/infra/runner"
)

// RunnerFactory builds the command runner for the resolved config.
// The returned closer may be nil.
type RunnerFactory func(cfg config.Config, dir string) (runner.CommandRunner, io.Closer, error)

type session struct {
	Dir       string
	Config    config.Config
	Logger    *slog.Logger
	Generator *codegen.Generator
	closer    io.Closer
}

func (s *session) Close() {
	if s.closer != nil {
		_ = s.closer.Close()
	}
}

func openSession(cli CLI, deps Dependencies) (*session, error) {
	if err := loadEnvFile(cli.EnvFile); err != nil {
		return nil, err
	}

	dir, err := config.ResolveDir(cli.Dir)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(dir, cli.Config)
	if err != nil {
		return nil, err
	}
	if v := strings.ToLower(strings.TrimSpace(cli.LogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(cli.Runtime); v != "" {
		cfg.Runtime = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := newLogger(deps.ErrOut, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger = logger.With("run", deps.NewRunID())

	cmdRunner, closer, err := deps.NewRunner(cfg, dir)
	if err != nil {
		return nil, err
	}
	gen, err := codegen.New(dir, cmdRunner,
		codegen.WithLogger(logger),
		codegen.WithProgram(cfg.Generator),
		codegen.WithFailOnExitCode(cfg.FailOnExitCode),
	)
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, err
	}

	return &session{Dir: dir, Config: cfg, Logger: logger, Generator: gen, closer: closer}, nil
}

// loadEnvFile loads path, or ./.env when path is empty and the file exists.
// Variables already set in the environment win.
func loadEnvFile(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
		return nil
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("load .env: %w", err)
		}
	}
	return nil
}

func newLogger(out io.Writer, levelName string) (*slog.Logger, error) {
	level, err := config.ParseLogLevel(levelName)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})), nil
}

// DefaultRunnerFactory returns an ExecRunner, or a DockerRunner when the
// config selects the docker runtime.
func DefaultRunnerFactory(cfg config.Config, dir string) (runner.CommandRunner, io.Closer, error) {
	if cfg.Runtime != config.RuntimeDocker {
		return runner.ExecRunner{}, nil, nil
	}

	client, err := runner.NewDockerClient()
	if err != nil {
		return nil, nil, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return runner.DockerRunner{
		Client:  client,
		Image:   cfg.Image,
		Mounts:  []string{cwd, root},
		WorkDir: cwd,
		User:    runner.HostUser(),
	}, client, nil
}
