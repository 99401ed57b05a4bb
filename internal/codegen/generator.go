// Where: internal/codegen/generator.go
// What: OpenAPI build orchestration.
// Why: Run the external generator once per spec for the server and the client artifact.
package codegen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/poruru-code/oapigen/internal/infra/runner"
	"github.com/poruru-code/oapigen/internal/meta"
)

// Generator handles OpenAPI code generation for a working directory.
// It is read-only after New returns.
type Generator struct {
	root           string
	inputDir       string
	outputDir      string
	program        string
	failOnExitCode bool
	runner         runner.CommandRunner
	logger         *slog.Logger
}

// Option customizes a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for build results.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithProgram overrides the generator executable name.
func WithProgram(program string) Option {
	return func(g *Generator) {
		if program = strings.TrimSpace(program); program != "" {
			g.program = program
		}
	}
}

// WithFailOnExitCode makes a non-zero exit code fail a build even when
// stderr is empty.
func WithFailOnExitCode(enabled bool) Option {
	return func(g *Generator) {
		g.failOnExitCode = enabled
	}
}

// New validates dir and returns a Generator rooted there. An empty dir means
// the current directory. The directory is checked once; nothing is created.
func New(dir string, cmdRunner runner.CommandRunner, opts ...Option) (*Generator, error) {
	if cmdRunner == nil {
		return nil, fmt.Errorf("%w: command runner is nil", ErrInvalidArgument)
	}
	if dir == "" {
		dir = "."
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDirectoryNotFound, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, dir)
	}

	// Paths are formatted rather than joined so that "./svc" stays "./svc/yamls".
	g := &Generator{
		root:      dir,
		inputDir:  fmt.Sprintf("%s/%s", dir, meta.SpecsDir),
		outputDir: fmt.Sprintf("%s/%s", dir, meta.OutputDir),
		program:   meta.GeneratorProgram,
		runner:    cmdRunner,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Root returns the working directory the Generator was created with.
func (g *Generator) Root() string { return g.root }

// InputDir returns the spec directory.
func (g *Generator) InputDir() string { return g.inputDir }

// OutputDir returns the artifact directory.
func (g *Generator) OutputDir() string { return g.outputDir }

// BuildAll generates the server and then the client for every entry of the
// input directory. The first failure stops the batch.
func (g *Generator) BuildAll(ctx context.Context) error {
	specs, err := g.specs()
	if err != nil {
		return err
	}
	for _, spec := range specs {
		if err := g.Build(ctx, string(KindServer), spec); err != nil {
			return err
		}
		if err := g.Build(ctx, string(KindClient), spec); err != nil {
			return err
		}
	}
	return nil
}

// Build runs the generator for one spec. kind is matched case-insensitively.
// Anything written to stderr fails the build; the exit code is ignored unless
// WithFailOnExitCode is set.
func (g *Generator) Build(ctx context.Context, kind, spec string) error {
	buildKind, err := ParseBuildKind(kind)
	if err != nil {
		return err
	}
	if spec == "" {
		return fmt.Errorf("%w: spec name is required", ErrInvalidArgument)
	}

	command := g.Command(buildKind, spec)
	g.logger.Debug("running generator", "command", command.String())

	result, err := g.runner.Capture(ctx, "", command.Program, command.Args...)
	if err != nil {
		return err
	}
	if len(result.Stdout) > 0 {
		g.logger.Debug("generator output", "spec", spec, "kind", buildKind.String(), "stdout", string(result.Stdout))
	}
	if len(result.Stderr) > 0 || (g.failOnExitCode && result.ExitCode != 0) {
		return &ExternalToolError{Command: command, Stderr: result.Stderr, ExitCode: result.ExitCode}
	}

	g.logger.Info(fmt.Sprintf("%s-%s built.", ServiceName(spec), buildKind))
	return nil
}

func (g *Generator) specs() ([]string, error) {
	entries, err := os.ReadDir(g.inputDir)
	if err != nil {
		return nil, fmt.Errorf("list specs: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}
