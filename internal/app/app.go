// Where: internal/app/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/poruru-code/oapigen/internal/meta"
)

// Dependencies holds all injected dependencies required for CLI command execution.
// Nil fields fall back to process defaults so tests only set what they fake.
type Dependencies struct {
	Out       io.Writer
	ErrOut    io.Writer
	NewRunner RunnerFactory
	NewRunID  func() string
}

// CLI defines the command-line interface structure parsed by Kong.
// It contains global flags and all subcommand definitions.
type CLI struct {
	Dir        string        `short:"C" name:"dir" help:"Working directory containing yamls/ and apis/ (default: $OAPIGEN_DIR or .)"`
	Config     string        `name:"config" help:"Path to project config (default: <dir>/oapigen.yaml)"`
	EnvFile    string        `name:"env-file" help:"Path to .env file"`
	LogLevel   string        `name:"log-level" help:"Log level: debug, info, warn, error"`
	Runtime    string        `name:"runtime" help:"Generator runtime: exec or docker"`
	Build      BuildCmd      `cmd:"" help:"Generate servers and clients"`
	Plan       PlanCmd       `cmd:"" help:"Print generator commands without running them"`
	Init       InitCmd       `cmd:"" help:"Write a default project config"`
	Complete   CompleteCmd   `cmd:"" name:"__complete" hidden:"" help:"Completion candidate provider"`
	Completion CompletionCmd `cmd:"" help:"Generate shell completion script"`
	Version    VersionCmd    `cmd:"" help:"Show version information"`
}

type VersionCmd struct{}

type BuildCmd struct {
	Kind  string   `short:"k" help:"Build only this kind (server or client)"`
	Specs []string `arg:"" optional:"" help:"Spec files under yamls/ (default: all)"`
}

type PlanCmd struct {
	Kind   string   `short:"k" help:"Plan only this kind (server or client)"`
	Format string   `short:"f" default:"{{ .Command }}" help:"Go template rendered per build (sprig functions available)"`
	Specs  []string `arg:"" optional:"" help:"Spec files under yamls/ (default: all)"`
}

type InitCmd struct {
	Force bool `help:"Overwrite an existing config file"`
}

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	deps = withDefaults(deps)
	out := deps.Out

	cli := CLI{}
	exitCode := -1
	parser, err := kong.New(&cli,
		kong.Name(meta.AppName),
		kong.Description("Generate OpenAPI servers and clients for every spec in yamls/."),
		kong.Writers(out, out),
		kong.Exit(func(code int) { exitCode = code }),
	)
	if err != nil {
		return exitWithError(out, err)
	}

	if len(args) == 0 {
		args = []string{"--help"}
	}
	ctx, err := parser.Parse(args)
	if exitCode >= 0 {
		return exitCode
	}
	if err != nil {
		return exitWithError(out, err)
	}

	if exitCode, handled := dispatchCommand(ctx.Command(), cli, deps, out); handled {
		return exitCode
	}

	fmt.Fprintln(out, "unknown command")
	return 1
}

type commandHandler func(CLI, Dependencies, io.Writer) int

type prefixHandler struct {
	prefix  string
	handler commandHandler
}

func dispatchCommand(command string, cli CLI, deps Dependencies, out io.Writer) (int, bool) {
	exactHandlers := map[string]commandHandler{
		"init":             runInit,
		"__complete specs": runCompleteSpecs,
		"__complete kinds": runCompleteKinds,
		"completion bash":  func(_ CLI, _ Dependencies, out io.Writer) int { return runCompletionBash(cli, out) },
		"completion zsh":   func(_ CLI, _ Dependencies, out io.Writer) int { return runCompletionZsh(cli, out) },
		"completion fish":  func(_ CLI, _ Dependencies, out io.Writer) int { return runCompletionFish(cli, out) },
		"version":          runVersion,
	}

	if handler, ok := exactHandlers[command]; ok {
		return handler(cli, deps, out), true
	}

	// Positional specs show up in the command path ("build <specs>").
	prefixHandlers := []prefixHandler{
		{prefix: "build", handler: runBuild},
		{prefix: "plan", handler: runPlan},
	}

	for _, entry := range prefixHandlers {
		if strings.HasPrefix(command, entry.prefix) {
			return entry.handler(cli, deps, out), true
		}
	}

	return 1, false
}

func withDefaults(deps Dependencies) Dependencies {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}
	if deps.NewRunner == nil {
		deps.NewRunner = DefaultRunnerFactory
	}
	if deps.NewRunID == nil {
		deps.NewRunID = uuid.NewString
	}
	return deps
}

func exitWithError(out io.Writer, err error) int {
	fmt.Fprintf(out, "Error: %v\n", err)
	return 1
}
