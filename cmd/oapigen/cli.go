// Where: cmd/oapigen/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"os"

	"github.com/google/uuid"

	"github.com/poruru-code/oapigen/internal/app"
)

var newRunner app.RunnerFactory = app.DefaultRunnerFactory

// buildDependencies constructs the runtime dependencies required by the CLI.
// Results go to stdout; logs go to stderr.
func buildDependencies() app.Dependencies {
	return app.Dependencies{
		Out:       os.Stdout,
		ErrOut:    os.Stderr,
		NewRunner: newRunner,
		NewRunID:  uuid.NewString,
	}
}
