// Where: cmd/oapigen/main.go
// What: CLI entrypoint.
// Why: Execute oapigen commands with process dependencies.
package main

import (
	"os"

	"github.com/poruru-code/oapigen/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:], buildDependencies()))
}
