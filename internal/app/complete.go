// Where: internal/app/complete.go
// What: Hidden completion candidate provider.
// Why: Feed spec names and build kinds to the shell completion scripts.
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/poruru-code/oapigen/internal/config"
	"github.com/poruru-code/oapigen/internal/meta"
)

// CompleteCmd lists completion candidates; errors are silent so shells stay quiet.
type CompleteCmd struct {
	Specs CompleteSpecsCmd `cmd:"" help:"List spec files"`
	Kinds CompleteKindsCmd `cmd:"" help:"List build kinds"`
}

type (
	CompleteSpecsCmd struct{}
	CompleteKindsCmd struct{}
)

func runCompleteSpecs(cli CLI, _ Dependencies, out io.Writer) int {
	dir, err := config.ResolveDir(cli.Dir)
	if err != nil {
		return 0
	}
	entries, err := os.ReadDir(fmt.Sprintf("%s/%s", dir, meta.SpecsDir))
	if err != nil {
		return 0
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fmt.Fprintln(out, entry.Name())
	}
	return 0
}

func runCompleteKinds(_ CLI, _ Dependencies, out io.Writer) int {
	fmt.Fprintln(out, "server")
	fmt.Fprintln(out, "client")
	return 0
}
