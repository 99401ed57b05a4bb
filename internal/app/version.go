package app

import (
	"fmt"
	"io"

	"github.com/poruru-code/oapigen/internal/version"
)

// runVersion prints the version information of the CLI.
func runVersion(_ CLI, _ Dependencies, out io.Writer) int {
	fmt.Fprintln(out, version.GetVersion())
	return 0
}
