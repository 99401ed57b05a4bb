// Where: internal/app/init.go
// What: Init command implementation.
// Why: Write a default oapigen.yaml so projects can pin runtime and generator settings.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/poruru-code/oapigen/internal/config"
	"github.com/poruru-code/oapigen/internal/meta"
	"github.com/poruru-code/oapigen/internal/ui"
)

func runInit(cli CLI, _ Dependencies, out io.Writer) int {
	dir, err := config.ResolveDir(cli.Dir)
	if err != nil {
		return exitWithError(out, err)
	}
	path := cli.Config
	if path == "" {
		path = config.ProjectFilePath(dir)
	}

	if _, err := os.Stat(path); err == nil && !cli.Init.Force {
		return exitWithError(out, fmt.Errorf("%s already exists (use --force to overwrite)", path))
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return exitWithError(out, err)
	}

	cfg := config.Default()
	if v := strings.TrimSpace(cli.Runtime); v != "" {
		cfg.Runtime = v
	}
	if v := strings.ToLower(strings.TrimSpace(cli.LogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if err := cfg.Validate(); err != nil {
		return exitWithError(out, err)
	}
	if err := config.Save(path, cfg); err != nil {
		return exitWithError(out, err)
	}

	console := ui.New(out)
	console.Success(fmt.Sprintf("Wrote %s", path))
	console.Item("Runtime", cfg.Runtime)
	console.Item("Generator", cfg.Generator)
	console.Info(fmt.Sprintf("Place specs under %s/yamls and run '%s build'", dir, meta.AppName))
	return 0
}
