// Where: internal/app/build.go
// What: Build command implementation.
// Why: Run the generator for every spec, or for the specs named on the command line.
package app

import (
	"context"
	"io"

	"github.com/poruru-code/oapigen/internal/codegen"
	"github.com/poruru-code/oapigen/internal/ui"
)

func runBuild(cli CLI, deps Dependencies, out io.Writer) int {
	sess, err := openSession(cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}
	defer sess.Close()

	gen := sess.Generator
	logger := sess.Logger
	ctx := context.Background()

	logger.Debug("build started", "dir", sess.Dir, "runtime", sess.Config.Runtime)
	if err := buildSpecs(ctx, gen, cli.Build); err != nil {
		logger.Error("build failed", "error", err)
		return exitWithError(out, err)
	}

	ui.New(out).Success("Build complete")
	return 0
}

func buildSpecs(ctx context.Context, gen *codegen.Generator, cmd BuildCmd) error {
	if len(cmd.Specs) == 0 && cmd.Kind == "" {
		return gen.BuildAll(ctx)
	}

	specs := cmd.Specs
	if len(specs) == 0 {
		plan, err := gen.Plan()
		if err != nil {
			return err
		}
		specs = uniqueSpecs(plan)
	}

	plan, err := gen.PlanSpecs(specs, cmd.Kind)
	if err != nil {
		return err
	}
	for _, item := range plan {
		if err := gen.Build(ctx, item.Kind.String(), item.Spec); err != nil {
			return err
		}
	}
	return nil
}

func uniqueSpecs(plan []codegen.PlannedBuild) []string {
	seen := map[string]bool{}
	var specs []string
	for _, item := range plan {
		if seen[item.Spec] {
			continue
		}
		seen[item.Spec] = true
		specs = append(specs, item.Spec)
	}
	return specs
}
