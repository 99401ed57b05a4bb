// Where: internal/app/plan.go
// What: Plan command implementation.
// Why: Render the generator invocations a build would run, without running them.
package app

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/poruru-code/oapigen/internal/codegen"
)

func runPlan(cli CLI, deps Dependencies, out io.Writer) int {
	tmpl, err := parsePlanFormat(cli.Plan.Format)
	if err != nil {
		return exitWithError(out, err)
	}

	sess, err := openSession(cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}
	defer sess.Close()

	plan, err := planSpecs(sess.Generator, cli.Plan)
	if err != nil {
		return exitWithError(out, err)
	}

	rendered, err := renderPlan(tmpl, plan)
	if err != nil {
		return exitWithError(out, err)
	}
	fmt.Fprint(out, rendered)
	return 0
}

func planSpecs(gen *codegen.Generator, cmd PlanCmd) ([]codegen.PlannedBuild, error) {
	if len(cmd.Specs) == 0 {
		plan, err := gen.Plan()
		if err != nil {
			return nil, err
		}
		if cmd.Kind == "" {
			return plan, nil
		}
		return gen.PlanSpecs(uniqueSpecs(plan), cmd.Kind)
	}
	return gen.PlanSpecs(cmd.Specs, cmd.Kind)
}

func parsePlanFormat(format string) (*template.Template, error) {
	if strings.TrimSpace(format) == "" {
		format = "{{ .Command }}"
	}
	tmpl, err := template.New("plan").Funcs(sprig.TxtFuncMap()).Parse(format)
	if err != nil {
		return nil, fmt.Errorf("parse format: %w", err)
	}
	return tmpl, nil
}

func renderPlan(tmpl *template.Template, plan []codegen.PlannedBuild) (string, error) {
	var buf bytes.Buffer
	for _, item := range plan {
		var line bytes.Buffer
		if err := tmpl.Execute(&line, item); err != nil {
			return "", fmt.Errorf("render %s-%s: %w", item.Service, item.Kind, err)
		}
		buf.WriteString(strings.TrimRight(line.String(), "\n"))
		buf.WriteByte('\n')
	}
	return buf.String(), nil
}
