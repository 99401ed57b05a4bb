// Where: internal/codegen/command.go
// What: Generator command construction and service name derivation.
// Why: Produce a deterministic argument list for each (spec, kind) pair.
package codegen

import (
	"fmt"
	"strings"
)

// Command is one generator invocation.
type Command struct {
	Program string
	Args    []string
}

// String renders the command as space-separated tokens.
func (c Command) String() string {
	tokens := append([]string{c.Program}, c.Args...)
	return strings.Join(tokens, " ")
}

// ServiceName derives the package name from a spec file name.
// Only the final path segment is considered and its final extension is
// dropped; the dot-separated segment in front of that extension is the name,
// so "petstore.yaml" yields "petstore" and "a/b/petstore.v2.yaml" yields "v2".
func ServiceName(spec string) string {
	base := spec
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	parts := strings.Split(base, ".")
	if len(parts) < 2 {
		return parts[0]
	}
	return parts[len(parts)-2]
}

// Command returns the invocation Build would run for kind and spec.
// The option order is fixed.
func (g *Generator) Command(kind BuildKind, spec string) Command {
	name := ServiceName(spec)
	return Command{
		Program: g.program,
		Args: []string{
			"generate",
			"--input-spec", fmt.Sprintf("%s/%s", g.inputDir, spec),
			"--generator-name", kind.GeneratorName(),
			"--package-name", name,
			"--output", fmt.Sprintf("%s/%s-%s", g.outputDir, name, kind),
		},
	}
}
