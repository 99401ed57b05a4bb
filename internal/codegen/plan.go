// Where: internal/codegen/plan.go
// What: Dry-run listing of generator invocations.
// Why: Show what BuildAll or Build would run without spawning anything.
package codegen

// PlannedBuild describes one generator invocation.
type PlannedBuild struct {
	Spec      string
	Service   string
	Kind      BuildKind
	Generator string
	Output    string
	Command   Command
}

// Plan returns the builds BuildAll would run, in the same order.
func (g *Generator) Plan() ([]PlannedBuild, error) {
	specs, err := g.specs()
	if err != nil {
		return nil, err
	}
	return g.PlanSpecs(specs, "")
}

// PlanSpecs returns the builds for the given specs. An empty kind plans the
// server then the client for each spec.
func (g *Generator) PlanSpecs(specs []string, kind string) ([]PlannedBuild, error) {
	kinds := []BuildKind{KindServer, KindClient}
	if kind != "" {
		parsed, err := ParseBuildKind(kind)
		if err != nil {
			return nil, err
		}
		kinds = []BuildKind{parsed}
	}

	plan := make([]PlannedBuild, 0, len(specs)*len(kinds))
	for _, spec := range specs {
		for _, k := range kinds {
			command := g.Command(k, spec)
			plan = append(plan, PlannedBuild{
				Spec:      spec,
				Service:   ServiceName(spec),
				Kind:      k,
				Generator: k.GeneratorName(),
				Output:    command.Args[len(command.Args)-1],
				Command:   command,
			})
		}
	}
	return plan, nil
}
