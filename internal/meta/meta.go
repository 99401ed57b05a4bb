// Where: internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep names, directory layout, and generator identity in one place.
package meta

const (
	// Project Identity
	AppName   = "oapigen"
	EnvPrefix = "OAPIGEN_"

	// Directory Layout
	SpecsDir   = "yamls"
	OutputDir  = "apis"
	ConfigFile = "oapigen.yaml"

	// External Generator
	GeneratorProgram = "openapi-generator"
	GeneratorImage   = "openapitools/openapi-generator-cli:v7.10.0"
)
