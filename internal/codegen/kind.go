// Where: internal/codegen/kind.go
// What: Build kinds and their generator identifiers.
// Why: Keep the kind-to-generator mapping static and in one place.
package codegen

import "strings"

// BuildKind selects which artifact the generator emits.
type BuildKind string

const (
	KindServer BuildKind = "server"
	KindClient BuildKind = "client"
)

// generatorNames maps a build kind to the generator's --generator-name value.
var generatorNames = map[BuildKind]string{
	KindClient: "python",
	KindServer: "python-flask",
}

// ParseBuildKind normalizes value to lowercase and checks it names a known kind.
func ParseBuildKind(value string) (BuildKind, error) {
	kind := BuildKind(strings.ToLower(value))
	if _, ok := generatorNames[kind]; !ok {
		return "", &InvalidBuildKindError{Kind: string(kind)}
	}
	return kind, nil
}

// GeneratorName returns the generator identifier for the kind.
func (k BuildKind) GeneratorName() string {
	return generatorNames[k]
}

func (k BuildKind) String() string {
	return string(k)
}
