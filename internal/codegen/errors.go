// Where: internal/codegen/errors.go
// What: Error taxonomy for build orchestration.
// Why: Let callers branch on failure kinds with errors.Is / errors.As.
package codegen

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrDirectoryNotFound = errors.New("directory not found")
	ErrInvalidBuildKind  = errors.New("invalid build kind")
	ErrExternalTool      = errors.New("external generator reported an error")
)

// InvalidBuildKindError reports a build kind other than server or client.
type InvalidBuildKindError struct {
	Kind string
}

func (e *InvalidBuildKindError) Error() string {
	return fmt.Sprintf("%s should be either 'server' or 'client'; was %s", e.Kind, e.Kind)
}

func (e *InvalidBuildKindError) Unwrap() error {
	return ErrInvalidBuildKind
}

// ExternalToolError carries what the generator wrote to stderr.
type ExternalToolError struct {
	Command  Command
	Stderr   []byte
	ExitCode int
}

func (e *ExternalToolError) Error() string {
	detail := strings.TrimSpace(string(e.Stderr))
	if detail == "" {
		return fmt.Sprintf("%s: exit code %d", e.Command.String(), e.ExitCode)
	}
	return fmt.Sprintf("%s: %s", e.Command.String(), detail)
}

func (e *ExternalToolError) Unwrap() error {
	return ErrExternalTool
}
