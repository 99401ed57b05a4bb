// Where: internal/infra/runner/errors.go
// What: Shared error definitions for runners.
// Why: Ensure consistent error wrapping without dynamic error creation.
package runner

import "errors"

var (
	errDockerClientNil = errors.New("docker client is nil")
	errImageRequired   = errors.New("generator image is required")
)
