// Where: internal/infra/runner/runner_test.go
// What: Tests for local process execution.
// Why: Ensure stdout and stderr are captured separately and exit codes are not errors.
package runner

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunnerCapturesStreams(t *testing.T) {
	result, err := ExecRunner{}.Capture(context.Background(), "", "sh", "-c", "printf out; printf err >&2")
	require.NoError(t, err)

	assert.Equal(t, "out", string(result.Stdout))
	assert.Equal(t, "err", string(result.Stderr))
	assert.Equal(t, 0, result.ExitCode)
}

func TestExecRunnerReportsExitCode(t *testing.T) {
	result, err := ExecRunner{}.Capture(context.Background(), "", "sh", "-c", "exit 7")
	require.NoError(t, err)

	assert.Equal(t, 7, result.ExitCode)
	assert.Empty(t, result.Stderr)
}

func TestExecRunnerUsesDir(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	result, err := ExecRunner{}.Capture(context.Background(), dir, "pwd")
	require.NoError(t, err)

	assert.Contains(t, string(result.Stdout), dir)
}

func TestExecRunnerMissingBinary(t *testing.T) {
	_, err := ExecRunner{}.Capture(context.Background(), "", "oapigen-definitely-missing-binary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run oapigen-definitely-missing-binary")
}
