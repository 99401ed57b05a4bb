// Where: internal/app/completion_test.go
// What: Tests for the generated bash completion script.
// Why: Ensure global flags before the subcommand do not hide spec completion.
package app

import (
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeBash(t *testing.T, words ...string) string {
	t.Helper()
	bash, err := exec.LookPath("bash")
	if err != nil {
		t.Skip("bash not available")
	}

	env := newTestEnv(t)
	require.Equal(t, 0, env.run("completion", "bash"))

	quoted := make([]string, 0, len(words))
	for _, word := range words {
		quoted = append(quoted, "'"+word+"'")
	}
	script := env.out.String() + `
_oapigen_complete() {
    case "$1" in
        specs) echo "a.yaml b.yaml" ;;
        kinds) echo "server client" ;;
    esac
}
COMP_WORDS=(` + strings.Join(quoted, " ") + `)
COMP_CWORD=$((${#COMP_WORDS[@]}-1))
_oapigen_completion
echo "${COMPREPLY[*]}"
`
	output, err := exec.Command(bash, "-c", script).CombinedOutput()
	require.NoError(t, err, string(output))
	return strings.TrimSpace(string(output))
}

func TestBashCompletionSpecsAfterCommand(t *testing.T) {
	assert.Equal(t, "a.yaml b.yaml", completeBash(t, "oapigen", "build", ""))
}

func TestBashCompletionSpecsAfterGlobalFlags(t *testing.T) {
	assert.Equal(t, "a.yaml b.yaml", completeBash(t, "oapigen", "--dir", "svc", "build", ""))
	assert.Equal(t, "a.yaml", completeBash(t, "oapigen", "-C", "svc", "--runtime", "docker", "plan", "a"))
}

func TestBashCompletionCommandsBeforeSubcommand(t *testing.T) {
	got := completeBash(t, "oapigen", "--dir", "svc", "")
	assert.Contains(t, got, "build")
	assert.Contains(t, got, "plan")
}

func TestBashCompletionKinds(t *testing.T) {
	assert.Equal(t, "server client", completeBash(t, "oapigen", "build", "--kind", ""))
}
