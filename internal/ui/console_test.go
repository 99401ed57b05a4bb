package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleFormatting(t *testing.T) {
	var out bytes.Buffer
	console := New(&out)

	console.Success("Build complete")
	console.Item("Runtime", "exec")
	console.Info("next")

	assert.Equal(t, "✅ Build complete\n   Runtime:           exec\n➜ next\n", out.String())
}
