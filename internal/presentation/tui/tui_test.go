package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "0.1.0\n")

	out := buf.String()
	assert.Contains(t, out, "|___/_|_|")
	assert.Contains(t, out, "v0.1.0")
	assert.True(t, strings.HasPrefix(out, "\n"))
}

func TestPrintBanner_NoVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "")
	assert.NotContains(t, buf.String(), "  v")
}

func TestPlainRenderer(t *testing.T) {
	render := NewPlainRenderer()

	out, err := render("> You are my favourite notification.\n\n_slip 1 of 100_\n")
	require.NoError(t, err)
	assert.Contains(t, out, "favourite")
	assert.Contains(t, out, "slip 1 of 100")
}
