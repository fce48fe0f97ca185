package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandVersion(t *testing.T) {
	out, err := runCommand(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
}

func TestRootCommandUnknownSubcommand(t *testing.T) {
	_, err := runCommand(t, "frobnicate")
	require.Error(t, err)
}

func TestRootCommandSubcommandsMounted(t *testing.T) {
	root := NewRootCommand()
	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
	assert.True(t, names["compute"])
	assert.True(t, names["version"])
}

func TestVersionSubcommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "prazoctl version "+Version)
	assert.Contains(t, out, GitCommit)
}
