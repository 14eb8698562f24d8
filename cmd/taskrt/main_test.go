package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestDescribe(t *testing.T) {
	out, err := execute(t, "describe", "-f", filepath.Join("..", "..", "examples", "rover.yml"))
	require.NoError(t, err)
	assert.Contains(t, out, "Plugin transformer [configured]")
	assert.Contains(t, out, "Unmapped Transformations :\n    camera2lidar\n")
	assert.Contains(t, out, "Mapped Transformations :\n    odom2base\n    base2camera\n")
}

func TestDescribe_ReportsConfigureFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("plugins: [{ name: transformer, frames: [a], transformations: [{source: a, target: a}] }]\n"), 0o644))

	out, err := execute(t, "describe", "-f", path)
	require.Error(t, err)
	assert.Contains(t, out, "Plugin transformer [failed]")
}

func TestPlugins(t *testing.T) {
	out, err := execute(t, "plugins")
	require.NoError(t, err)
	assert.Contains(t, out, "  transformer\n")
	assert.Contains(t, out, "  kafka\n")
	assert.Contains(t, out, "  stdout\n")
}
