package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadModelSpec(t *testing.T) {
	dir := t.TempDir()
	doc := []byte(`schema_version: v1
name: rover
task:
  attributes:
    goal: dock
    speed: 0.5
plugins:
  - name: base_tf
    kind: transformer
    frames: [base, camera]
    transformations:
      - { source: base, target: camera }
      - { source: camera, target: lidar }
`)
	path := filepath.Join(dir, "model.yml")
	require.NoError(t, os.WriteFile(path, doc, 0o644))

	cfg, err := LoadModelSpec(path)
	require.NoError(t, err)
	assert.Equal(t, "rover", cfg.Name)
	assert.Equal(t, "dock", cfg.Task.Attributes["goal"])
	require.Len(t, cfg.Plugins, 1)
	assert.Equal(t, "base_tf", cfg.Plugins[0].Name)
	assert.Equal(t, "transformer", cfg.Plugins[0].Kind)
	assert.Equal(t, []string{"base", "camera"}, cfg.Plugins[0].Frames)
	assert.Equal(t, "lidar", cfg.Plugins[0].Transformations[1].Target)
}

func TestParseModelSpec_DefaultsSchema(t *testing.T) {
	cfg, err := ParseModelSpec([]byte("plugins: []\n"))
	require.NoError(t, err)
	assert.Equal(t, SupportedSchema, cfg.SchemaVersion)
}

func TestParseModelSpec_Rejects(t *testing.T) {
	cases := map[string]string{
		"schema":    "schema_version: v999\n",
		"unknown":   "plugins: []\nsurprise: 1\n",
		"noname":    "plugins:\n  - frames: [a]\n",
		"duplicate": "plugins:\n  - name: a\n  - name: a\n",
		"garbage":   "plugins: [",
	}
	for name, doc := range cases {
		_, err := ParseModelSpec([]byte(doc))
		assert.Error(t, err, name)
	}
}

func TestLoadModelSpec_Missing(t *testing.T) {
	_, err := LoadModelSpec(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
