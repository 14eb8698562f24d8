package task

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsUnsupportedAttribute(t *testing.T) {
	_, err := New(map[string]any{"ch": make(chan int)})
	require.Error(t, err)
}

func TestClone_IsDeep(t *testing.T) {
	orig, err := New(map[string]any{"goal": "dock", "pose": map[string]any{"x": 1.0}})
	require.NoError(t, err)

	cp := orig.Clone()
	assert.Equal(t, orig.ID, cp.ID)

	require.NoError(t, cp.Set("goal", "undock"))
	require.NoError(t, cp.Set("pose", map[string]any{"x": 2.0}))

	g, _ := orig.Get("goal")
	assert.Equal(t, "dock", g)
	p, _ := orig.Get("pose")
	assert.Equal(t, map[string]any{"x": 1.0}, p)
}

func TestJSONRoundTripKeepsIDAndAttributes(t *testing.T) {
	tk, err := New(map[string]any{"goal": "dock", "pose": map[string]any{"x": 1.5}})
	require.NoError(t, err)

	raw, err := json.Marshal(tk)
	require.NoError(t, err)

	var back Task
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, tk.ID, back.ID)
	g, _ := back.Get("goal")
	assert.Equal(t, "dock", g)
	p, _ := back.Get("pose")
	assert.Equal(t, map[string]any{"x": 1.5}, p)
	assert.Contains(t, tk.String(), tk.ID)
}

func TestUnmarshalJSON_MissingIDGetsOne(t *testing.T) {
	var tk Task
	require.NoError(t, json.Unmarshal([]byte(`{"attributes":{"goal":"dock"}}`), &tk))
	assert.NotEmpty(t, tk.ID)
	_, ok := tk.Get("goal")
	assert.True(t, ok)

	assert.Error(t, json.Unmarshal([]byte(`{"attributes":{"goal":`), &tk))
}
