package stdout

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskrt/internal/events"
	"taskrt/internal/task"
)

func TestDriver_WritesJSONLines(t *testing.T) {
	p, err := events.NewPublisher("stdout")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, p.Configure(Config{Output: &buf}))
	tk, err := task.New(map[string]any{"goal": "dock"})
	require.NoError(t, err)
	require.NoError(t, p.Publish(events.Event{Model: "m", Plugin: "tf", Hook: "configure", OK: true, State: "configured", Task: tk}))

	var got events.Event
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "tf", got.Plugin)
	assert.True(t, got.OK)
	require.NotNil(t, got.Task)
	assert.Equal(t, tk.ID, got.Task.ID)
	goal, _ := got.Task.Get("goal")
	assert.Equal(t, "dock", goal)
	require.NoError(t, p.Close())
}

func TestDriver_RejectsWrongConfig(t *testing.T) {
	d := &driver{}
	assert.Error(t, d.Configure("nope"))
	assert.Error(t, d.Publish(events.Event{}))
}
