package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	_, err := NewPublisher("nope")
	assert.Error(t, err)

	p, err := NewPublisher("memory")
	require.NoError(t, err)
	require.NoError(t, p.Publish(Event{Plugin: "a", Hook: "start", OK: true}))
	assert.Len(t, p.(*Recorder).Events(), 1)

	assert.Contains(t, Drivers(), "none")
	assert.Contains(t, Drivers(), "memory")
}
