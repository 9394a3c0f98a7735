package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventQueueDrainsInOrder(t *testing.T) {
	var q EventQueue
	q.Push(EventStart)
	q.Push(EventNone)
	q.Push(Event(99))
	q.Push(EventJump)
	q.Push(EventPause)

	var got []Event
	q.Drain(func(e Event) { got = append(got, e) })
	assert.Equal(t, []Event{EventStart, EventJump, EventPause}, got, "invalid events must be dropped")

	called := false
	q.Drain(func(Event) { called = true })
	assert.False(t, called, "drain must empty the queue")
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "Jump", EventJump.String())
	assert.Equal(t, "Restart", EventRestart.String())
	assert.Equal(t, "Unknown", Event(42).String())
}
