package core

// Event is a discrete player intent, abstracted from physical key presses.
// The platform translates keys into events; the session consumes them.
type Event uint8

const (
	EventNone    Event = iota
	EventJump          // Space, Up - flap (also starts a session from idle)
	EventPause         // P, Esc while playing
	EventResume        // P, Esc while paused
	EventStart         // Enter on the title screen
	EventRestart       // R, Enter after game over
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventNone:
		return "None"
	case EventJump:
		return "Jump"
	case EventPause:
		return "Pause"
	case EventResume:
		return "Resume"
	case EventStart:
		return "Start"
	case EventRestart:
		return "Restart"
	default:
		return "Unknown"
	}
}

// Valid reports whether e is one of the defined, non-empty events.
func (e Event) Valid() bool {
	return e > EventNone && e <= EventRestart
}

// EventQueue buffers events delivered between ticks.
// Events are consumed in arrival order at the start of the next tick.
type EventQueue struct {
	events []Event
}

// Push appends an event. EventNone and unknown values are dropped.
func (q *EventQueue) Push(e Event) {
	if !e.Valid() {
		return
	}
	q.events = append(q.events, e)
}

// Drain calls fn for every pending event in order and empties the queue.
func (q *EventQueue) Drain(fn func(Event)) {
	for _, e := range q.events {
		fn(e)
	}
	q.events = q.events[:0]
}
