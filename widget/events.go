package widget

import (
	"sync"

	"github.com/plus3/ooui/ecs"
)

// Event is a message pushed by widget state for the application.
type Event interface {
	Source() ecs.Entity
}

// EventQueue is the outbound event buffer. It may be drained from another
// goroutine than the one running frames.
type EventQueue struct {
	mu     sync.Mutex
	events []Event
}

// Push appends e.
func (q *EventQueue) Push(e Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, e)
}

// Drain returns and clears every queued event, oldest first.
func (q *EventQueue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
