package ecs

import "github.com/milk9111/ballpit/physics"

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventContact = "contact"
	EventWall    = "wall"
)

// ContactEvent is pushed for every resolved body-body contact.
type ContactEvent struct {
	A, B physics.Handle
}

// WallEvent is pushed when a body touches the arena edges. Speed is the
// velocity the body carried into the wall.
type WallEvent struct {
	Body  physics.Handle
	Walls physics.Walls
	Speed float64
}

// EventQueue is a simple FIFO queue that lives for one tick.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Items returns the events pushed so far this tick without consuming them.
func (q *EventQueue) Items() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = q.items[:0]
}
