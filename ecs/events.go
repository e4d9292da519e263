package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// OverlapEventKind identifies trigger overlap changes.
type OverlapEventKind string

const (
	OverlapEnter OverlapEventKind = "overlap_enter"
	OverlapExit  OverlapEventKind = "overlap_exit"
)

// OverlapEvent is emitted when a hand trigger starts or stops touching a
// grabbable body.
type OverlapEvent struct {
	Kind OverlapEventKind
	Hand Entity
	Body Entity
}

// GrabEventKind identifies grab state changes.
type GrabEventKind string

const (
	GrabEventGrabbed  GrabEventKind = "grabbed"
	GrabEventReleased GrabEventKind = "released"
)

// GrabEvent is emitted when a hand grabs or releases a body.
type GrabEvent struct {
	Kind    GrabEventKind
	Hand    Entity
	Body    Entity
	Holders int
}

const (
	EventTypeOverlap = "overlap"
	EventTypeGrab    = "grab"
)

// EventQueue is a simple FIFO queue, cleared at the end of every frame.
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

// Peek returns the pending events without removing them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
