package camera

import "sync"

// Event is one input event waiting to be applied to a Transform.
type Event interface {
	// Apply forwards the event to the matching Transform setter.
	Apply(t *Transform)
}

// KeyEvent is a key press or release.
type KeyEvent struct {
	Code    int
	Pressed bool
}

// Apply forwards the key to Transform.OnKey.
func (e KeyEvent) Apply(t *Transform) { t.OnKey(e.Code, e.Pressed) }

// ButtonEvent is a mouse button press or release.
type ButtonEvent struct {
	Code    int
	Pressed bool
}

// Apply forwards the button to Transform.OnMouseButton.
func (e ButtonEvent) Apply(t *Transform) { t.OnMouseButton(e.Code, e.Pressed) }

// MoveEvent is a cursor position.
type MoveEvent struct {
	X, Y float64
}

// Apply forwards the position to Transform.OnMouseMove.
func (e MoveEvent) Apply(t *Transform) { t.OnMouseMove(e.X, e.Y) }

// ScrollEvent is a wheel delta.
type ScrollEvent struct {
	Delta float64
}

// Apply forwards the delta to Transform.OnScroll.
func (e ScrollEvent) Apply(t *Transform) { t.OnScroll(e.Delta) }

// ResizeEvent is a framebuffer size change.
type ResizeEvent struct {
	Width, Height uint32
}

// Apply forwards the size to Transform.Resize.
func (e ResizeEvent) Apply(t *Transform) { t.Resize(e.Width, e.Height) }

// Queue collects events from any goroutine and hands them to the render
// goroutine in arrival order.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

// Push appends an event. Safe for concurrent use.
func (q *Queue) Push(e Event) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Take removes and returns all pending events.
func (q *Queue) Take() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	events := q.events
	q.events = nil
	return events
}

// Drain applies all pending events to t and returns how many were applied.
// Events pushed during Drain wait for the next call.
func (q *Queue) Drain(t *Transform) int {
	events := q.Take()
	for _, e := range events {
		e.Apply(t)
	}
	return len(events)
}
