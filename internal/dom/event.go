package dom

// EventType names an event.
type EventType string

const (
	EventClick   EventType = "click"
	EventInput   EventType = "input"
	EventKeyDown EventType = "keydown"
)

// Key names used by keydown events, matching KeyboardEvent.key.
const (
	KeyEscape = "Escape"
	KeyEnter  = "Enter"
)

// Event is a dispatched event.
type Event struct {
	Type EventType
	Key  string // keydown only

	// Target is the element the event was dispatched at.
	Target *Element
	// CurrentTarget is the element whose listener is running, nil while
	// document listeners run.
	CurrentTarget *Element

	stopped          bool
	defaultPrevented bool
}

// Handler receives events.
type Handler func(*Event)

// StopPropagation prevents the event reaching further ancestors and the
// document. Remaining listeners on the current element still run.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool {
	return e.stopped
}

// PreventDefault marks the event as handled.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// InputEvent returns a new input event.
func InputEvent() *Event {
	return &Event{Type: EventInput}
}
