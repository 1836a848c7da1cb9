package input

// EventKind discriminates queued input events
type EventKind uint8

const (
	EventNone EventKind = iota
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventCommand
)

// Event is a single input sample produced by a frontend
// Pointer coordinates are viewport-relative pixels, y growing downward
type Event struct {
	Kind    EventKind
	X, Y    float64
	Width   float64 // Viewport width in pixels
	Height  float64 // Viewport height in pixels
	Command Command
}

// PointerDown builds a press event
func PointerDown(x, y, width, height float64) Event {
	return Event{Kind: EventPointerDown, X: x, Y: y, Width: width, Height: height}
}

// PointerMove builds a motion event
func PointerMove(x, y, width, height float64) Event {
	return Event{Kind: EventPointerMove, X: x, Y: y, Width: width, Height: height}
}

// PointerUp builds a release event
func PointerUp(x, y, width, height float64) Event {
	return Event{Kind: EventPointerUp, X: x, Y: y, Width: width, Height: height}
}

// CommandEvent wraps a discrete command
func CommandEvent(c Command) Event {
	return Event{Kind: EventCommand, Command: c}
}

// IsPointer reports whether the event belongs to the trackball
func (e Event) IsPointer() bool {
	return e.Kind == EventPointerDown || e.Kind == EventPointerMove || e.Kind == EventPointerUp
}
