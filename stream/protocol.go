package stream

import (
	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/mesh"
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/vmath"
)

// Server message types
const (
	TypeHello = "hello"
	TypeFrame = "frame"
	TypeError = "error"
)

// ServerMessage is every JSON message written to a websocket client
type ServerMessage struct {
	Type  string       `json:"type"`
	Hello *Hello       `json:"hello,omitempty"`
	Frame *scene.Frame `json:"frame,omitempty"`
	Error string       `json:"error,omitempty"`
}

// Hello is sent once on connect with the unit meshes drawables are scaled from
type Hello struct {
	Bodies     []string      `json:"bodies"`
	CircleStep float64       `json:"circle_step"`
	Circle     []vmath.Vec3F `json:"circle"`
	Sphere     mesh.Sphere   `json:"sphere"`
	Actions    []string      `json:"actions"`
}

// ClientMessage is read from a websocket client
// Exactly one of Action or Pointer is expected
type ClientMessage struct {
	Action  string          `json:"action,omitempty"`
	Pointer *PointerMessage `json:"pointer,omitempty"`
}

// PointerMessage carries one drag sample in viewport pixels
type PointerMessage struct {
	Phase  string  `json:"phase"` // down, move, up
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Event converts the message to a queued input event
func (m ClientMessage) Event() (input.Event, error) {
	if m.Pointer != nil {
		p := m.Pointer
		if p.Width <= 0 || p.Height <= 0 {
			return input.Event{}, errInvalidViewport
		}
		switch p.Phase {
		case "down":
			return input.PointerDown(p.X, p.Y, p.Width, p.Height), nil
		case "move":
			return input.PointerMove(p.X, p.Y, p.Width, p.Height), nil
		case "up":
			return input.PointerUp(p.X, p.Y, p.Width, p.Height), nil
		}
		return input.Event{}, errUnknownPhase
	}

	cmd, ok := input.ParseCommand(m.Action)
	if !ok || cmd == input.CommandNone {
		return input.Event{}, errUnknownAction
	}
	return input.CommandEvent(cmd), nil
}
