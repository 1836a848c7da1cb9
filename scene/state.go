package scene

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/orrery/clock"
	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/orbit"
	"github.com/lixenwraith/orrery/trackball"
	"github.com/lixenwraith/orrery/vmath"
)

// lightStep is the decrement applied when cycling a light channel
const lightStep = 0.25

// Camera holds the single user-controlled view orientation
// The trackball owns drag state and the orientation slot
type Camera struct {
	Trackball   *trackball.Controller
	GlobalScale float64
}

// Orientation returns the accumulated camera rotation
func (c *Camera) Orientation() vmath.Quat {
	return c.Trackball.Orientation()
}

// Light is a directional Phong light
type Light struct {
	Direction vmath.Vec3F
	Color     colorful.Color
	Ambient   float64
	Diffuse   float64
	Specular  float64
	Shininess float64
}

// DefaultLight returns a white light from above and in front
func DefaultLight() Light {
	return Light{
		Direction: vmath.Vec3F{X: 0, Y: 0.707, Z: 1},
		Color:     colorful.Color{R: 1, G: 1, B: 1},
		Ambient:   0.2,
		Diffuse:   1.0,
		Specular:  1.0,
		Shininess: 6,
	}
}

// Flags are user-toggled display options
type Flags struct {
	ShowRings bool
	ShowDay   bool
	Lighting  bool
	Sound     bool
}

// DefaultFlags starts with everything visible and sound off
func DefaultFlags() Flags {
	return Flags{ShowRings: true, ShowDay: true, Lighting: true}
}

// State is the mutable simulation state, owned by the tick goroutine
type State struct {
	Camera Camera
	Clock  *clock.SimClock
	Flags  Flags
	Light  Light
}

// NewState builds state for catalog with the global scale fitted once
func NewState(c *orbit.Catalog, m orbit.Multipliers, clk *clock.SimClock) *State {
	return &State{
		Camera: Camera{
			Trackball:   trackball.New(),
			GlobalScale: orbit.GlobalScale(c, m),
		},
		Clock: clk,
		Flags: DefaultFlags(),
		Light: DefaultLight(),
	}
}

// Apply executes a command against the state
// Returns false for commands the state does not own (quit, none)
func (s *State) Apply(cmd input.Command) bool {
	switch cmd {
	case input.CommandToggleAnimation:
		s.Clock.ToggleAnimate()
	case input.CommandToggleOrbits:
		s.Flags.ShowRings = !s.Flags.ShowRings
	case input.CommandToggleDay:
		s.Flags.ShowDay = !s.Flags.ShowDay
	case input.CommandFaster:
		s.Clock.Double()
	case input.CommandSlower:
		s.Clock.Halve()
	case input.CommandToggleLighting:
		s.Flags.Lighting = !s.Flags.Lighting
	case input.CommandCycleRed:
		s.Light.Color.R = cycleChannel(s.Light.Color.R)
	case input.CommandCycleGreen:
		s.Light.Color.G = cycleChannel(s.Light.Color.G)
	case input.CommandCycleBlue:
		s.Light.Color.B = cycleChannel(s.Light.Color.B)
	case input.CommandResetCamera:
		s.Camera.Trackball.Reset()
	case input.CommandToggleSound:
		s.Flags.Sound = !s.Flags.Sound
	default:
		return false
	}
	return true
}

// cycleChannel steps a color channel down, wrapping from 0 back to 1
func cycleChannel(v float64) float64 {
	v -= lightStep
	if v < -1e-9 {
		return 1
	}
	return math.Max(0, v)
}
