package scene

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/orrery/vmath"
)

// Kind selects the primitive a drawable is rendered with
type Kind uint8

const (
	KindSphere Kind = iota
	KindRing
)

func (k Kind) String() string {
	if k == KindRing {
		return "ring"
	}
	return "sphere"
}

// MarshalText renders the kind by name in JSON frames
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Drawable is one primitive placed in the scene
// World is the finalized model-view matrix: common · frame · spin · Scale(size)
// Frame is the body's frame in scene units, before camera and spin
type Drawable struct {
	Name     string         `json:"name"`
	Kind     Kind           `json:"kind"`
	World    mgl64.Mat4     `json:"world"`
	Frame    mgl64.Mat4     `json:"frame"`
	Size     float64        `json:"size"`
	Color    colorful.Color `json:"color"`
	Emissive bool           `json:"emissive"`
}

// Completion reports orbits a body finished since the previous frame
type Completion struct {
	Body  string `json:"body"`
	Count int64  `json:"count"`
}

// Frame is an immutable snapshot of one composed tick
type Frame struct {
	Seq         uint64           `json:"seq"`
	Day         float64          `json:"day"`
	DayLabel    string           `json:"day_label"`
	ShowDay     bool             `json:"show_day"`
	Animating   bool             `json:"animating"`
	DPF         float64          `json:"days_per_frame"`
	Orientation vmath.Quat       `json:"orientation"`
	Projection  mgl64.Mat4       `json:"projection"`
	Lighting    bool             `json:"lighting"`
	Sound       bool             `json:"sound"`
	Light       Light            `json:"light"`
	Drawables   []Drawable       `json:"drawables"`
	Revolutions map[string]int64 `json:"revolutions"`
	Completed   []Completion     `json:"completed,omitempty"`
}

// Drawable returns the drawable named name of kind k
func (f *Frame) Drawable(name string, k Kind) (Drawable, bool) {
	for _, d := range f.Drawables {
		if d.Name == name && d.Kind == k {
			return d, true
		}
	}
	return Drawable{}, false
}

// FormatDay renders the day label with the shortest exact decimal
func FormatDay(day float64) string {
	return "Day " + strconv.FormatFloat(day, 'f', -1, 64)
}

// Projection returns the view projection for a viewport aspect ratio (width/height)
// with the scene tilted by tiltDeg about X
func Projection(aspect, tiltDeg float64) mgl64.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return vmath.Ortho(-aspect, aspect, -1, 1, -1, 1).Mul4(vmath.RotateX(tiltDeg))
}
