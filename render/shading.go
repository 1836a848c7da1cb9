package render

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/vmath"
)

// viewDir points from the surface toward an orthographic viewer in eye space
var viewDir = vmath.Vec3F{Z: 1}

// Shade evaluates Phong lighting for an eye-space unit normal
// Ambient and diffuse are tinted by base, specular takes the light color alone
func Shade(base colorful.Color, n vmath.Vec3F, l scene.Light) colorful.Color {
	ld := vmath.V3FNormalize(l.Direction)

	ndl := math.Max(0, vmath.V3FDot(n, ld))
	spec := 0.0
	if ndl > 0 {
		// Reflect light about the normal
		r := vmath.V3FSub(vmath.V3FScale(n, 2*vmath.V3FDot(n, ld)), ld)
		spec = math.Pow(math.Max(0, vmath.V3FDot(r, viewDir)), l.Shininess)
	}

	k := l.Ambient + l.Diffuse*ndl
	return colorful.Color{
		R: base.R*l.Color.R*k + l.Color.R*l.Specular*spec,
		G: base.G*l.Color.G*k + l.Color.G*l.Specular*spec,
		B: base.B*l.Color.B*k + l.Color.B*l.Specular*spec,
	}.Clamped()
}
