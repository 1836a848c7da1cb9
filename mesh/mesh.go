// Package mesh tessellates the unit primitives drawables are scaled from.
package mesh

import (
	"math"

	"github.com/lixenwraith/orrery/vmath"
)

const (
	DefaultCircleStep = 0.1 // Radians between ring vertices
	DefaultBands      = 50  // Latitude and longitude bands of the sphere
)

// Circle returns a unit circle in the XZ plane as a closed line loop
// Vertices sit at (i+1)·step for every i with i·step < 2π
func Circle(step float64) []vmath.Vec3F {
	if step <= 0 {
		step = DefaultCircleStep
	}
	var pts []vmath.Vec3F
	for i := 0; float64(i)*step < 2*math.Pi; i++ {
		a := float64(i+1) * step
		pts = append(pts, vmath.Vec3F{X: math.Cos(a), Y: 0, Z: math.Sin(a)})
	}
	return pts
}

// Sphere is an indexed unit sphere with per-vertex normals and texture coordinates
type Sphere struct {
	Positions []vmath.Vec3F `json:"positions"`
	Normals   []vmath.Vec3F `json:"normals"`
	UVs       [][2]float64  `json:"uvs"`
	Indices   []uint32      `json:"indices"`
}

// NewSphere tessellates a unit sphere into lat × lon quads, two triangles each
func NewSphere(lat, lon int) Sphere {
	if lat < 2 {
		lat = 2
	}
	if lon < 3 {
		lon = 3
	}

	n := (lat + 1) * (lon + 1)
	s := Sphere{
		Positions: make([]vmath.Vec3F, 0, n),
		Normals:   make([]vmath.Vec3F, 0, n),
		UVs:       make([][2]float64, 0, n),
		Indices:   make([]uint32, 0, lat*lon*6),
	}

	for i := 0; i <= lat; i++ {
		theta := float64(i) * math.Pi / float64(lat)
		sinT, cosT := math.Sincos(theta)
		for j := 0; j <= lon; j++ {
			phi := float64(j) * 2 * math.Pi / float64(lon)
			sinP, cosP := math.Sincos(phi)

			p := vmath.Vec3F{X: cosP * sinT, Y: cosT, Z: sinP * sinT}
			s.Positions = append(s.Positions, p)
			s.Normals = append(s.Normals, p)
			s.UVs = append(s.UVs, [2]float64{
				1 - float64(j)/float64(lon),
				1 - float64(i)/float64(lat),
			})
		}
	}

	for i := 0; i < lat; i++ {
		for j := 0; j < lon; j++ {
			first := uint32(i*(lon+1) + j)
			second := first + uint32(lon) + 1
			s.Indices = append(s.Indices,
				first, second, first+1,
				second, second+1, first+1,
			)
		}
	}
	return s
}

// Triangles returns the triangle count
func (s Sphere) Triangles() int {
	return len(s.Indices) / 3
}
