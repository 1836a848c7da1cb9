// Package orbit describes bodies on circular orbits and the frames they occupy
// on a given simulation day.
//
// A body's orbit frame is RotateY(360° × D / P) · Translate(R, 0, 0) in its
// parent's frame. Spin is a separate frame applied to the body's own drawable
// and is never inherited by children, so a moon follows its parent's orbital
// position but not its axial rotation.
package orbit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/orrery/vmath"
)

// OrbitAngle returns the orbital angle in degrees on day, in [0, 360) for day >= 0
// Reduced by the period first so long sessions keep full precision
func OrbitAngle(b Body, day float64) float64 {
	if b.IsRoot() || b.PeriodDays <= 0 {
		return 0
	}
	return 360 * math.Mod(day, b.PeriodDays) / b.PeriodDays
}

// SpinAngle returns the axial rotation in degrees on day
func SpinAngle(b Body, day float64) float64 {
	return math.Mod(day*b.SpinDegPerDay, 360)
}

// OrbitFrame returns the body's local frame relative to its parent
func OrbitFrame(b Body, day float64) mgl64.Mat4 {
	if b.IsRoot() {
		return mgl64.Ident4()
	}
	return vmath.RotateY(OrbitAngle(b, day)).Mul4(vmath.Translate(b.OrbitRadius(), 0, 0))
}

// SpinFrame returns the self-rotation applied to the body's own drawable
func SpinFrame(b Body, day float64) mgl64.Mat4 {
	if b.SpinDegPerDay == 0 {
		return mgl64.Ident4()
	}
	return vmath.RotateY(SpinAngle(b, day))
}

// WorldFrame composes orbit frames from the root down to name
// Independent of any stack; the reference for nested composition
func WorldFrame(c *Catalog, name string, day float64) mgl64.Mat4 {
	m := mgl64.Ident4()
	for _, b := range c.Lineage(name) {
		m = m.Mul4(OrbitFrame(b, day))
	}
	return m
}

// Revolutions returns completed orbits on day
func Revolutions(b Body, day float64) int64 {
	if b.IsRoot() || b.PeriodDays <= 0 || day <= 0 {
		return 0
	}
	return int64(math.Floor(day / b.PeriodDays))
}

// GlobalScale returns the uniform factor fitting every planet system into [-1, 1]
// Per planet: orbit + farthest moon orbit + (planet radius + 2 × largest moon radius) × planet multiplier
// Moon orbits enter unexaggerated
func GlobalScale(c *Catalog, m Multipliers) float64 {
	extent := 0.0
	for _, p := range c.Children(c.Root().Name) {
		moonOrbit, moonRadius := 0.0, 0.0
		for _, moon := range c.Children(p.Name) {
			moonOrbit = max(moonOrbit, moon.OrbitKm)
			moonRadius = max(moonRadius, moon.RadiusKm)
		}
		e := p.OrbitRadius() + moonOrbit + (p.RadiusKm+2*moonRadius)*m.Planet
		extent = max(extent, e)
	}

	if extent == 0 {
		// Lone root: fit the star itself
		extent = m.Size(c.Root())
	}
	return 1 / extent
}
