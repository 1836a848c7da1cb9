package orbit

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Class selects the display size multiplier for a body
type Class uint8

const (
	ClassStar   Class = iota // Shrunk so the sun doesn't swallow inner orbits
	ClassPlanet              // Planets and moons, enlarged to stay visible
)

func (c Class) String() string {
	if c == ClassStar {
		return "star"
	}
	return "planet"
}

// Body is a static celestial body description
// Distances in km, periods in Earth days
type Body struct {
	Name            string
	Parent          string // Empty for the root body
	Class           Class
	RadiusKm        float64 // Surface radius
	OrbitKm         float64 // Orbital radius around the parent
	PeriodDays      float64 // Orbital period
	SpinDegPerDay   float64 // Axial spin applied to the body's own drawable only
	OrbitMultiplier float64 // Displayed orbit exaggeration, 0 means 1
	Color           colorful.Color
	Emissive        bool // Drawn without lighting
}

// IsRoot reports whether the body has no parent
func (b Body) IsRoot() bool {
	return b.Parent == ""
}

// OrbitRadius returns the displayed orbital radius
func (b Body) OrbitRadius() float64 {
	if b.OrbitMultiplier == 0 {
		return b.OrbitKm
	}
	return b.OrbitKm * b.OrbitMultiplier
}

// Multipliers scale surface radii into display sizes
type Multipliers struct {
	Star   float64
	Planet float64
}

// DefaultMultipliers keeps relative sizes legible at orbital scale
func DefaultMultipliers() Multipliers {
	return Multipliers{Star: 45, Planet: 2000}
}

// For returns the multiplier for a body class
func (m Multipliers) For(c Class) float64 {
	if c == ClassStar {
		return m.Star
	}
	return m.Planet
}

// Size returns the displayed radius of b
func (m Multipliers) Size(b Body) float64 {
	return b.RadiusKm * m.For(b.Class)
}

// DefaultBodies returns the sun, the three inner planets and the moon in draw order
func DefaultBodies() []Body {
	return []Body{
		{
			Name: "sun", Class: ClassStar,
			RadiusKm: 696000, SpinDegPerDay: 0.7,
			Color: colorful.Color{R: 1, G: 1, B: 0}, Emissive: true,
		},
		{
			Name: "mercury", Parent: "sun", Class: ClassPlanet,
			RadiusKm: 2440, OrbitKm: 57909050, PeriodDays: 88, SpinDegPerDay: 1.2,
			Color: colorful.Color{R: 1, G: 0, B: 0},
		},
		{
			Name: "venus", Parent: "sun", Class: ClassPlanet,
			RadiusKm: 6052, OrbitKm: 108208000, PeriodDays: 225, SpinDegPerDay: 1.0,
			Color: colorful.Color{R: 0.5, G: 1, B: 0.5},
		},
		{
			Name: "earth", Parent: "sun", Class: ClassPlanet,
			RadiusKm: 6371, OrbitKm: 149598261, PeriodDays: 365, SpinDegPerDay: 1.0,
			Color: colorful.Color{R: 0, G: 0, B: 1},
		},
		{
			Name: "moon", Parent: "earth", Class: ClassPlanet,
			RadiusKm: 1737, OrbitKm: 384399, PeriodDays: 27, OrbitMultiplier: 50,
			Color: colorful.Color{R: 1, G: 1, B: 1},
		},
	}
}
