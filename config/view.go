package config

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/orrery/scene"
)

// Light returns the configured scene light
// Colors were checked by Validate; a bad value falls back to white
func (c *Config) Light() scene.Light {
	l := scene.DefaultLight()
	if col, err := colorful.Hex(c.View.LightColor); err == nil {
		l.Color = col
	}
	l.Ambient = c.View.Ambient
	l.Diffuse = c.View.Diffuse
	l.Specular = c.View.Specular
	l.Shininess = c.View.Shininess
	return l
}

// Flags returns the initial display toggles
func (c *Config) Flags() scene.Flags {
	return scene.Flags{
		ShowRings: c.View.ShowOrbits,
		ShowDay:   c.View.ShowDay,
		Lighting:  c.View.Lighting,
		Sound:     c.Audio.Enabled,
	}
}

// BackgroundColor returns the clear color, black on a bad value
func (c *Config) BackgroundColor() colorful.Color {
	col, err := colorful.Hex(c.View.Background)
	if err != nil {
		return colorful.Color{}
	}
	return col
}
