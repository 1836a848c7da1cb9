// Package config loads orrery settings from TOML with environment overrides.
package config

import (
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/lixenwraith/orrery/clock"
	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/orbit"
)

type Config struct {
	Sim    SimConfig         `toml:"sim"`
	View   ViewConfig        `toml:"view"`
	Scale  ScaleConfig       `toml:"scale"`
	Audio  AudioConfig       `toml:"audio"`
	Stream StreamConfig      `toml:"stream"`
	Bodies []BodyConfig      `toml:"body"`
	Keys   map[string]string `toml:"keys"`
}

type SimConfig struct {
	FPS             float64 `toml:"fps"`     // Simulation steps per second
	TickHz          float64 `toml:"tick_hz"` // Engine ticks per second, 0 derives from fps
	DaysPerFrame    float64 `toml:"days_per_frame"`
	MinDaysPerFrame float64 `toml:"min_days_per_frame"`
	MaxDaysPerFrame float64 `toml:"max_days_per_frame"`
	Animate         bool    `toml:"animate"`
	StartDay        float64 `toml:"start_day"`
}

type ViewConfig struct {
	Tilt       float64 `toml:"tilt"` // Degrees about X
	ShowOrbits bool    `toml:"show_orbits"`
	ShowDay    bool    `toml:"show_day"`
	Lighting   bool    `toml:"lighting"`
	LightColor string  `toml:"light_color"`
	Ambient    float64 `toml:"ambient"`
	Diffuse    float64 `toml:"diffuse"`
	Specular   float64 `toml:"specular"`
	Shininess  float64 `toml:"shininess"`
	Background string  `toml:"background"`
}

// ScaleConfig holds display radius multipliers
type ScaleConfig struct {
	Star   float64 `toml:"star"`
	Planet float64 `toml:"planet"`
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // 0.0 - 1.0
}

type StreamConfig struct {
	Addr           string   `toml:"addr"` // Empty disables the server
	MaxFPS         float64  `toml:"max_fps"`
	Burst          int      `toml:"burst"`
	AllowedOrigins []string `toml:"allowed_origins"` // Empty allows any origin
}

// BodyConfig is one [[body]] table; distances in km, periods in days
type BodyConfig struct {
	Name            string  `toml:"name"`
	Parent          string  `toml:"parent"`
	Class           string  `toml:"class"` // "star" or "planet"
	Radius          float64 `toml:"radius"`
	Orbit           float64 `toml:"orbit"`
	Period          float64 `toml:"period"`
	Spin            float64 `toml:"spin"`
	OrbitMultiplier float64 `toml:"orbit_multiplier"`
	Color           string  `toml:"color"`
	Emissive        bool    `toml:"emissive"`
}

// Default reproduces the stock simulation
func Default() *Config {
	mult := orbit.DefaultMultipliers()
	cfg := &Config{
		Sim: SimConfig{
			FPS:             30,
			DaysPerFrame:    clock.DefaultDaysPerFrame,
			MinDaysPerFrame: clock.DefaultMinDPF,
			MaxDaysPerFrame: clock.DefaultMaxDPF,
			Animate:         true,
		},
		View: ViewConfig{
			Tilt:       30,
			ShowOrbits: true,
			ShowDay:    true,
			Lighting:   true,
			LightColor: "#ffffff",
			Ambient:    0.2,
			Diffuse:    1.0,
			Specular:   1.0,
			Shininess:  6,
			Background: "#000000",
		},
		Scale: ScaleConfig{Star: mult.Star, Planet: mult.Planet},
		Audio: AudioConfig{Enabled: false, Volume: 0.5},
		Stream: StreamConfig{
			MaxFPS: 30,
			Burst:  1,
		},
		Keys: map[string]string{},
	}
	for _, b := range orbit.DefaultBodies() {
		cfg.Bodies = append(cfg.Bodies, BodyConfig{
			Name:            b.Name,
			Parent:          b.Parent,
			Class:           b.Class.String(),
			Radius:          b.RadiusKm,
			Orbit:           b.OrbitKm,
			Period:          b.PeriodDays,
			Spin:            b.SpinDegPerDay,
			OrbitMultiplier: b.OrbitMultiplier,
			Color:           b.Color.Hex(),
			Emissive:        b.Emissive,
		})
	}
	return cfg
}

// Load overlays the TOML file at path onto the defaults, then applies
// environment overrides and validates
// A [[body]] list in the file replaces the default catalog
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		defaults := cfg.Bodies
		cfg.Bodies = nil

		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, errors.Wrapf(err, "decode %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return nil, errors.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
		if !md.IsDefined("body") {
			cfg.Bodies = defaults
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv reads ORRERY_* variables over file values
func (c *Config) applyEnv() error {
	if v := os.Getenv("ORRERY_AUDIO_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, "ORRERY_AUDIO_ENABLED")
		}
		c.Audio.Enabled = b
	}
	// Master volume 0-100 converted to 0.0-1.0
	if v := os.Getenv("ORRERY_MASTER_VOLUME"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "ORRERY_MASTER_VOLUME")
		}
		c.Audio.Volume = math.Max(0, math.Min(1, float64(n)/100))
	}
	if v := os.Getenv("ORRERY_STREAM_ADDR"); v != "" {
		c.Stream.Addr = v
	}
	return nil
}

// Validate rejects settings the simulation cannot run with
func (c *Config) Validate() error {
	s := c.Sim
	if s.FPS <= 0 {
		return errors.New("sim.fps must be positive")
	}
	if s.TickHz < 0 {
		return errors.New("sim.tick_hz must not be negative")
	}
	if s.TickHz > 0 && s.TickHz <= s.FPS {
		return errors.Errorf("sim.tick_hz %v must exceed sim.fps %v", s.TickHz, s.FPS)
	}
	if s.MinDaysPerFrame <= 0 || s.MaxDaysPerFrame <= 0 {
		return errors.New("sim days per frame bounds must be positive")
	}
	if s.MinDaysPerFrame > s.MaxDaysPerFrame {
		return errors.Errorf("sim.min_days_per_frame %v exceeds max %v", s.MinDaysPerFrame, s.MaxDaysPerFrame)
	}
	if s.DaysPerFrame < s.MinDaysPerFrame || s.DaysPerFrame > s.MaxDaysPerFrame {
		return errors.Errorf("sim.days_per_frame %v outside [%v, %v]", s.DaysPerFrame, s.MinDaysPerFrame, s.MaxDaysPerFrame)
	}
	if s.StartDay < 0 {
		return errors.New("sim.start_day must not be negative")
	}

	v := c.View
	if v.Tilt < -90 || v.Tilt > 90 {
		return errors.Errorf("view.tilt %v outside [-90, 90]", v.Tilt)
	}
	if _, err := colorful.Hex(v.LightColor); err != nil {
		return errors.Wrap(err, "view.light_color")
	}
	if _, err := colorful.Hex(v.Background); err != nil {
		return errors.Wrap(err, "view.background")
	}
	if v.Ambient < 0 || v.Diffuse < 0 || v.Specular < 0 || v.Shininess < 0 {
		return errors.New("view lighting terms must not be negative")
	}

	if c.Scale.Star <= 0 || c.Scale.Planet <= 0 {
		return errors.New("scale multipliers must be positive")
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return errors.Errorf("audio.volume %v outside [0, 1]", c.Audio.Volume)
	}
	if c.Stream.MaxFPS <= 0 {
		return errors.New("stream.max_fps must be positive")
	}
	if c.Stream.Burst < 1 {
		return errors.New("stream.burst must be at least 1")
	}

	if _, err := c.Catalog(); err != nil {
		return err
	}
	if _, err := c.Bindings(); err != nil {
		return errors.Wrap(err, "keys")
	}
	return nil
}

// FrameBudget returns the wall-clock time per simulation step
func (c *Config) FrameBudget() time.Duration {
	return time.Duration(float64(time.Second) / c.Sim.FPS)
}

// TickInterval returns the engine tick period
func (c *Config) TickInterval() time.Duration {
	if c.Sim.TickHz > 0 {
		return time.Duration(float64(time.Second) / c.Sim.TickHz)
	}
	return clock.TickIntervalFor(c.FrameBudget())
}

// TickRate returns TickInterval as ticks per second
func (c *Config) TickRate() float64 {
	return float64(time.Second) / float64(c.TickInterval())
}

// ClockOptions converts the sim section for clock.New
func (c *Config) ClockOptions() clock.Options {
	return clock.Options{
		FrameBudget:  c.FrameBudget(),
		DaysPerFrame: c.Sim.DaysPerFrame,
		MinDPF:       c.Sim.MinDaysPerFrame,
		MaxDPF:       c.Sim.MaxDaysPerFrame,
		Animate:      c.Sim.Animate,
	}
}

// Multipliers returns the display size multipliers
func (c *Config) Multipliers() orbit.Multipliers {
	return orbit.Multipliers{Star: c.Scale.Star, Planet: c.Scale.Planet}
}

// Catalog builds and validates the body hierarchy
func (c *Config) Catalog() (*orbit.Catalog, error) {
	bodies := make([]orbit.Body, 0, len(c.Bodies))
	for i, bc := range c.Bodies {
		b, err := bc.body()
		if err != nil {
			return nil, errors.Wrapf(err, "body %d", i)
		}
		bodies = append(bodies, b)
	}
	cat, err := orbit.NewCatalog(bodies)
	if err != nil {
		return nil, errors.Wrap(err, "bodies")
	}
	return cat, nil
}

// Bindings returns the default key map with [keys] overrides applied
func (c *Config) Bindings() (input.Bindings, error) {
	return input.DefaultBindings().Apply(c.Keys)
}

func (bc BodyConfig) body() (orbit.Body, error) {
	b := orbit.Body{
		Name:            bc.Name,
		Parent:          bc.Parent,
		RadiusKm:        bc.Radius,
		OrbitKm:         bc.Orbit,
		PeriodDays:      bc.Period,
		SpinDegPerDay:   bc.Spin,
		OrbitMultiplier: bc.OrbitMultiplier,
		Emissive:        bc.Emissive,
	}

	switch bc.Class {
	case "star":
		b.Class = orbit.ClassStar
	case "planet", "":
		b.Class = orbit.ClassPlanet
	default:
		return b, errors.Errorf("%q: unknown class %q", bc.Name, bc.Class)
	}

	b.Color = colorful.Color{R: 1, G: 1, B: 1}
	if bc.Color != "" {
		col, err := colorful.Hex(bc.Color)
		if err != nil {
			return b, errors.Wrapf(err, "%q: color", bc.Name)
		}
		b.Color = col
	}
	return b, nil
}
