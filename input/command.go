package input

import "sort"

// Command is a discrete user action applied once per tick
type Command uint8

const (
	CommandNone Command = iota
	CommandToggleAnimation
	CommandToggleOrbits
	CommandToggleDay
	CommandFaster // Double days per frame
	CommandSlower // Halve days per frame
	CommandToggleLighting
	CommandCycleRed
	CommandCycleGreen
	CommandCycleBlue
	CommandResetCamera
	CommandToggleSound
	CommandQuit
)

// commandNames maps canonical action names used by config files and the stream protocol
var commandNames = map[string]Command{
	"none":             CommandNone,
	"toggle_animation": CommandToggleAnimation,
	"toggle_orbits":    CommandToggleOrbits,
	"toggle_day":       CommandToggleDay,
	"faster":           CommandFaster,
	"slower":           CommandSlower,
	"toggle_lighting":  CommandToggleLighting,
	"cycle_red":        CommandCycleRed,
	"cycle_green":      CommandCycleGreen,
	"cycle_blue":       CommandCycleBlue,
	"reset_camera":     CommandResetCamera,
	"toggle_sound":     CommandToggleSound,
	"quit":             CommandQuit,
}

// ParseCommand resolves an action name
func ParseCommand(name string) (Command, bool) {
	c, ok := commandNames[name]
	return c, ok
}

func (c Command) String() string {
	for name, cmd := range commandNames {
		if cmd == c {
			return name
		}
	}
	return "unknown"
}

// CommandNames returns every action name except "none", sorted
func CommandNames() []string {
	names := make([]string, 0, len(commandNames))
	for name, cmd := range commandNames {
		if cmd != CommandNone {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
