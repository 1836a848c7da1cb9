package input

import (
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space": ' ',
	"plus":  '+',
	"minus": '-',
}

// Bindings maps typed runes to commands
type Bindings map[rune]Command

// DefaultBindings returns the stock key layout
func DefaultBindings() Bindings {
	return Bindings{
		' ': CommandToggleAnimation,
		'a': CommandToggleAnimation,
		'o': CommandToggleOrbits,
		'd': CommandToggleDay,
		'+': CommandFaster,
		'=': CommandFaster,
		'-': CommandSlower,
		'l': CommandToggleLighting,
		'r': CommandCycleRed,
		'g': CommandCycleGreen,
		'b': CommandCycleBlue,
		'c': CommandResetCamera,
		's': CommandToggleSound,
		'q': CommandQuit,
	}
}

// Lookup returns the command bound to r
func (b Bindings) Lookup(r rune) (Command, bool) {
	c, ok := b[r]
	if !ok || c == CommandNone {
		return CommandNone, false
	}
	return c, true
}

// Apply overlays key name -> action name pairs onto a copy of b
// Returns error on unknown action names or keys that are not a single rune
func (b Bindings) Apply(overrides map[string]string) (Bindings, error) {
	out := make(Bindings, len(b)+len(overrides))
	for k, v := range b {
		out[k] = v
	}

	for key, action := range overrides {
		r, err := parseKey(key)
		if err != nil {
			return nil, err
		}
		cmd, ok := ParseCommand(action)
		if !ok {
			return nil, errors.Errorf("key %q: unknown action %q", key, action)
		}
		if cmd == CommandNone {
			delete(out, r)
			continue
		}
		out[r] = cmd
	}
	return out, nil
}

func parseKey(key string) (rune, error) {
	if r, ok := runeAliases[key]; ok {
		return r, nil
	}
	if utf8.RuneCountInString(key) != 1 {
		return 0, errors.Errorf("key %q: expected a single character or alias", key)
	}
	r, _ := utf8.DecodeRuneInString(key)
	return r, nil
}
