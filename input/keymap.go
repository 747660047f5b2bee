// Package input turns device events into puzzle intents and game controls.
// Key names follow the terminal convention ("left", "enter", " ", "ctrl+c"),
// so every front end shares one keymap.
package input

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/mageise/gtd-any/puzzle"
)

//go:generate go tool stringer -type=Control

// Control is an action on the game itself rather than on the active piece.
type Control int

const (
	Start Control = iota
	Pause
	GiveUp
	Quit
)

// Keymap binds key names to intents and controls.
type Keymap struct {
	Intents  map[string]puzzle.Intent
	Controls map[string]Control
}

// DefaultKeymap returns the arrow-key layout, with vi keys as alternates.
func DefaultKeymap() Keymap {
	return Keymap{
		Intents: map[string]puzzle.Intent{
			"left":  puzzle.MoveLeft,
			"h":     puzzle.MoveLeft,
			"right": puzzle.MoveRight,
			"l":     puzzle.MoveRight,
			"down":  puzzle.SoftDrop,
			"j":     puzzle.SoftDrop,
			"up":    puzzle.Rotate,
			"k":     puzzle.Rotate,
			" ":     puzzle.Rotate,
			"enter": puzzle.HardDrop,
		},
		Controls: map[string]Control{
			"s":      Start,
			"r":      Start,
			"p":      Pause,
			"g":      GiveUp,
			"q":      Quit,
			"esc":    Quit,
			"ctrl+c": Quit,
		},
	}
}

// Intent returns the intent bound to key.
func (k Keymap) Intent(key string) (puzzle.Intent, bool) {
	i, ok := k.Intents[key]
	return i, ok
}

// Control returns the control bound to key.
func (k Keymap) Control(key string) (Control, bool) {
	c, ok := k.Controls[key]
	return c, ok
}

// Bind maps key to the intent or control called name, e.g. "HardDrop" or
// "Pause". A key is bound to at most one action.
func (k Keymap) Bind(key, name string) error {
	if key == "" {
		return fmt.Errorf("bind %q: empty key", name)
	}
	if intent, ok := ParseIntent(name); ok {
		delete(k.Controls, key)
		k.Intents[key] = intent
		return nil
	}
	if control, ok := ParseControl(name); ok {
		delete(k.Intents, key)
		k.Controls[key] = control
		return nil
	}
	return fmt.Errorf("bind %q: unknown action %q", key, name)
}

// Apply binds every key of bindings in sorted key order and returns the
// first error.
func (k Keymap) Apply(bindings map[string]string) error {
	for _, key := range slices.Sorted(maps.Keys(bindings)) {
		if err := k.Bind(key, bindings[key]); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns the keys bound to intent, sorted.
func (k Keymap) Keys(intent puzzle.Intent) []string {
	var keys []string
	for key, i := range k.Intents {
		if i == intent {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	return keys
}

// ParseIntent looks up an intent by name, ignoring case.
func ParseIntent(name string) (puzzle.Intent, bool) {
	for i := puzzle.MoveLeft; i <= puzzle.HardDrop; i++ {
		if strings.EqualFold(i.String(), name) {
			return i, true
		}
	}
	return 0, false
}

// ParseControl looks up a control by name, ignoring case.
func ParseControl(name string) (Control, bool) {
	for c := Start; c <= Quit; c++ {
		if strings.EqualFold(c.String(), name) {
			return c, true
		}
	}
	return 0, false
}
