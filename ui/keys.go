package ui

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var (
	ErrUnknownKey = errors.New("ui: unknown key")
	ErrKeyTaken   = errors.New("ui: key")
)

// ParseKey resolves an ebiten key name such as "A", "Escape" or
// "ArrowLeft", ignoring case and an optional "Key" prefix.
func ParseKey(name string) (ebiten.Key, error) {
	name = strings.TrimSpace(name)
	if len(name) > 3 && strings.EqualFold(name[:3], "key") {
		name = name[3:]
	}
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if strings.EqualFold(k.String(), name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownKey, name)
}

// Bindings maps keys to the commands they trigger.
type Bindings[C any] map[ebiten.Key]C

// ParseBindings turns a command-name to key-name table into Bindings using
// parse for the command names. Every bad entry is reported. When several
// commands share a key, the first by name keeps it.
func ParseBindings[C any](table map[string]string, parse func(string) (C, error)) (Bindings[C], error) {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	slices.Sort(names)

	b := make(Bindings[C], len(table))
	owner := make(map[ebiten.Key]string, len(table))
	var errs []error
	for _, name := range names {
		keyName := table[name]
		cmd, err := parse(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		key, err := ParseKey(keyName)
		if err != nil {
			errs = append(errs, fmt.Errorf("binding %s: %w", name, err))
			continue
		}
		if prev, ok := owner[key]; ok {
			errs = append(errs, fmt.Errorf("binding %s: %w %s already bound to %s", name, ErrKeyTaken, keyName, prev))
			continue
		}
		owner[key] = name
		b[key] = cmd
	}
	return b, errors.Join(errs...)
}

// Keys returns the bound keys in ascending order.
func (b Bindings[C]) Keys() []ebiten.Key {
	keys := make([]ebiten.Key, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// JustPressed returns the commands whose key went down this tick.
func (b Bindings[C]) JustPressed() []C {
	var out []C
	for _, k := range b.Keys() {
		if inpututil.IsKeyJustPressed(k) {
			out = append(out, b[k])
		}
	}
	return out
}
