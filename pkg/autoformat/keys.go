package autoformat

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// KeyCode distinguishes printable input from editing keys.
type KeyCode uint8

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyTab
	KeyEscape
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
)

var keyNames = map[string]KeyCode{
	"enter":      KeyEnter,
	"return":     KeyEnter,
	"backspace":  KeyBackspace,
	"delete":     KeyDelete,
	"tab":        KeyTab,
	"escape":     KeyEscape,
	"esc":        KeyEscape,
	"arrowleft":  KeyLeft,
	"left":       KeyLeft,
	"arrowright": KeyRight,
	"right":      KeyRight,
	"home":       KeyHome,
	"end":        KeyEnd,
	"space":      KeyRune,
}

// Key is a single keydown event. Rune is set only for KeyRune.
type Key struct {
	Code KeyCode
	Rune rune
}

// Char returns the key that types r.
func Char(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

// Special returns a non-printable key.
func Special(code KeyCode) Key {
	return Key{Code: code}
}

// ParseKey accepts a single character or a key name such as "Enter",
// "Backspace" or "ArrowLeft" (case-insensitive).
func ParseKey(name string) (Key, error) {
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return Char(r), nil
	}
	lower := strings.ToLower(name)
	code, ok := keyNames[lower]
	if !ok {
		return Key{}, fmt.Errorf("unknown key %q", name)
	}
	if lower == "space" {
		return Char(' '), nil
	}
	return Special(code), nil
}

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether every modifier in x is held.
func (m Modifiers) Has(x Modifiers) bool {
	return m&x == x
}

// Command reports whether a modifier that turns a key into a command
// (control or meta) is held.
func (m Modifiers) Command() bool {
	return m&(ModCtrl|ModMeta) != 0
}

// ParseModifiers maps names like "ctrl", "meta", "alt", "shift" to a set.
func ParseModifiers(names []string) (Modifiers, error) {
	var m Modifiers
	for _, n := range names {
		switch strings.ToLower(n) {
		case "shift":
			m |= ModShift
		case "ctrl", "control":
			m |= ModCtrl
		case "alt", "option":
			m |= ModAlt
		case "meta", "cmd", "command", "super":
			m |= ModMeta
		default:
			return 0, fmt.Errorf("unknown modifier %q", n)
		}
	}
	return m, nil
}
