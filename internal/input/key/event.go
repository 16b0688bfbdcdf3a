package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Event represents a single key press. It is a value type; two events are
// the same keypress exactly when they are ==.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return Event{Key: key, Modifiers: mods}
}

// PlugEvent returns the reserved synthetic event that starts plug-style
// mapping sequences.
func PlugEvent() Event {
	return Event{Key: KeyPlug}
}

// OperatorSelfEvent returns the reserved synthetic event registered as the
// trie child for duplicated operator keys.
func OperatorSelfEvent() Event {
	return Event{Key: KeyOperatorSelf}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune)
}

// IsDigit returns true if this is an unmodified decimal digit key.
func (e Event) IsDigit() bool {
	return e.IsRune() && e.Modifiers == ModNone && e.Rune >= '0' && e.Rune <= '9'
}

// IsModified returns true if any modifier is pressed. For character events,
// Shift alone is not considered modified since Shift changes the character.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// IsEscape returns true if this is the Escape key with no modifiers.
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape && e.Modifiers == ModNone
}

// IsCloseKey returns true for the keys that cancel a pending command:
// Escape, Ctrl-C and Ctrl-[.
func (e Event) IsCloseKey() bool {
	if e.IsEscape() {
		return true
	}
	return e.Key == KeyRune && e.Modifiers == ModCtrl && (e.Rune == 'c' || e.Rune == '[')
}

// CharArgument returns this event interpreted as a literal character
// argument. Tab and Enter map to their whitespace characters. Returns
// (0, false) when the event has no character interpretation.
func (e Event) CharArgument() (rune, bool) {
	if e.IsRune() && !e.IsModified() {
		return e.Rune, true
	}
	switch e.Key {
	case KeyTab:
		return '\t', true
	case KeyEnter:
		return '\n', true
	}
	return 0, false
}

// String returns a canonical representation: "a", "C-w", "Esc", "Plug".
func (e Event) String() string {
	var parts []string

	if e.Modifiers.HasCtrl() {
		parts = append(parts, "C")
	}
	if e.Modifiers.HasAlt() {
		parts = append(parts, "A")
	}
	if e.Modifiers.HasMeta() {
		parts = append(parts, "M")
	}
	if e.Modifiers.HasShift() && !e.IsRune() {
		parts = append(parts, "S")
	}

	var name string
	switch e.Key {
	case KeyRune:
		if e.Rune == ' ' {
			name = "Space"
		} else {
			name = string(e.Rune)
		}
	case KeyEscape:
		name = "Esc"
	case KeyEnter:
		name = "CR"
	case KeyBackspace:
		name = "BS"
	case KeyDelete:
		name = "Del"
	default:
		name = e.Key.String()
	}
	parts = append(parts, name)

	return strings.Join(parts, "-")
}

// VimString returns a Vim-style representation: "a", "<C-w>", "<Esc>".
func (e Event) VimString() string {
	if e.IsRune() && !e.IsModified() {
		if e.Rune == ' ' {
			return "<Space>"
		}
		return string(e.Rune)
	}
	return "<" + e.String() + ">"
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %s}",
		e.Key.String(), e.Rune, e.Modifiers.String())
}
