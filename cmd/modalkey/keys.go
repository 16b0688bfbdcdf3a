package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/modalkey/internal/input/key"
)

// specialKeys maps tcell special keys to engine keys.
var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
}

// translateKey converts a terminal key event into an engine key event.
// Unrepresentable keys return false.
func translateKey(tev *tcell.EventKey) (key.Event, bool) {
	mods := key.ModNone
	if tev.Modifiers()&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if tev.Modifiers()&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}

	if k, ok := specialKeys[tev.Key()]; ok {
		return key.NewSpecialEvent(k, mods), true
	}

	// tcell folds Ctrl-letter chords into dedicated key codes.
	if tev.Key() >= tcell.KeyCtrlA && tev.Key() <= tcell.KeyCtrlZ {
		r := rune('a' + tev.Key() - tcell.KeyCtrlA)
		return key.NewRuneEvent(r, mods.With(key.ModCtrl)), true
	}

	if tev.Key() >= tcell.KeyF1 && tev.Key() <= tcell.KeyF12 {
		k := key.KeyF1 + key.Key(tev.Key()-tcell.KeyF1)
		return key.NewSpecialEvent(k, mods), true
	}

	if tev.Key() == tcell.KeyRune {
		return key.NewRuneEvent(tev.Rune(), mods), true
	}

	return key.Event{}, false
}
