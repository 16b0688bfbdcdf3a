package engine

import (
	"github.com/dshills/modalkey/internal/editor"
	"github.com/dshills/modalkey/internal/input/command"
	"github.com/dshills/modalkey/internal/input/key"
)

// Change is the text-insertion collaborator for Insert, Replace and
// Select-mode fallback keys.
type Change interface {
	// BeforeProcessKey runs before a key is handled in insert or replace
	// mode, letting the host draft low-latency typing.
	BeforeProcessKey(ed editor.Editor, ev key.Event)

	// ProcessKey forwards an unmatched insert/replace-mode key. The
	// returned bool reports whether the key was consumed; unconsumed keys
	// are excluded from macro recording.
	ProcessKey(ed editor.Editor, ev key.Event) bool

	// ProcessKeyInSelectMode forwards an unmatched select-mode key.
	ProcessKeyInSelectMode(ed editor.Editor, ev key.Event) bool

	// ProcessCommand continues a command whose execution left the session
	// in insert or replace mode (e.g. "c", "i", "o").
	ProcessCommand(ed editor.Editor, cmd *command.Command)

	// ResetCaret restores normal-mode caret shape/position after a
	// cancelled command.
	ResetCaret(ed editor.Editor)
}

// ExEntry is the command-line collaborator for ExString argument
// collection and completion.
type ExEntry interface {
	// Start begins command-line editing for the given leading key
	// (':', '/', '?') with the pending count.
	Start(ed editor.Editor, count int, leading rune)

	// ProcessKey forwards a command-line-mode key; the returned bool
	// reports whether it was consumed.
	ProcessKey(ed editor.Editor, ev key.Event) bool

	// End finishes command-line editing and returns the entered text.
	End(ed editor.Editor) string

	// IsForwardSearch reports the direction of the active search entry.
	IsForwardSearch() bool

	// ConfirmAction returns the search-confirmation action matching the
	// active entry's direction.
	ConfirmAction() command.Action
}

// Registers is the register-store collaborator.
type Registers interface {
	// Current returns the register selected for the next command.
	Current() rune

	// Default returns the default register.
	Default() rune

	// Reset releases the selected register back to the default.
	Reset()
}

// Host provides error signaling, the native-escape side effect, typeahead
// control, event-loop scheduling, and the transactional grouping
// primitives the engine selects between.
type Host interface {
	// IndicateError surfaces a visible error side effect.
	IndicateError()

	// ClearError clears any visible error.
	ClearError()

	// ExecuteNativeEscape forwards a cancelling Escape to the host when
	// the engine itself had nothing to cancel.
	ExecuteNativeEscape(ed editor.Editor)

	// FlushTypeahead drains the host's buffered key events before a
	// command executes.
	FlushTypeahead()

	// Invoke schedules fn on the host's event loop. The mapping timeout
	// re-enters the engine through it so session ownership stays
	// single-threaded.
	Invoke(fn func())

	// RunWrite executes fn inside a write transaction.
	RunWrite(ed editor.Editor, name string, fn func())

	// RunRead executes fn inside a read-only transaction.
	RunRead(ed editor.Editor, name string, fn func())

	// RunNeutral executes fn inside plain command grouping.
	RunNeutral(ed editor.Editor, name string, fn func())
}
