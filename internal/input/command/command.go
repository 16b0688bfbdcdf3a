package command

import (
	"github.com/dshills/modalkey/internal/editor"
)

// Type classifies a command for execution semantics. Write-classified
// commands need a writable surface and a write transaction; read-classified
// commands run under a read-only transaction; everything else runs under
// plain command grouping.
type Type uint8

const (
	// TypeMotion moves the caret without changing text.
	TypeMotion Type = iota
	// TypeInsert inserts text.
	TypeInsert
	// TypeDelete removes text.
	TypeDelete
	// TypeChange removes text and enters insert mode.
	TypeChange
	// TypeCopy copies text into a register.
	TypeCopy
	// TypePaste inserts register contents.
	TypePaste
	// TypeReset cancels pending state.
	TypeReset
	// TypeSelectRegister selects the register for the next command.
	TypeSelectRegister
	// TypeOtherReadonly is any other command that never modifies text.
	TypeOtherReadonly
	// TypeOtherWritable is any other command that modifies text.
	TypeOtherWritable
	// TypeOtherSelfSynchronized manages its own transaction grouping.
	TypeOtherSelfSynchronized
)

// IsRead returns true if the command only reads the surface.
func (t Type) IsRead() bool {
	switch t {
	case TypeMotion, TypeCopy, TypeReset, TypeSelectRegister, TypeOtherReadonly:
		return true
	default:
		return false
	}
}

// IsWrite returns true if the command modifies the surface.
func (t Type) IsWrite() bool {
	switch t {
	case TypeInsert, TypeDelete, TypeChange, TypePaste, TypeOtherWritable:
		return true
	default:
		return false
	}
}

// String returns a string representation of the type.
func (t Type) String() string {
	switch t {
	case TypeMotion:
		return "motion"
	case TypeInsert:
		return "insert"
	case TypeDelete:
		return "delete"
	case TypeChange:
		return "change"
	case TypeCopy:
		return "copy"
	case TypePaste:
		return "paste"
	case TypeReset:
		return "reset"
	case TypeSelectRegister:
		return "selectRegister"
	case TypeOtherReadonly:
		return "otherReadonly"
	case TypeOtherWritable:
		return "otherWritable"
	case TypeOtherSelfSynchronized:
		return "otherSelfSynchronized"
	default:
		return "unknown"
	}
}

// Flag carries per-action behavior flags.
type Flag uint16

const (
	// FlagNone is the empty flag set.
	FlagNone Flag = 0

	// FlagCompleteEx marks search-entry actions that complete through the
	// external command-line collaborator.
	FlagCompleteEx Flag = 1 << iota

	// FlagExpectMore keeps a transient single-command submode active after
	// the command executes (e.g. select-register).
	FlagExpectMore

	// FlagTypeaheadSelfManage suppresses the host's typeahead flush before
	// dispatch.
	FlagTypeaheadSelfManage

	// FlagDuplicableOperator marks operators whose own key, pressed again
	// while the operator waits for a motion, means "apply to current line".
	FlagDuplicableOperator
)

// Has returns true if f contains the specified flag.
func (f Flag) Has(flag Flag) bool {
	return f&flag != 0
}

// Action is one entry in the host's command library. Implementations are
// stateless; per-invocation data arrives in the Command value.
type Action interface {
	// ID returns a stable identifier, e.g. "operator.delete".
	ID() string

	// Type returns the command classification.
	Type() Type

	// ArgumentType returns the kind of argument the action still needs
	// after its key sequence matches, or ArgNone.
	ArgumentType() ArgType

	// Flags returns the action's behavior flags.
	Flags() Flag

	// Execute runs the action. The returned bool reports success.
	Execute(ed editor.Editor, cmd *Command) bool
}

// Command is a fully- or partially-built executable command.
type Command struct {
	// Action is the command's action.
	Action Action

	// RawCount is the typed count; 0 means "unspecified", not zero.
	RawCount int

	// Argument is the collected argument, nil while still pending.
	Argument *Argument
}

// New creates a command for an action with the given raw count.
func New(action Action, rawCount int) *Command {
	return &Command{Action: action, RawCount: rawCount}
}

// Count returns the effective count (1 when unspecified).
func (c *Command) Count() int {
	if c.RawCount < 1 {
		return 1
	}
	return c.RawCount
}

// MergeMotionCounts applies operator/motion count arithmetic in place:
// if either the base command or its motion argument carries an explicit
// count, the motion receives the product and the base count is cleared.
// With no explicit count on either, both stay unspecified.
func (c *Command) MergeMotionCounts() {
	if c.Argument == nil || c.Argument.Type != ArgMotion || c.Argument.Motion == nil {
		return
	}
	mot := c.Argument.Motion
	if c.RawCount == 0 && mot.RawCount == 0 {
		return
	}
	mot.RawCount = c.Count() * mot.Count()
	c.RawCount = 0
}
