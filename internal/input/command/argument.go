package command

import (
	"github.com/dshills/modalkey/internal/editor"
)

// ArgType enumerates the kinds of argument an action can require.
type ArgType uint8

const (
	// ArgNone means the action is complete as soon as its keys match.
	ArgNone ArgType = iota
	// ArgCharacter waits for one literal character (e.g. "r", "f").
	ArgCharacter
	// ArgDigraph waits for a character that may be composed with the
	// digraph/literal sub-machine before "r"/"f" style consumption.
	ArgDigraph
	// ArgMotion waits for a full motion command (operators).
	ArgMotion
	// ArgExString waits for a command-line string (":" and search).
	ArgExString
)

// String returns a string representation of the argument type.
func (t ArgType) String() string {
	switch t {
	case ArgNone:
		return "none"
	case ArgCharacter:
		return "character"
	case ArgDigraph:
		return "digraph"
	case ArgMotion:
		return "motion"
	case ArgExString:
		return "exString"
	default:
		return "unknown"
	}
}

// Argument is a collected command argument. Exactly the field matching
// Type is meaningful; ArgOffsets-style extension captures reuse ArgMotion
// with Offsets set instead of Motion.
type Argument struct {
	// Type is the argument kind.
	Type ArgType

	// Char is the literal character for ArgCharacter.
	Char rune

	// Motion is the motion command for ArgMotion.
	Motion *Command

	// Text is the entered string for ArgExString.
	Text string

	// Offsets carries per-caret selections synthesized from an extension
	// handler, aligned with editor.Carets() order. When non-nil it stands
	// in for Motion as the operator's range.
	Offsets []editor.Selection
}

// NewCharArgument creates a character argument.
func NewCharArgument(ch rune) *Argument {
	return &Argument{Type: ArgCharacter, Char: ch}
}

// NewMotionArgument creates a motion argument.
func NewMotionArgument(motion *Command) *Argument {
	return &Argument{Type: ArgMotion, Motion: motion}
}

// NewExStringArgument creates a command-line string argument.
func NewExStringArgument(text string) *Argument {
	return &Argument{Type: ArgExString, Text: text}
}

// NewOffsetsArgument creates a motion argument backed by captured
// selections rather than a motion command.
func NewOffsetsArgument(offsets []editor.Selection) *Argument {
	return &Argument{Type: ArgMotion, Offsets: offsets}
}
