// Package editor defines the text-editing surface the dispatch engine acts
// on. The engine only needs caret and selection primitives plus a writable
// flag; buffer storage, undo, and rendering belong to the host.
package editor

// SelectionType describes how a selection spans text.
type SelectionType uint8

const (
	// CharacterWise selects a contiguous run of characters.
	CharacterWise SelectionType = iota
	// LineWise selects whole lines.
	LineWise
	// BlockWise selects a rectangular block.
	BlockWise
)

// String returns a string representation of the selection type.
func (t SelectionType) String() string {
	switch t {
	case CharacterWise:
		return "characterwise"
	case LineWise:
		return "linewise"
	case BlockWise:
		return "blockwise"
	default:
		return "unknown"
	}
}

// Selection is a resolved text span. Start and End are inclusive buffer
// offsets. It is a short-lived value: the engine builds one from caret
// offsets captured before and after an extension handler runs.
type Selection struct {
	Start int
	End   int
	Type  SelectionType
}

// Caret is one insertion point in the editing surface.
type Caret interface {
	// Offset returns the caret's current buffer offset.
	Offset() int

	// MoveTo moves the caret to the given buffer offset.
	MoveTo(offset int)

	// HasSelection returns true if the caret owns an active selection.
	HasSelection() bool

	// SelectionRange returns the active selection bounds. Only valid when
	// HasSelection is true.
	SelectionRange() (start, end int)

	// SelectionStart returns the anchor offset the current selection was
	// started from.
	SelectionStart() int
}

// Editor is the engine's view of the host editing surface.
type Editor interface {
	// Writable returns false for read-only surfaces; write-classified
	// commands against such a surface are rejected before execution.
	Writable() bool

	// Carets returns all carets, primary first. The engine never mutates
	// the returned slice.
	Carets() []Caret

	// PrimaryCaret returns the primary caret.
	PrimaryCaret() Caret

	// RemoveSelection clears any active selection on all carets.
	RemoveSelection()
}
