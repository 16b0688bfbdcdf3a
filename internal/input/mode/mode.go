// Package mode defines the editing modes, submodes, and mapping modes the
// dispatch engine tracks per session, plus the mode frame stack used for
// operator-pending and command-line excursions.
package mode

// Mode is the session's editing mode.
type Mode uint8

const (
	// Normal is command mode.
	Normal Mode = iota
	// Insert inserts typed keys.
	Insert
	// Replace overwrites typed keys.
	Replace
	// Visual extends a selection.
	Visual
	// Select is select mode (typing replaces the selection).
	Select
	// CommandLine edits an ex command or search pattern.
	CommandLine
)

// String returns a string representation of the mode.
func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Insert:
		return "insert"
	case Replace:
		return "replace"
	case Visual:
		return "visual"
	case Select:
		return "select"
	case CommandLine:
		return "commandLine"
	default:
		return "unknown"
	}
}

// SubMode refines the editing mode.
type SubMode uint8

const (
	// SubNone is the default submode.
	SubNone SubMode = iota
	// SubSingleCommand is the transient normal-mode excursion entered from
	// insert mode (i_Ctrl-O): one command, then pop back.
	SubSingleCommand
	// SubVisualCharacter is characterwise visual.
	SubVisualCharacter
	// SubVisualLine is linewise visual.
	SubVisualLine
	// SubVisualBlock is blockwise visual.
	SubVisualBlock
)

// String returns a string representation of the submode.
func (s SubMode) String() string {
	switch s {
	case SubNone:
		return "none"
	case SubSingleCommand:
		return "singleCommand"
	case SubVisualCharacter:
		return "visualCharacter"
	case SubVisualLine:
		return "visualLine"
	case SubVisualBlock:
		return "visualBlock"
	default:
		return "unknown"
	}
}

// MappingMode selects which mapping table and command trie apply. It is
// derived from mode/submode when a frame is pushed but tracked separately
// because several modes share one mapping mode.
type MappingMode uint8

const (
	// MapNormal applies in normal mode.
	MapNormal MappingMode = iota
	// MapVisual applies in visual mode.
	MapVisual
	// MapSelect applies in select mode.
	MapSelect
	// MapOpPending applies while an operator waits for a motion.
	MapOpPending
	// MapInsert applies in insert and replace modes.
	MapInsert
	// MapCmdLine applies during command-line entry.
	MapCmdLine
)

// String returns a string representation of the mapping mode.
func (m MappingMode) String() string {
	switch m {
	case MapNormal:
		return "normal"
	case MapVisual:
		return "visual"
	case MapSelect:
		return "select"
	case MapOpPending:
		return "operatorPending"
	case MapInsert:
		return "insert"
	case MapCmdLine:
		return "commandLine"
	default:
		return "unknown"
	}
}

// MappingModeFor returns the mapping mode a mode/submode pair maps to.
func MappingModeFor(m Mode, _ SubMode) MappingMode {
	switch m {
	case Insert, Replace:
		return MapInsert
	case Visual:
		return MapVisual
	case Select:
		return MapSelect
	case CommandLine:
		return MapCmdLine
	default:
		return MapNormal
	}
}

// Frame is one entry in a session's mode stack.
type Frame struct {
	Mode        Mode
	SubMode     SubMode
	MappingMode MappingMode
}

// Stack is a session's mode stack. The bottom frame is the base editing
// mode; operator-pending and command-line excursions push frames on top.
// The zero value is unusable; use NewStack.
type Stack struct {
	frames []Frame
}

// NewStack creates a stack with a normal-mode base frame.
func NewStack() *Stack {
	return &Stack{frames: []Frame{{Mode: Normal, SubMode: SubNone, MappingMode: MapNormal}}}
}

// Current returns the top frame.
func (s *Stack) Current() Frame {
	return s.frames[len(s.frames)-1]
}

// Depth returns the number of frames.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Push adds a frame on top of the stack.
func (s *Stack) Push(f Frame) {
	s.frames = append(s.frames, f)
}

// Pop removes the top frame. The base frame is never popped.
func (s *Stack) Pop() {
	if len(s.frames) > 1 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// SetBase replaces the bottom frame, leaving pushed frames intact.
func (s *Stack) SetBase(f Frame) {
	s.frames[0] = f
}

// SetCurrent replaces the top frame in place.
func (s *Stack) SetCurrent(f Frame) {
	s.frames[len(s.frames)-1] = f
}
