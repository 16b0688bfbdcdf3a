package engine

import (
	"github.com/google/uuid"

	"github.com/dshills/modalkey/internal/input/command"
	"github.com/dshills/modalkey/internal/input/digraph"
	"github.com/dshills/modalkey/internal/input/key"
	"github.com/dshills/modalkey/internal/input/macro"
	"github.com/dshills/modalkey/internal/input/mapping"
	"github.com/dshills/modalkey/internal/input/mode"
	"github.com/dshills/modalkey/internal/input/trie"
)

// CommandState drives the dispatch decision after each key.
type CommandState uint8

const (
	// StateNewCommand is the initial, ready-to-start state.
	StateNewCommand CommandState = iota
	// StateCharOrDigraph waits for a character or digraph argument.
	StateCharOrDigraph
	// StateReady means a full command is assembled and must be dispatched.
	StateReady
	// StateBadCommand means the attempt is unrecoverable and the session
	// must be reset.
	StateBadCommand
)

// String returns a string representation of the command state.
func (s CommandState) String() string {
	switch s {
	case StateNewCommand:
		return "newCommand"
	case StateCharOrDigraph:
		return "charOrDigraph"
	case StateReady:
		return "ready"
	case StateBadCommand:
		return "badCommand"
	default:
		return "unknown"
	}
}

// Session is the per-editing-session mutable record the engine drives. A
// session is exclusively owned by its editing session and never mutated
// concurrently; it is created once and lives for the session's duration.
type Session struct {
	// ID identifies the session.
	ID uuid.UUID

	modes *mode.Stack

	// count accumulates digit keys; 0 means "unspecified", not zero.
	count int

	// keys logs the keys typed for the in-progress command.
	keys *key.Sequence

	// currentNode is the position in the active mapping mode's trie.
	currentNode *trie.PartialNode

	// commandStack holds at most two entries: a base command plus a
	// motion argument being collected for it.
	commandStack []*command.Command

	// argType is the argument kind the in-progress command still needs.
	argType command.ArgType

	state CommandState

	mappingState *mapping.State
	digraphSeq   *digraph.Sequence
	recorder     *macro.Recorder

	// operatorKey is the key that matched the pending duplicable
	// operator; pressing it again redirects to the operator-self child.
	operatorKey    key.Event
	operatorKeySet bool

	// dotRepeatInProgress is set by the host's repeat action while it
	// replays the last command.
	dotRepeatInProgress bool

	// lastCommand is the most recently executed command, for dot-repeat.
	lastCommand *command.Command
}

// NewSession creates a session in normal mode.
func NewSession() *Session {
	return &Session{
		ID:           uuid.New(),
		modes:        mode.NewStack(),
		keys:         key.NewSequence(),
		mappingState: mapping.NewState(),
		digraphSeq:   digraph.NewSequence(),
		recorder:     macro.NewRecorder(),
	}
}

// Mode returns the current editing mode.
func (s *Session) Mode() mode.Mode {
	return s.modes.Current().Mode
}

// SubMode returns the current submode.
func (s *Session) SubMode() mode.SubMode {
	return s.modes.Current().SubMode
}

// MappingMode returns the current mapping mode.
func (s *Session) MappingMode() mode.MappingMode {
	return s.modes.Current().MappingMode
}

// PushModes pushes a mode frame.
func (s *Session) PushModes(m mode.Mode, sub mode.SubMode, mm mode.MappingMode) {
	s.modes.Push(mode.Frame{Mode: m, SubMode: sub, MappingMode: mm})
}

// PopModes pops the top mode frame.
func (s *Session) PopModes() {
	s.modes.Pop()
}

// SetMode replaces the current mode frame, deriving the mapping mode.
func (s *Session) SetMode(m mode.Mode, sub mode.SubMode) {
	s.modes.SetCurrent(mode.Frame{Mode: m, SubMode: sub, MappingMode: mode.MappingModeFor(m, sub)})
}

// ResetModes unwinds the mode stack to a normal-mode base.
func (s *Session) ResetModes() {
	for s.modes.Depth() > 1 {
		s.modes.Pop()
	}
	s.modes.SetBase(mode.Frame{Mode: mode.Normal, SubMode: mode.SubNone, MappingMode: mode.MapNormal})
}

// IsOperatorPending reports whether an operator is waiting for a motion.
func (s *Session) IsOperatorPending() bool {
	return s.MappingMode() == mode.MapOpPending
}

// Count returns the pending count (0 = unspecified).
func (s *Session) Count() int {
	return s.count
}

// SetCount sets the pending count.
func (s *Session) SetCount(n int) {
	s.count = n
}

// State returns the command state.
func (s *Session) State() CommandState {
	return s.state
}

// SetState sets the command state.
func (s *Session) SetState(cs CommandState) {
	s.state = cs
}

// ArgumentType returns the argument kind the in-progress command needs.
func (s *Session) ArgumentType() command.ArgType {
	return s.argType
}

// SetArgumentType sets the pending argument kind.
func (s *Session) SetArgumentType(t command.ArgType) {
	s.argType = t
}

// Keys returns the typed-key log for the in-progress command.
func (s *Session) Keys() *key.Sequence {
	return s.keys
}

// AddKey logs a typed key.
func (s *Session) AddKey(ev key.Event) {
	s.keys.Add(ev)
}

// CurrentNode returns the trie position, or nil if unset.
func (s *Session) CurrentNode() *trie.PartialNode {
	return s.currentNode
}

// SetCurrentNode moves the trie position.
func (s *Session) SetCurrentNode(n *trie.PartialNode) {
	s.currentNode = n
}

// Mapping returns the session's mapping-resolution state.
func (s *Session) Mapping() *mapping.State {
	return s.mappingState
}

// Digraph returns the session's digraph composer.
func (s *Session) Digraph() *digraph.Sequence {
	return s.digraphSeq
}

// Recorder returns the session's macro recorder.
func (s *Session) Recorder() *macro.Recorder {
	return s.recorder
}

// IsRecording reports whether a macro recording is active.
func (s *Session) IsRecording() bool {
	return s.recorder.IsRecording()
}

// PushNewCommand pushes a command for an action, capturing the pending
// count as the command's raw count.
func (s *Session) PushNewCommand(action command.Action) *command.Command {
	cmd := command.New(action, s.count)
	s.commandStack = append(s.commandStack, cmd)
	return cmd
}

// PopCommand removes and returns the top of the command stack.
func (s *Session) PopCommand() *command.Command {
	if len(s.commandStack) == 0 {
		return nil
	}
	cmd := s.commandStack[len(s.commandStack)-1]
	s.commandStack = s.commandStack[:len(s.commandStack)-1]
	return cmd
}

// PeekCommand returns the top of the command stack without removing it.
func (s *Session) PeekCommand() *command.Command {
	if len(s.commandStack) == 0 {
		return nil
	}
	return s.commandStack[len(s.commandStack)-1]
}

// CommandDepth returns the command stack depth.
func (s *Session) CommandDepth() int {
	return len(s.commandStack)
}

// ClearCommands empties the command stack.
func (s *Session) ClearCommands() {
	s.commandStack = s.commandStack[:0]
}

// SetCommandArgument attaches an argument to the top command.
func (s *Session) SetCommandArgument(arg *command.Argument) {
	if cmd := s.PeekCommand(); cmd != nil {
		cmd.Argument = arg
	}
}

// HasCommandArgument reports whether the top command carries an argument.
func (s *Session) HasCommandArgument() bool {
	cmd := s.PeekCommand()
	return cmd != nil && cmd.Argument != nil
}

// HasOffsetsArgument reports whether the top command's argument was
// synthesized from extension-captured offsets.
func (s *Session) HasOffsetsArgument() bool {
	cmd := s.PeekCommand()
	return cmd != nil && cmd.Argument != nil && cmd.Argument.Offsets != nil
}

// BuildCommand merges the command stack into one command: a second entry
// becomes the first entry's motion argument.
func (s *Session) BuildCommand() *command.Command {
	if len(s.commandStack) == 0 {
		return nil
	}
	base := s.commandStack[0]
	if len(s.commandStack) > 1 {
		base.Argument = command.NewMotionArgument(s.commandStack[len(s.commandStack)-1])
	}
	s.commandStack = s.commandStack[:0]
	return base
}

// SetOperatorKey remembers the key that matched a pending duplicable
// operator.
func (s *Session) SetOperatorKey(ev key.Event) {
	s.operatorKey = ev
	s.operatorKeySet = true
}

// ClearOperatorKey forgets the pending operator key.
func (s *Session) ClearOperatorKey() {
	s.operatorKeySet = false
}

// IsDuplicateOperatorKeyStroke reports whether ev repeats the pending
// duplicable operator's own key.
func (s *Session) IsDuplicateOperatorKeyStroke(ev key.Event) bool {
	if !s.IsOperatorPending() || !s.operatorKeySet {
		return false
	}
	cmd := s.PeekCommand()
	if cmd == nil || !cmd.Action.Flags().Has(command.FlagDuplicableOperator) {
		return false
	}
	return ev == s.operatorKey
}

// SetDotRepeatInProgress marks that the host's repeat action is replaying
// the last command.
func (s *Session) SetDotRepeatInProgress(v bool) {
	s.dotRepeatInProgress = v
}

// IsDotRepeatInProgress reports whether a dot-repeat replay is active.
func (s *Session) IsDotRepeatInProgress() bool {
	return s.dotRepeatInProgress
}

// LastCommand returns the most recently executed command, or nil.
func (s *Session) LastCommand() *command.Command {
	return s.lastCommand
}

// SetLastCommand records the command about to execute for dot-repeat.
func (s *Session) SetLastCommand(cmd *command.Command) {
	s.lastCommand = cmd
}

// IsDefaultState reports whether nothing is pending: no count, no partial
// command, no argument, trie position at (or before) the root.
func (s *Session) IsDefaultState() bool {
	return s.count == 0 &&
		len(s.commandStack) == 0 &&
		s.argType == command.ArgNone &&
		s.state == StateNewCommand
}
