// Package engine implements the key-event dispatch engine: the per-session
// state machine that classifies incoming keys, resolves them against the
// command tries and user mappings, accumulates counts and arguments,
// composes operator+motion commands, and hands completed commands to the
// execution collaborator.
package engine

import (
	"github.com/dshills/modalkey/internal/config"
	"github.com/dshills/modalkey/internal/editor"
	"github.com/dshills/modalkey/internal/input/command"
	"github.com/dshills/modalkey/internal/input/digraph"
	"github.com/dshills/modalkey/internal/input/key"
	"github.com/dshills/modalkey/internal/input/mapping"
	"github.com/dshills/modalkey/internal/input/mode"
	"github.com/dshills/modalkey/internal/input/trie"
)

// ToggleRecordingActionID is the action that starts/stops macro
// recording; matching it while recording completes the command without
// waiting for its register argument.
const ToggleRecordingActionID = "macro.toggleRecording"

// Deps are the engine's external collaborators. All fields are required
// except Timers, which defaults to the real clock.
type Deps struct {
	Commands  *trie.Registry
	Mappings  *mapping.Set
	Options   config.Options
	Change    Change
	Ex        ExEntry
	Registers Registers
	Host      Host
	Timers    mapping.TimerFactory
}

// repeatState is the process-wide dot-repeat extension record: the last
// repeatable extension handler and the motion argument captured from it.
type repeatState struct {
	handler  mapping.Handler
	captured *command.Argument
}

// Handler is the dispatch engine. It is explicitly constructed and
// dependency-injected; sessions are passed per call.
type Handler struct {
	deps   Deps
	repeat repeatState
}

// New creates a dispatch engine.
func New(deps Deps) *Handler {
	if deps.Timers == nil {
		deps.Timers = mapping.AfterFunc
	}
	return &Handler{deps: deps}
}

// LastExtension returns the last repeatable extension handler, or nil.
func (h *Handler) LastExtension() mapping.Handler {
	return h.repeat.handler
}

// SetCapturedArgument stores a captured extension argument for reuse by
// dot-repeat.
func (h *Handler) SetCapturedArgument(arg *command.Argument) {
	h.repeat.captured = arg
}

// BeforeHandleKey runs the insert/replace pre-handling hook. Hosts call
// it before HandleKey to draft low-latency typing.
func (h *Handler) BeforeHandleKey(sess *Session, ed editor.Editor, ev key.Event) {
	m := sess.Mode()
	if m == mode.Insert || m == mode.Replace {
		h.deps.Change.BeforeProcessKey(ed, ev)
	}
}

// HandleKey feeds one key event into the engine with mapping resolution
// enabled. It is the sole entry point for ordinary input and is total
// over well-formed input: errors surface as side effects, never returns.
func (h *Handler) HandleKey(sess *Session, ed editor.Editor, ev key.Event) {
	h.handleKey(sess, ed, ev, true)
}

// HandleKeyUnmapped feeds one key with mapping resolution disabled, as
// replay paths do.
func (h *Handler) HandleKeyUnmapped(sess *Session, ed editor.Editor, ev key.Event) {
	h.handleKey(sess, ed, ev, false)
}

func (h *Handler) handleKey(sess *Session, ed editor.Editor, ev key.Event, allowMappings bool) {
	h.deps.Host.ClearError()

	if sess.CurrentNode() == nil {
		sess.SetCurrentNode(h.deps.Commands.Root(sess.MappingMode()))
	}

	isRecording := sess.IsRecording()
	shouldRecord := true

	switch {
	case allowMappings && h.handleKeyMapping(sess, ed, ev):
		if !sess.IsOperatorPending() || !sess.HasOffsetsArgument() {
			return
		}
		// An extension handler just synthesized a motion argument for the
		// pending operator; fall through to dispatch it.

	case h.isCommandCount(sess, ev):
		sess.SetCount(sess.Count()*10 + int(ev.Rune-'0'))

	case h.isDeleteCommandCount(sess, ev):
		sess.SetCount(sess.Count() / 10)

	case h.isEditorReset(sess, ev):
		h.handleEditorReset(sess, ed, ev)

	case sess.ArgumentType() == command.ArgCharacter:
		h.handleCharArgument(sess, ev)

	default:
		sess.AddKey(ev)

		if h.handleDigraph(sess, ed, ev) {
			return
		}

		node := sess.CurrentNode().Get(ev)
		node = h.mapOpCommand(sess, ev, node)

		switch n := node.(type) {
		case *trie.CommandNode:
			h.handleCommandNode(sess, ed, ev, n)
		case *trie.PartialNode:
			sess.SetCurrentNode(n)
		default:
			shouldRecord = h.handleUnmatchedKey(sess, ed, ev)
			h.PartialReset(sess)
		}
	}

	switch sess.State() {
	case StateReady:
		h.executeCommand(sess, ed, ev)
	case StateBadCommand:
		if sess.MappingMode() == mode.MapOpPending {
			sess.PopModes()
		}
		h.deps.Host.IndicateError()
		h.Reset(sess)
	default:
		if isRecording && shouldRecord {
			sess.Recorder().Record(ev)
		}
	}
}

// handleUnmatchedKey is the mode-specific fallback for keys no trie node
// matches. The returned bool reports whether the key should still be
// recorded.
func (h *Handler) handleUnmatchedKey(sess *Session, ed editor.Editor, ev key.Event) bool {
	switch {
	case sess.Mode() == mode.Insert || sess.Mode() == mode.Replace:
		return h.deps.Change.ProcessKey(ed, ev)
	case sess.Mode() == mode.Select:
		return h.deps.Change.ProcessKeyInSelectMode(ed, ev)
	case sess.MappingMode() == mode.MapCmdLine:
		return h.deps.Ex.ProcessKey(ed, ev)
	default:
		sess.SetState(StateBadCommand)
		return true
	}
}

// mapOpCommand redirects a duplicated operator key to the reserved
// operator-self child before the generic lookup result is used.
func (h *Handler) mapOpCommand(sess *Session, ev key.Event, node trie.Node) trie.Node {
	if sess.IsDuplicateOperatorKeyStroke(ev) {
		return sess.CurrentNode().Get(key.OperatorSelfEvent())
	}
	return node
}

// isCommandCount reports whether ev extends the pending count. A leading
// '0' is never a count digit; it is itself a command.
func (h *Handler) isCommandCount(sess *Session, ev key.Event) bool {
	m := sess.Mode()
	return (m == mode.Normal || m == mode.Visual) &&
		sess.State() == StateNewCommand &&
		sess.ArgumentType() != command.ArgCharacter &&
		sess.ArgumentType() != command.ArgDigraph &&
		ev.IsDigit() &&
		(sess.Count() != 0 || ev.Rune != '0')
}

// isDeleteCommandCount reports whether ev removes the last count digit.
func (h *Handler) isDeleteCommandCount(sess *Session, ev key.Event) bool {
	m := sess.Mode()
	return (m == mode.Normal || m == mode.Visual) &&
		sess.State() == StateNewCommand &&
		sess.ArgumentType() != command.ArgCharacter &&
		sess.ArgumentType() != command.ArgDigraph &&
		ev.Key == key.KeyDelete && ev.Modifiers == key.ModNone &&
		sess.Count() != 0
}

// isEditorReset reports whether ev cancels pending state in normal mode.
func (h *Handler) isEditorReset(sess *Session, ev key.Event) bool {
	return sess.Mode() == mode.Normal && ev.IsCloseKey()
}

func (h *Handler) handleEditorReset(sess *Session, ed editor.Editor, ev key.Event) {
	if sess.IsDefaultState() {
		reg := h.deps.Registers
		if reg.Current() == reg.Default() {
			if ev.IsEscape() {
				h.deps.Host.ExecuteNativeEscape(ed)
			}
			h.deps.Host.IndicateError()
		}
	}
	h.FullReset(sess, ed)
	h.deps.Change.ResetCaret(ed)
}

// handleCharArgument consumes ev as the pending literal character
// argument.
func (h *Handler) handleCharArgument(sess *Session, ev key.Event) {
	if ch, ok := ev.CharArgument(); ok {
		sess.SetCommandArgument(command.NewCharArgument(ch))
		sess.SetState(StateReady)
		return
	}
	sess.SetState(StateBadCommand)
}

// handleDigraph runs the digraph/literal composer. It returns true when
// the composer consumed the key for this pass.
func (h *Handler) handleDigraph(sess *Session, ed editor.Editor, ev key.Event) bool {
	// Operators with a digraph argument hardcode the composer triggers;
	// they are not mappable in this position.
	if sess.ArgumentType() == command.ArgDigraph {
		if digraph.IsDigraphStart(ev) {
			sess.Digraph().StartDigraph()
			return true
		}
		if digraph.IsLiteralStart(ev) {
			sess.Digraph().StartLiteral()
			return true
		}
	}

	res := sess.Digraph().ProcessKey(ev)
	switch res.Kind {
	case digraph.Handled, digraph.Bad:
		return true

	case digraph.Done:
		if sess.ArgumentType() == command.ArgDigraph {
			sess.SetArgumentType(command.ArgCharacter)
		}
		h.handleKey(sess, ed, res.Event, true)
		return true

	case digraph.Unhandled:
		if sess.ArgumentType() == command.ArgDigraph {
			sess.SetArgumentType(command.ArgCharacter)
			h.handleKey(sess, ed, ev, true)
			return true
		}
		return false

	default:
		return false
	}
}

// handleCommandNode pushes the matched action and decides what the
// command still needs.
func (h *Handler) handleCommandNode(sess *Session, ed editor.Editor, ev key.Event, node *trie.CommandNode) {
	action := node.Action
	sess.PushNewCommand(action)

	if sess.ArgumentType() != command.ArgNone && !h.checkArgumentCompatibility(sess, action) {
		return
	}

	if action.ArgumentType() == command.ArgNone || h.stopMacroRecord(sess, action) {
		sess.SetState(StateReady)
	} else {
		sess.SetArgumentType(action.ArgumentType())
		h.startWaitingForArgument(sess, ed, ev, action)
		h.PartialReset(sess)
	}

	if sess.ArgumentType() == command.ArgExString && action.Flags().Has(command.FlagCompleteEx) {
		confirm := h.deps.Ex.ConfirmAction()
		text := h.deps.Ex.End(ed)
		sess.PopCommand()
		sess.PushNewCommand(confirm)
		sess.SetCommandArgument(command.NewExStringArgument(text))
		sess.SetState(StateReady)
		sess.PopModes()
	}
}

// stopMacroRecord reports whether the action ends an active recording;
// the toggle completes immediately instead of waiting for a register.
func (h *Handler) stopMacroRecord(sess *Session, action command.Action) bool {
	return sess.IsRecording() && action.ID() == ToggleRecordingActionID
}

func (h *Handler) checkArgumentCompatibility(sess *Session, action command.Action) bool {
	// Only motion-typed actions can satisfy a pending motion argument.
	if sess.ArgumentType() == command.ArgMotion && action.Type() != command.TypeMotion {
		sess.SetState(StateBadCommand)
		return false
	}
	return true
}

func (h *Handler) startWaitingForArgument(sess *Session, ed editor.Editor, ev key.Event, action command.Action) {
	switch action.ArgumentType() {
	case command.ArgCharacter, command.ArgDigraph:
		sess.SetState(StateCharOrDigraph)

	case command.ArgMotion:
		if sess.IsDotRepeatInProgress() && h.repeat.captured != nil {
			sess.SetCommandArgument(h.repeat.captured)
			sess.SetState(StateReady)
		}
		if action.Flags().Has(command.FlagDuplicableOperator) {
			sess.SetOperatorKey(ev)
		}
		sess.PushModes(sess.Mode(), sess.SubMode(), mode.MapOpPending)

	case command.ArgExString:
		leading := ev.Rune
		h.deps.Ex.Start(ed, sess.Count(), leading)
		sess.SetState(StateNewCommand)
		// The confirm key re-enters this branch while entry is already
		// active; it must not nest a second command-line frame.
		if sess.MappingMode() != mode.MapCmdLine {
			sess.PushModes(mode.CommandLine, mode.SubNone, mode.MapCmdLine)
		}
		sess.PopCommand()
	}
}

// PartialReset clears the count, the typed-key log, the mapping buffer,
// and returns the trie position to the active mapping mode's root.
func (h *Handler) PartialReset(sess *Session) {
	sess.SetCount(0)
	sess.Mapping().Reset()
	sess.Keys().Clear()
	sess.SetCurrentNode(h.deps.Commands.Root(sess.MappingMode()))
}

// Reset performs a partial reset and additionally clears the command
// stack, the pending argument type, and the composer.
func (h *Handler) Reset(sess *Session) {
	h.PartialReset(sess)
	sess.ClearCommands()
	sess.ClearOperatorKey()
	sess.Digraph().Reset()
	sess.SetState(StateNewCommand)
	sess.SetArgumentType(command.ArgNone)
}

// FullReset resets everything: mode stack back to its base, selected
// register released, visual state restored.
func (h *Handler) FullReset(sess *Session, ed editor.Editor) {
	h.deps.Host.ClearError()
	sess.ResetModes()
	h.Reset(sess)
	h.deps.Registers.Reset()
	if ed != nil {
		ed.RemoveSelection()
	}
}

// StartDigraphSequence arms the composer for a digraph outside the
// normal trie path.
func (h *Handler) StartDigraphSequence(sess *Session) {
	sess.Digraph().StartDigraph()
}

// StartLiteralSequence arms the composer for a literal character code
// outside the normal trie path.
func (h *Handler) StartLiteralSequence(sess *Session) {
	sess.Digraph().StartLiteral()
}
