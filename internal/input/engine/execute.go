package engine

import (
	"github.com/dshills/modalkey/internal/editor"
	"github.com/dshills/modalkey/internal/input/command"
	"github.com/dshills/modalkey/internal/input/key"
	"github.com/dshills/modalkey/internal/input/mode"
)

// executeCommand dispatches an assembled command: it folds the command
// stack into one command, settles counts, checks writability, and runs
// the action inside the transaction grouping its type calls for.
func (h *Handler) executeCommand(sess *Session, ed editor.Editor, ev key.Event) {
	cmd := sess.BuildCommand()
	if cmd == nil || cmd.Action == nil {
		h.Reset(sess)
		return
	}
	cmd.MergeMotionCounts()

	if sess.MappingMode() == mode.MapOpPending {
		sess.PopModes()
	}

	// Only change commands are repeat targets; anything else (motions,
	// repeat itself, macro playback) would clobber the recorded change.
	if cmd.Action.Type().IsWrite() && !sess.IsDotRepeatInProgress() {
		sess.SetLastCommand(cmd)
	}

	if cmd.Action.Type().IsWrite() && !ed.Writable() {
		h.deps.Host.IndicateError()
		h.Reset(sess)
		return
	}

	if !cmd.Action.Flags().Has(command.FlagTypeaheadSelfManage) {
		h.deps.Host.FlushTypeahead()
	}

	run := func() { h.runCommand(sess, ed, ev, cmd) }
	t := cmd.Action.Type()
	switch {
	case t.IsWrite():
		h.deps.Host.RunWrite(ed, cmd.Action.ID(), run)
	case t.IsRead():
		h.deps.Host.RunRead(ed, cmd.Action.ID(), run)
	default:
		h.deps.Host.RunNeutral(ed, cmd.Action.ID(), run)
	}
}

// runCommand executes the action and performs the post-execution
// bookkeeping. Session state is reset before the action runs so actions
// that feed keys back in (macros, repeat) start clean.
func (h *Handler) runCommand(sess *Session, ed editor.Editor, ev key.Event, cmd *command.Command) {
	wasRecording := sess.IsRecording()

	h.Reset(sess)

	if !cmd.Action.Execute(ed, cmd) {
		h.deps.Host.IndicateError()
	}

	m := sess.Mode()
	if m == mode.Insert || m == mode.Replace {
		h.deps.Change.ProcessCommand(ed, cmd)
	}

	if cmd.Action.Type() != command.TypeSelectRegister {
		h.deps.Registers.Reset()
	}

	if sess.SubMode() == mode.SubSingleCommand && !cmd.Action.Flags().Has(command.FlagExpectMore) {
		sess.PopModes()
	}

	// The action may have switched modes; return the trie position to the
	// now-active mapping mode's root. The composer stays untouched so a
	// command that armed a digraph entry keeps it armed.
	h.PartialReset(sess)
	sess.ClearCommands()
	sess.ClearOperatorKey()
	sess.SetState(StateNewCommand)
	sess.SetArgumentType(command.ArgNone)

	// Recording the triggering key here, rather than in the generic
	// recording path, keeps a stop-recording command's own key out of
	// the macro while still capturing keys for commands that leave
	// recording active.
	if wasRecording && sess.IsRecording() {
		sess.Recorder().Record(ev)
	}
}
