package engine

import (
	"github.com/dshills/modalkey/internal/editor"
	"github.com/dshills/modalkey/internal/input/command"
	"github.com/dshills/modalkey/internal/input/key"
	"github.com/dshills/modalkey/internal/input/mapping"
)

// handleKeyMapping runs the user-mapping layer for one key. It returns
// true when the mapping layer consumed the key: it is buffered as part of
// a possible mapping, completed one, or was replayed as part of an
// abandoned sequence.
func (h *Handler) handleKeyMapping(sess *Session, ed editor.Editor, ev key.Event) bool {
	if !h.isMappableState(sess, ev) {
		return false
	}

	ms := sess.Mapping()
	ms.StopTimer()
	ms.AddKey(ev)

	table := h.deps.Mappings.Table(sess.MappingMode())

	return h.handleUnfinishedMappingSequence(sess, ed, ms, table) ||
		h.handleCompleteMappingSequence(sess, ed, ms, table, ev) ||
		h.handleAbandonedMappingSequence(sess, ed, ms)
}

// isMappableState reports whether mapping resolution applies to ev at
// all. Keys typed while an argument is pending, while the composer is
// active, or in the middle of a multi-key command resolve literally, as
// does '0' when it would extend a count.
func (h *Handler) isMappableState(sess *Session, ev key.Event) bool {
	if sess.State() == StateCharOrDigraph {
		return false
	}
	if sess.Digraph().Active() {
		return false
	}
	if !sess.Keys().IsEmpty() {
		return false
	}
	if ev.IsRune() && ev.Rune == '0' && sess.Count() != 0 {
		return false
	}
	return true
}

// handleUnfinishedMappingSequence buffers the key when the typed
// sequence is a strict prefix of some registered mapping. The
// disambiguation timer replays the buffered keys unmapped when it fires;
// with timeout disabled (or under test) the sequence waits indefinitely.
func (h *Handler) handleUnfinishedMappingSequence(sess *Session, ed editor.Editor, ms *mapping.State, table *mapping.Table) bool {
	if !table.IsPrefix(ms.Keys()) {
		return false
	}

	if h.deps.Options.TimeoutEnabled() && !h.deps.Options.TestMode() {
		ms.StartTimer(h.deps.Timers, h.deps.Options.Timeout(), func() {
			h.deps.Host.Invoke(func() {
				unhandled := ms.Detach()
				// A stuck plug-key sequence is discarded outright; plug
				// keys have no literal meaning to replay.
				if len(unhandled) == 0 || unhandled[0].Key == key.KeyPlug {
					return
				}
				for _, k := range unhandled {
					h.handleKey(sess, ed, k, false)
				}
			})
		})
	}
	return true
}

// handleCompleteMappingSequence executes a mapping whose source matches
// the buffered keys. When the full buffer matches nothing, the buffer
// minus its last key is rechecked once; a hit there executes that
// mapping and re-handles the last key on its own.
func (h *Handler) handleCompleteMappingSequence(sess *Session, ed editor.Editor, ms *mapping.State, table *mapping.Table, ev key.Event) bool {
	full := table.Get(ms.Keys())
	info := full
	if info == nil && ms.Keys().Len() > 1 {
		shorter := ms.Keys().Clone()
		shorter.DropLast()
		info = table.Get(shorter)
	}
	if info == nil {
		return false
	}

	ms.Clear()

	switch {
	case info.ToKeys != nil:
		h.replayMappedKeys(sess, ed, info)
	case info.Handler != nil:
		h.runMappingHandler(sess, ed, info)
	}

	if info != full {
		h.handleKey(sess, ed, ev, true)
	}
	return true
}

// replayMappedKeys feeds a key-substitution mapping's target keys back
// through the engine. The first replayed key resolves unmapped when the
// source is a prefix of the target, which is the only way a mapping like
// "map x xy" can terminate.
func (h *Handler) replayMappedKeys(sess *Session, ed editor.Editor, info *mapping.Info) {
	selfPrefixed := info.IsSelfPrefixed()
	for i, k := range info.ToKeys.Events {
		allow := info.Recursive && !(i == 0 && selfPrefixed)
		h.handleKey(sess, ed, k, allow)
	}
}

// runMappingHandler executes a handler mapping. When it fires while an
// operator is pending and moves carets without supplying an argument
// itself, the caret travel is converted into a characterwise exclusive
// selection argument so the operator can complete.
func (h *Handler) runMappingHandler(sess *Session, ed editor.Editor, info *mapping.Info) {
	// The handler may change modes while it runs.
	operatorWasPending := sess.IsOperatorPending()

	starts := make(map[editor.Caret]int, len(ed.Carets()))
	for _, c := range ed.Carets() {
		starts[c] = c.Offset()
	}

	if info.Handler.IsRepeatable() {
		h.repeat = repeatState{}
	}

	info.Handler.Execute(ed)

	if info.Handler.IsRepeatable() {
		h.repeat.handler = info.Handler
		h.repeat.captured = nil
	}

	if operatorWasPending && !sess.HasCommandArgument() {
		var sels []editor.Selection
		for _, c := range ed.Carets() {
			if c.HasSelection() {
				selStart, selEnd := c.SelectionRange()
				sels = append(sels, editor.Selection{Start: selStart, End: selEnd, Type: editor.CharacterWise})
				continue
			}
			start, ok := starts[c]
			if !ok || c.Offset() == start {
				continue
			}
			// Travel is exclusive of the landing offset; the pair shrinks
			// by one toward the covered span in either direction.
			end := c.Offset()
			if start < end {
				end--
			} else {
				start--
			}
			sels = append(sels, editor.Selection{Start: start, End: end, Type: editor.CharacterWise})
		}
		if len(sels) > 0 {
			sess.SetCommandArgument(command.NewOffsetsArgument(sels))
			sess.SetState(StateReady)
		}
	}
}

// handleAbandonedMappingSequence replays a buffered sequence that can no
// longer become a mapping. A single buffered key is not a sequence at
// all and flows back to normal handling.
func (h *Handler) handleAbandonedMappingSequence(sess *Session, ed editor.Editor, ms *mapping.State) bool {
	unhandled := ms.Detach()
	if len(unhandled) == 1 {
		return false
	}

	if unhandled[0].Key == key.KeyPlug {
		// An unresolved plug sequence swallows everything but the key
		// that broke it, which may start something new.
		h.handleKey(sess, ed, unhandled[len(unhandled)-1], true)
	} else {
		// Only the first key resolves literally; the rest stay mappable
		// so the breaking key can still start a mapping of its own.
		for i, k := range unhandled {
			h.handleKey(sess, ed, k, i != 0)
		}
	}
	return true
}
