package main

import (
	"strings"
	"unicode"

	"github.com/dshills/modalkey/internal/editor"
	"github.com/dshills/modalkey/internal/input/command"
	"github.com/dshills/modalkey/internal/input/engine"
	"github.com/dshills/modalkey/internal/input/key"
	"github.com/dshills/modalkey/internal/input/mode"
	"github.com/dshills/modalkey/internal/input/trie"
)

// action is the demo's command.Action implementation: metadata plus an
// exec closure over the app.
type action struct {
	id    string
	typ   command.Type
	arg   command.ArgType
	flags command.Flag
	exec  func(ed editor.Editor, cmd *command.Command) bool

	// span computes the text range a motion covers when it serves as an
	// operator argument; nil motions derive the range from caret travel.
	span func(ed editor.Editor, cmd *command.Command) (start, end int, ok bool)
}

func (a *action) ID() string                    { return a.id }
func (a *action) Type() command.Type            { return a.typ }
func (a *action) ArgumentType() command.ArgType { return a.arg }
func (a *action) Flags() command.Flag           { return a.flags }
func (a *action) Execute(ed editor.Editor, cmd *command.Command) bool {
	return a.exec(ed, cmd)
}

func seq(events ...key.Event) *key.Sequence {
	return key.NewSequenceFrom(events...)
}

func r(ch rune) key.Event    { return key.NewRuneEvent(ch, key.ModNone) }
func sp(k key.Key) key.Event { return key.NewSpecialEvent(k, key.ModNone) }
func ctrl(ch rune) key.Event { return key.NewRuneEvent(ch, key.ModCtrl) }

// buildCommands assembles the demo command library.
func (a *App) buildCommands() *trie.Registry {
	reg := trie.NewRegistry()

	normalAndVisual := []mode.MappingMode{mode.MapNormal, mode.MapVisual}
	motionModes := []mode.MappingMode{mode.MapNormal, mode.MapVisual, mode.MapOpPending}

	// Motions.
	motions := []struct {
		keys []key.Event
		id   string
		move func(ed editor.Editor, count int) int
	}{
		{[]key.Event{r('h')}, "motion.left", a.moveLeft},
		{[]key.Event{sp(key.KeyLeft)}, "motion.left", a.moveLeft},
		{[]key.Event{r('l')}, "motion.right", a.moveRight},
		{[]key.Event{sp(key.KeyRight)}, "motion.right", a.moveRight},
		{[]key.Event{r('w')}, "motion.wordForward", a.moveWordForward},
		{[]key.Event{r('b')}, "motion.wordBackward", a.moveWordBackward},
		{[]key.Event{r('0')}, "motion.lineStart", a.moveLineStart},
		{[]key.Event{r('$')}, "motion.lineEnd", a.moveLineEnd},
		{[]key.Event{sp(key.KeyEnd)}, "motion.lineEnd", a.moveLineEnd},
		{[]key.Event{r('g'), r('g')}, "motion.fileStart", a.moveFileStart},
		{[]key.Event{r('G')}, "motion.fileEnd", a.moveFileEnd},
	}
	for _, m := range motions {
		move := m.move
		reg.MustRegisterKeys(motionModes, seq(m.keys...), &action{
			id:  m.id,
			typ: command.TypeMotion,
			exec: func(ed editor.Editor, cmd *command.Command) bool {
				target := move(ed, cmd.Count())
				a.applyMove(ed, target)
				return true
			},
		})
	}

	// f{char} motion.
	reg.MustRegisterKeys(motionModes, seq(r('f')), &action{
		id:  "motion.findChar",
		typ: command.TypeMotion,
		arg: command.ArgCharacter,
		exec: func(ed editor.Editor, cmd *command.Command) bool {
			if cmd.Argument == nil {
				return false
			}
			target, ok := a.findChar(cmd.Argument.Char, cmd.Count())
			if !ok {
				return false
			}
			a.applyMove(ed, target)
			return true
		},
	})

	// The operator-self motion sits at the operator-pending root; the
	// engine redirects a doubled operator key ("dd") to it.
	reg.MustRegisterKeys([]mode.MappingMode{mode.MapOpPending}, seq(key.OperatorSelfEvent()), &action{
		id:   "motion.currentLine",
		typ:  command.TypeMotion,
		exec: func(ed editor.Editor, cmd *command.Command) bool { return true },
		span: a.lineSpan,
	})

	// Operators.
	operators := []struct {
		key   rune
		id    string
		typ   command.Type
		apply func(ed editor.Editor, start, end int) bool
	}{
		{'d', "operator.delete", command.TypeDelete, a.deleteRange},
		{'c', "operator.change", command.TypeChange, a.changeRange},
		{'y', "operator.yank", command.TypeCopy, a.yankRange},
	}
	for _, op := range operators {
		apply := op.apply
		reg.MustRegisterKeys([]mode.MappingMode{mode.MapNormal}, seq(r(op.key)), &action{
			id:    op.id,
			typ:   op.typ,
			arg:   command.ArgMotion,
			flags: command.FlagDuplicableOperator,
			exec: func(ed editor.Editor, cmd *command.Command) bool {
				start, end, ok := a.operatorRange(ed, cmd)
				if !ok {
					return false
				}
				return apply(ed, start, end)
			},
		})

		// Visual-mode form operates on the active selection.
		reg.MustRegisterKeys([]mode.MappingMode{mode.MapVisual}, seq(r(op.key)), &action{
			id:  op.id + "Selection",
			typ: op.typ,
			exec: func(ed editor.Editor, cmd *command.Command) bool {
				start, end, ok := a.selectionRange(ed)
				if !ok {
					return false
				}
				a.leaveVisual()
				return apply(ed, start, end)
			},
		})
	}

	reg.MustRegisterKeys([]mode.MappingMode{mode.MapNormal}, seq(r('x')), &action{
		id:  "operator.deleteChar",
		typ: command.TypeDelete,
		exec: func(ed editor.Editor, cmd *command.Command) bool {
			off := ed.PrimaryCaret().Offset()
			end := off + cmd.Count()
			if end > a.ed.Len() {
				end = a.ed.Len()
			}
			if off >= end {
				return false
			}
			return a.deleteRange(ed, off, end)
		},
	})

	reg.MustRegisterKeys([]mode.MappingMode{mode.MapNormal}, seq(r('p')), &action{
		id:  "paste.after",
		typ: command.TypePaste,
		exec: func(ed editor.Editor, cmd *command.Command) bool {
			text := a.registers[a.currentReg]
			if text == "" {
				return false
			}
			for i := 0; i < cmd.Count(); i++ {
				for _, ch := range text {
					a.ed.InsertRune(ch)
				}
			}
			return true
		},
	})

	reg.MustRegisterKeys([]mode.MappingMode{mode.MapNormal}, seq(r('r')), &action{
		id:  "change.replaceChar",
		typ: command.TypeOtherWritable,
		arg: command.ArgDigraph,
		exec: func(ed editor.Editor, cmd *command.Command) bool {
			if cmd.Argument == nil {
				return false
			}
			off := ed.PrimaryCaret().Offset()
			if off >= a.ed.Len() {
				return false
			}
			a.ed.DeleteRange(off, off+1)
			a.ed.InsertRune(cmd.Argument.Char)
			ed.PrimaryCaret().MoveTo(off)
			return true
		},
	})

	// Mode switches.
	reg.MustRegisterKeys([]mode.MappingMode{mode.MapNormal}, seq(r('i')), &action{
		id:  "mode.insertBefore",
		typ: command.TypeInsert,
		exec: func(ed editor.Editor, cmd *command.Command) bool {
			a.sess.SetMode(mode.Insert, mode.SubNone)
			return true
		},
	})
	reg.MustRegisterKeys([]mode.MappingMode{mode.MapNormal}, seq(r('a')), &action{
		id:  "mode.insertAfter",
		typ: command.TypeInsert,
		exec: func(ed editor.Editor, cmd *command.Command) bool {
			off := ed.PrimaryCaret().Offset()
			if off < a.ed.Len() {
				ed.PrimaryCaret().MoveTo(off + 1)
			}
			a.sess.SetMode(mode.Insert, mode.SubNone)
			return true
		},
	})
	reg.MustRegisterKeys([]mode.MappingMode{mode.MapInsert}, seq(sp(key.KeyEscape)), &action{
		id:  "mode.leaveInsert",
		typ: command.TypeReset,
		exec: func(ed editor.Editor, cmd *command.Command) bool {
			a.sess.SetMode(mode.Normal, mode.SubNone)
			off := ed.PrimaryCaret().Offset()
			if off > 0 {
				ed.PrimaryCaret().MoveTo(off - 1)
			}
			return true
		},
	})
	reg.MustRegisterKeys([]mode.MappingMode{mode.MapNormal}, seq(r('v')), &action{
		id:  "mode.enterVisual",
		typ: command.TypeOtherReadonly,
		exec: func(ed editor.Editor, cmd *command.Command) bool {
			a.sess.SetMode(mode.Visual, mode.SubVisualCharacter)
			off := ed.PrimaryCaret().Offset()
			a.ed.Caret().Select(off, off)
			return true
		},
	})
	reg.MustRegisterKeys([]mode.MappingMode{mode.MapVisual}, seq(sp(key.KeyEscape)), &action{
		id:  "mode.leaveVisual",
		typ: command.TypeReset,
		exec: func(ed editor.Editor, cmd *command.Command) bool {
			a.leaveVisual()
			return true
		},
	})

	// Insert-mode digraph and literal entry.
	reg.MustRegisterKeys([]mode.MappingMode{mode.MapInsert}, seq(ctrl('k')), &action{
		id:  "insert.digraph",
		typ: command.TypeOtherReadonly,
		exec: func(ed editor.Editor, cmd *command.Command) bool {
			a.engine.StartDigraphSequence(a.sess)
			return true
		},
	})
	reg.MustRegisterKeys([]mode.MappingMode{mode.MapInsert}, seq(ctrl('v')), &action{
		id:  "insert.literal",
		typ: command.TypeOtherReadonly,
		exec: func(ed editor.Editor, cmd *command.Command) bool {
			a.engine.StartLiteralSequence(a.sess)
			return true
		},
	})

	// Registers and macros.
	reg.MustRegisterKeys(normalAndVisual, seq(r('"')), &action{
		id:    "register.select",
		typ:   command.TypeSelectRegister,
		arg:   command.ArgCharacter,
		flags: command.FlagExpectMore,
		exec: func(ed editor.Editor, cmd *command.Command) bool {
			if cmd.Argument == nil {
				return false
			}
			a.currentReg = cmd.Argument.Char
			return true
		},
	})

	reg.MustRegisterKeys([]mode.MappingMode{mode.MapNormal}, seq(r('q')), &action{
		id:  engine.ToggleRecordingActionID,
		typ: command.TypeOtherReadonly,
		arg: command.ArgCharacter,
		exec: func(ed editor.Editor, cmd *command.Command) bool {
			rec := a.sess.Recorder()
			if rec.IsRecording() {
				rec.Stop()
				return true
			}
			if cmd.Argument == nil {
				return false
			}
			return rec.Start(cmd.Argument.Char) == nil
		},
	})

	reg.MustRegisterKeys([]mode.MappingMode{mode.MapNormal}, seq(r('@')), &action{
		id:    "macro.play",
		typ:   command.TypeOtherSelfSynchronized,
		arg:   command.ArgCharacter,
		flags: command.FlagTypeaheadSelfManage,
		exec: func(ed editor.Editor, cmd *command.Command) bool {
			if cmd.Argument == nil {
				return false
			}
			register := cmd.Argument.Char
			if register == '@' {
				register = a.sess.Recorder().LastPlayed()
				if register == 0 {
					return false
				}
			}
			events := a.sess.Recorder().Get(register)
			if len(events) == 0 {
				return false
			}
			a.sess.Recorder().SetLastPlayed(register)
			for i := 0; i < cmd.Count(); i++ {
				for _, ev := range events {
					a.engine.HandleKey(a.sess, ed, ev)
				}
			}
			return true
		},
	})

	reg.MustRegisterKeys([]mode.MappingMode{mode.MapNormal}, seq(r('.')), &action{
		id:    "change.repeat",
		typ:   command.TypeOtherSelfSynchronized,
		flags: command.FlagTypeaheadSelfManage,
		exec: func(ed editor.Editor, cmd *command.Command) bool {
			last := a.sess.LastCommand()
			if last == nil {
				return false
			}
			if cmd.RawCount != 0 {
				last.RawCount = cmd.RawCount
			}
			a.sess.SetDotRepeatInProgress(true)
			defer a.sess.SetDotRepeatInProgress(false)
			return last.Action.Execute(ed, last)
		},
	})

	reg.MustRegisterKeys([]mode.MappingMode{mode.MapNormal}, seq(r('Z'), r('Z')), &action{
		id:  "app.quit",
		typ: command.TypeOtherReadonly,
		exec: func(ed editor.Editor, cmd *command.Command) bool {
			a.Quit()
			return true
		},
	})

	// Search entry and confirmation.
	for _, lead := range []rune{'/', '?'} {
		reg.MustRegisterKeys(normalAndVisual, seq(r(lead)), &action{
			id:  "search.entry",
			typ: command.TypeMotion,
			arg: command.ArgExString,
			exec: func(ed editor.Editor, cmd *command.Command) bool {
				// Never dispatched: entering command-line mode pops the
				// command and the confirm action replaces it.
				return false
			},
		})
	}
	reg.MustRegisterKeys([]mode.MappingMode{mode.MapCmdLine}, seq(sp(key.KeyEnter)), &action{
		id:    "search.confirmEntry",
		typ:   command.TypeMotion,
		arg:   command.ArgExString,
		flags: command.FlagCompleteEx,
		exec: func(ed editor.Editor, cmd *command.Command) bool {
			// Never dispatched directly; see search.confirm.
			return false
		},
	})
	reg.MustRegisterKeys([]mode.MappingMode{mode.MapCmdLine}, seq(sp(key.KeyEscape)), &action{
		id:  "search.cancel",
		typ: command.TypeReset,
		exec: func(ed editor.Editor, cmd *command.Command) bool {
			a.exBuffer = ""
			a.sess.PopModes()
			return true
		},
	})

	return reg
}

// searchConfirmAction performs the search once the entered text arrives
// as the command argument.
func (a *App) searchConfirmAction(forward bool) command.Action {
	id := "search.confirmForward"
	if !forward {
		id = "search.confirmBackward"
	}
	return &action{
		id:  id,
		typ: command.TypeMotion,
		exec: func(ed editor.Editor, cmd *command.Command) bool {
			if cmd.Argument == nil || cmd.Argument.Text == "" {
				return false
			}
			target, ok := a.search(cmd.Argument.Text, forward)
			if !ok {
				return false
			}
			ed.PrimaryCaret().MoveTo(target)
			return true
		},
	}
}

// operatorRange resolves an operator's motion argument to a text range.
func (a *App) operatorRange(ed editor.Editor, cmd *command.Command) (int, int, bool) {
	arg := cmd.Argument
	if arg == nil {
		return 0, 0, false
	}
	if len(arg.Offsets) > 0 {
		sel := arg.Offsets[0]
		start, end := sel.Start, sel.End+1
		if start > end {
			start, end = sel.End, sel.Start+1
		}
		return start, end, true
	}
	if arg.Type != command.ArgMotion || arg.Motion == nil {
		return 0, 0, false
	}

	mot := arg.Motion
	if ma, ok := mot.Action.(*action); ok && ma.span != nil {
		return ma.span(ed, mot)
	}

	start := ed.PrimaryCaret().Offset()
	if !mot.Action.Execute(ed, mot) {
		return 0, 0, false
	}
	end := ed.PrimaryCaret().Offset()
	if start > end {
		start, end = end, start
	}
	return start, end, true
}

func (a *App) selectionRange(ed editor.Editor) (int, int, bool) {
	c := ed.PrimaryCaret()
	if !c.HasSelection() {
		return 0, 0, false
	}
	start, end := c.SelectionRange()
	return start, end + 1, true
}

func (a *App) leaveVisual() {
	a.ed.RemoveSelection()
	a.sess.SetMode(mode.Normal, mode.SubNone)
}

// applyMove moves the caret, extending the selection in visual mode.
func (a *App) applyMove(ed editor.Editor, target int) {
	c := ed.PrimaryCaret()
	if a.sess.Mode() == mode.Visual && c.HasSelection() {
		a.ed.Caret().Select(c.SelectionStart(), target)
	}
	c.MoveTo(target)
}

// lineSpan covers count whole lines starting at the caret's line,
// including trailing newlines.
func (a *App) lineSpan(ed editor.Editor, cmd *command.Command) (int, int, bool) {
	start, end := a.ed.LineBounds(ed.PrimaryCaret().Offset())
	for i := 1; i < cmd.Count(); i++ {
		if end >= a.ed.Len() {
			break
		}
		_, end = a.ed.LineBounds(end + 1)
	}
	if end < a.ed.Len() {
		end++ // trailing newline
	}
	return start, end, true
}

func (a *App) deleteRange(ed editor.Editor, start, end int) bool {
	a.registers[a.currentReg] = a.ed.DeleteRange(start, end)
	ed.PrimaryCaret().MoveTo(start)
	return true
}

func (a *App) changeRange(ed editor.Editor, start, end int) bool {
	if !a.deleteRange(ed, start, end) {
		return false
	}
	a.sess.SetMode(mode.Insert, mode.SubNone)
	return true
}

func (a *App) yankRange(ed editor.Editor, start, end int) bool {
	text := a.ed.Text()
	if start < 0 || end > len(text) || start > end {
		return false
	}
	a.registers[a.currentReg] = text[start:end]
	return true
}

func (a *App) moveLeft(ed editor.Editor, count int) int {
	off := ed.PrimaryCaret().Offset() - count
	if off < 0 {
		off = 0
	}
	return off
}

func (a *App) moveRight(ed editor.Editor, count int) int {
	off := ed.PrimaryCaret().Offset() + count
	if off > a.ed.Len() {
		off = a.ed.Len()
	}
	return off
}

func (a *App) moveLineStart(ed editor.Editor, count int) int {
	start, _ := a.ed.LineBounds(ed.PrimaryCaret().Offset())
	return start
}

func (a *App) moveLineEnd(ed editor.Editor, count int) int {
	_, end := a.ed.LineBounds(ed.PrimaryCaret().Offset())
	return end
}

func (a *App) moveFileStart(ed editor.Editor, count int) int { return 0 }

func (a *App) moveFileEnd(ed editor.Editor, count int) int { return a.ed.Len() }

func (a *App) moveWordForward(ed editor.Editor, count int) int {
	text := []rune(a.ed.Text())
	off := ed.PrimaryCaret().Offset()
	for i := 0; i < count; i++ {
		off = nextWordStart(text, off)
	}
	return off
}

func (a *App) moveWordBackward(ed editor.Editor, count int) int {
	text := []rune(a.ed.Text())
	off := ed.PrimaryCaret().Offset()
	for i := 0; i < count; i++ {
		off = prevWordStart(text, off)
	}
	return off
}

func (a *App) findChar(ch rune, count int) (int, bool) {
	text := []rune(a.ed.Text())
	off := a.ed.PrimaryCaret().Offset()
	for i := 0; i < count; i++ {
		found := -1
		for j := off + 1; j < len(text); j++ {
			if text[j] == ch {
				found = j
				break
			}
		}
		if found < 0 {
			return 0, false
		}
		off = found
	}
	return off, true
}

func (a *App) search(needle string, forward bool) (int, bool) {
	text := a.ed.Text()
	off := a.ed.PrimaryCaret().Offset()
	if forward {
		idx := strings.Index(text[min(off+1, len(text)):], needle)
		if idx >= 0 {
			return min(off+1, len(text)) + idx, true
		}
		// wrap around
		idx = strings.Index(text, needle)
		if idx >= 0 {
			return idx, true
		}
		return 0, false
	}
	limit := off
	if limit > len(text) {
		limit = len(text)
	}
	idx := strings.LastIndex(text[:limit], needle)
	if idx >= 0 {
		return idx, true
	}
	idx = strings.LastIndex(text, needle)
	if idx >= 0 {
		return idx, true
	}
	return 0, false
}

func nextWordStart(text []rune, off int) int {
	i := off
	for i < len(text) && isWordRune(text[i]) {
		i++
	}
	for i < len(text) && unicode.IsSpace(text[i]) {
		i++
	}
	return i
}

func prevWordStart(text []rune, off int) int {
	i := off
	for i > 0 && unicode.IsSpace(text[i-1]) {
		i--
	}
	for i > 0 && isWordRune(text[i-1]) {
		i--
	}
	return i
}

func isWordRune(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
