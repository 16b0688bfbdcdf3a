package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/modalkey/internal/config"
	"github.com/dshills/modalkey/internal/editor"
	"github.com/dshills/modalkey/internal/editor/memory"
	"github.com/dshills/modalkey/internal/input/command"
	"github.com/dshills/modalkey/internal/input/engine"
	"github.com/dshills/modalkey/internal/input/key"
	"github.com/dshills/modalkey/internal/input/mapping"
	"github.com/dshills/modalkey/internal/input/mode"
	luaplugin "github.com/dshills/modalkey/internal/plugin/lua"
)

const defaultRegister = '"'

// Options configure the demo application.
type Options struct {
	ScriptPath string
	Timeoutlen time.Duration
	NoTimeout  bool
	ReadOnly   bool
	Text       string
}

// invokeEvent carries a deferred engine callback through tcell's event
// queue so all engine access stays on the event loop goroutine.
type invokeEvent struct {
	tcell.EventTime
	fn func()
}

// App owns the terminal, the editing surface, and the dispatch engine,
// and implements the engine's collaborator interfaces.
type App struct {
	screen tcell.Screen
	ed     *memory.Editor
	sess   *engine.Session
	engine *engine.Handler

	mappings *mapping.Set
	luaState *luaplugin.State
	bridge   *luaplugin.Bridge

	registers  map[rune]string
	currentReg rune

	// Command-line entry state.
	exActive  bool
	exLeading rune
	exBuffer  string

	errFlash bool
	quit     bool
}

// NewApp builds the application: editor surface, command library,
// mappings, engine, and optional Lua configuration script.
func NewApp(opts Options) (*App, error) {
	a := &App{
		ed:         memory.New(opts.Text),
		sess:       engine.NewSession(),
		mappings:   mapping.NewSet(),
		registers:  make(map[rune]string),
		currentReg: defaultRegister,
	}
	a.ed.SetWritable(!opts.ReadOnly)

	cfg := config.Static{Timeoutlen: opts.Timeoutlen, NoTimeout: opts.NoTimeout}
	if cfg.Timeoutlen == 0 {
		cfg.Timeoutlen = config.DefaultOptions().Timeoutlen
	}

	a.engine = engine.New(engine.Deps{
		Commands:  a.buildCommands(),
		Mappings:  a.mappings,
		Options:   cfg,
		Change:    (*appChange)(a),
		Ex:        (*appExEntry)(a),
		Registers: (*appRegisters)(a),
		Host:      (*appHost)(a),
	})

	a.luaState = luaplugin.NewState()
	a.bridge = luaplugin.NewBridge(a.luaState, a.mappings)
	a.bridge.Install()
	if opts.ScriptPath != "" {
		if err := a.luaState.DoFile(opts.ScriptPath); err != nil {
			a.luaState.Close()
			return nil, fmt.Errorf("script %s: %w", opts.ScriptPath, err)
		}
	}

	return a, nil
}

// Run enters the terminal event loop until quit.
func (a *App) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	a.screen = screen
	defer screen.Fini()
	defer a.luaState.Close()

	for !a.quit {
		a.render()
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				return nil
			}
			kev, ok := translateKey(ev)
			if !ok {
				continue
			}
			a.errFlash = false
			a.engine.BeforeHandleKey(a.sess, a.ed, kev)
			a.engine.HandleKey(a.sess, a.ed, kev)
		case *invokeEvent:
			ev.fn()
		case *tcell.EventResize:
			screen.Sync()
		}
	}
	return nil
}

// Quit requests loop exit.
func (a *App) Quit() { a.quit = true }

func (a *App) render() {
	s := a.screen
	s.Clear()
	w, h := s.Size()

	style := tcell.StyleDefault
	row, col := 0, 0
	caretOff := a.ed.PrimaryCaret().Offset()
	var caretRow, caretCol int
	for i, ch := range a.ed.Text() {
		if i == caretOff {
			caretRow, caretCol = row, col
		}
		if ch == '\n' {
			row++
			col = 0
			continue
		}
		if row < h-1 && col < w {
			s.SetContent(col, row, ch, nil, style)
		}
		col++
	}
	if caretOff == len(a.ed.Text()) {
		caretRow, caretCol = row, col
	}

	status := a.statusLine()
	for i, ch := range status {
		if i >= w {
			break
		}
		s.SetContent(i, h-1, ch, nil, style.Reverse(true))
	}

	if a.exActive {
		s.ShowCursor(len(a.exBuffer)+1, h-1)
	} else {
		s.ShowCursor(caretCol, caretRow)
	}
	s.Show()
}

func (a *App) statusLine() string {
	if a.exActive {
		return string(a.exLeading) + a.exBuffer
	}
	status := "-- " + a.sess.Mode().String() + " --"
	if a.sess.IsRecording() {
		status += " recording"
	}
	if a.errFlash {
		status += "  [error]"
	}
	if !a.sess.Keys().IsEmpty() {
		status += "  " + a.sess.Keys().VimString()
	}
	return status
}

// appChange implements engine.Change over the in-memory surface.
type appChange App

func (c *appChange) BeforeProcessKey(ed editor.Editor, ev key.Event) {}

func (c *appChange) ProcessKey(ed editor.Editor, ev key.Event) bool {
	switch {
	case ev.IsChar():
		c.ed.InsertRune(ev.Rune)
		return true
	case ev.Key == key.KeyEnter:
		c.ed.InsertRune('\n')
		return true
	case ev.Key == key.KeyTab:
		c.ed.InsertRune('\t')
		return true
	case ev.Key == key.KeyBackspace:
		off := c.ed.PrimaryCaret().Offset()
		if off > 0 {
			c.ed.DeleteRange(off-1, off)
			c.ed.PrimaryCaret().MoveTo(off - 1)
		}
		return true
	}
	return false
}

func (c *appChange) ProcessKeyInSelectMode(ed editor.Editor, ev key.Event) bool {
	// Typing over a selection replaces it.
	caret := c.ed.Caret()
	if caret.HasSelection() && ev.IsChar() {
		start, end := caret.SelectionRange()
		c.ed.DeleteRange(start, end+1)
		caret.ClearSelection()
		caret.MoveTo(start)
		c.ed.InsertRune(ev.Rune)
		c.sess.SetMode(mode.Insert, mode.SubNone)
		return true
	}
	return false
}

func (c *appChange) ProcessCommand(ed editor.Editor, cmd *command.Command) {}

func (c *appChange) ResetCaret(ed editor.Editor) {}

// appExEntry implements engine.ExEntry with a single-line buffer.
type appExEntry App

func (e *appExEntry) Start(ed editor.Editor, count int, leading rune) {
	// The confirm action restarts entry while it is still showing; the
	// typed text must survive until End reads it.
	if e.exActive {
		return
	}
	e.exActive = true
	e.exLeading = leading
	e.exBuffer = ""
}

func (e *appExEntry) ProcessKey(ed editor.Editor, ev key.Event) bool {
	if !e.exActive {
		return false
	}
	switch {
	case ev.IsChar():
		e.exBuffer += string(ev.Rune)
		return true
	case ev.Key == key.KeyBackspace:
		if e.exBuffer != "" {
			e.exBuffer = e.exBuffer[:len(e.exBuffer)-1]
			return true
		}
		e.exActive = false
		e.sess.PopModes()
		return true
	}
	return false
}

func (e *appExEntry) End(ed editor.Editor) string {
	e.exActive = false
	return e.exBuffer
}

func (e *appExEntry) IsForwardSearch() bool { return e.exLeading != '?' }

func (e *appExEntry) ConfirmAction() command.Action {
	return (*App)(e).searchConfirmAction(e.IsForwardSearch())
}

// appRegisters implements engine.Registers.
type appRegisters App

func (r *appRegisters) Current() rune { return r.currentReg }
func (r *appRegisters) Default() rune { return defaultRegister }
func (r *appRegisters) Reset()        { r.currentReg = defaultRegister }

// appHost implements engine.Host for the terminal.
type appHost App

func (h *appHost) IndicateError() {
	h.errFlash = true
	if h.screen != nil {
		h.screen.Beep()
	}
}

func (h *appHost) ClearError() { h.errFlash = false }

func (h *appHost) ExecuteNativeEscape(ed editor.Editor) { ed.RemoveSelection() }

func (h *appHost) FlushTypeahead() {}

func (h *appHost) Invoke(fn func()) {
	if h.screen == nil {
		fn()
		return
	}
	ev := &invokeEvent{fn: fn}
	ev.SetEventNow()
	_ = h.screen.PostEvent(ev)
}

// The in-memory surface has no transaction machinery; the three grouping
// flavors all run the command directly.
func (h *appHost) RunWrite(ed editor.Editor, name string, fn func()) { fn() }
func (h *appHost) RunRead(ed editor.Editor, name string, fn func()) { fn() }
func (h *appHost) RunNeutral(ed editor.Editor, name string, fn func()) { fn() }
