package lua

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/modalkey/internal/editor"
	"github.com/dshills/modalkey/internal/input/key"
	"github.com/dshills/modalkey/internal/input/mapping"
	"github.com/dshills/modalkey/internal/input/mode"
)

// ErrBadModeLetter is returned for an unrecognized mode letter.
var ErrBadModeLetter = errors.New("lua: unknown mapping mode letter")

// Owner labels mappings registered through the Lua bridge.
const Owner = "lua"

// Bridge exposes mapping registration to Lua scripts. Install publishes
// a "modalkey" module with:
//
//	modalkey.map(modes, from, to)     -- recursive key substitution
//	modalkey.noremap(modes, from, to) -- non-recursive key substitution
//	modalkey.mapfn(modes, from, fn)   -- Lua function handler
//	modalkey.mapfn(modes, from, fn, { repeatable = true })
//
// modes is a string of letters: n, x (visual), s (select), o
// (operator-pending), i, c, and v for visual+select together. Key specs
// use angle-bracket notation, e.g. "<C-w>s" or "jk".
type Bridge struct {
	state    *State
	mappings *mapping.Set

	// lastErr holds the most recent handler execution error; handler
	// dispatch itself has no error channel.
	lastErr error
}

// NewBridge creates a bridge that registers into the given mapping set.
func NewBridge(state *State, mappings *mapping.Set) *Bridge {
	return &Bridge{state: state, mappings: mappings}
}

// Install publishes the modalkey module into the Lua state.
func (b *Bridge) Install() {
	b.state.RegisterModule("modalkey", map[string]lua.LGFunction{
		"map":     b.luaMap(true),
		"noremap": b.luaMap(false),
		"mapfn":   b.luaMapFn,
	})
}

// Err returns the most recent handler execution error, if any.
func (b *Bridge) Err() error {
	return b.lastErr
}

func (b *Bridge) luaMap(recursive bool) lua.LGFunction {
	return func(l *lua.LState) int {
		modes, err := parseModeLetters(l.CheckString(1))
		if err != nil {
			l.RaiseError("%v", err)
			return 0
		}
		from, err := key.ParseSequence(l.CheckString(2))
		if err != nil {
			l.RaiseError("%v", err)
			return 0
		}
		to, err := key.ParseSequence(l.CheckString(3))
		if err != nil {
			l.RaiseError("%v", err)
			return 0
		}
		if err := b.mappings.Map(modes, from, to, recursive, Owner); err != nil {
			l.RaiseError("%v", err)
		}
		return 0
	}
}

func (b *Bridge) luaMapFn(l *lua.LState) int {
	modes, err := parseModeLetters(l.CheckString(1))
	if err != nil {
		l.RaiseError("%v", err)
		return 0
	}
	from, err := key.ParseSequence(l.CheckString(2))
	if err != nil {
		l.RaiseError("%v", err)
		return 0
	}
	fn := l.CheckFunction(3)

	repeatable := false
	if l.GetTop() >= 4 {
		opts := l.CheckTable(4)
		repeatable = lua.LVAsBool(l.GetField(opts, "repeatable"))
	}

	h := &handler{bridge: b, fn: fn, repeatable: repeatable}
	if err := b.mappings.MapHandler(modes, from, h, Owner); err != nil {
		l.RaiseError("%v", err)
	}
	return 0
}

// handler adapts a Lua function to the engine's extension interface.
type handler struct {
	bridge     *Bridge
	fn         *lua.LFunction
	repeatable bool
}

// Execute calls the Lua function with an editor table whose methods
// close over the editing surface for this invocation.
func (h *handler) Execute(ed editor.Editor) {
	l := h.bridge.state.LuaState()
	edTable := l.NewTable()
	l.SetFuncs(edTable, map[string]lua.LGFunction{
		"offset": func(l *lua.LState) int {
			l.Push(lua.LNumber(ed.PrimaryCaret().Offset()))
			return 1
		},
		"move_to": func(l *lua.LState) int {
			ed.PrimaryCaret().MoveTo(int(l.CheckNumber(1)))
			return 0
		},
		"writable": func(l *lua.LState) int {
			l.Push(lua.LBool(ed.Writable()))
			return 1
		},
	})

	if err := h.bridge.state.CallFunction(h.fn, edTable); err != nil {
		h.bridge.lastErr = fmt.Errorf("lua handler: %w", err)
	}
}

func (h *handler) IsRepeatable() bool {
	return h.repeatable
}

func parseModeLetters(s string) ([]mode.MappingMode, error) {
	if s == "" {
		return nil, ErrBadModeLetter
	}
	seen := make(map[mode.MappingMode]bool)
	var modes []mode.MappingMode
	add := func(mm mode.MappingMode) {
		if !seen[mm] {
			seen[mm] = true
			modes = append(modes, mm)
		}
	}
	for _, r := range s {
		switch r {
		case 'n':
			add(mode.MapNormal)
		case 'x':
			add(mode.MapVisual)
		case 's':
			add(mode.MapSelect)
		case 'v':
			add(mode.MapVisual)
			add(mode.MapSelect)
		case 'o':
			add(mode.MapOpPending)
		case 'i':
			add(mode.MapInsert)
		case 'c':
			add(mode.MapCmdLine)
		default:
			return nil, fmt.Errorf("%w: %q", ErrBadModeLetter, r)
		}
	}
	return modes, nil
}
