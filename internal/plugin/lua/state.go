package lua

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// ErrStateClosed is returned when operating on a closed state.
var ErrStateClosed = errors.New("lua: state is closed")

// State wraps a gopher-lua interpreter restricted to safe libraries.
// All operations lock the state; Lua execution itself is single-threaded.
type State struct {
	mu     sync.Mutex
	l      *lua.LState
	closed bool
}

// NewState creates a Lua state with only the base, table, string and
// math libraries opened. io, os, debug and package stay closed.
func NewState() *State {
	l := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(l)
	lua.OpenTable(l)
	lua.OpenString(l)
	lua.OpenMath(l)
	return &State{l: l}
}

// DoFile executes a Lua script file synchronously.
func (s *State) DoFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	return s.recovered(func() error { return s.l.DoFile(path) })
}

// DoString executes Lua source synchronously.
func (s *State) DoString(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	return s.recovered(func() error { return s.l.DoString(code) })
}

// CallFunction invokes a Lua function value with the given arguments,
// discarding return values.
func (s *State) CallFunction(fn *lua.LFunction, args ...lua.LValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	return s.recovered(func() error {
		s.l.Push(fn)
		for _, arg := range args {
			s.l.Push(arg)
		}
		return s.l.PCall(len(args), 0, nil)
	})
}

// RegisterModule installs a table of Go functions as a global module.
func (s *State) RegisterModule(name string, funcs map[string]lua.LGFunction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	mod := s.l.SetFuncs(s.l.NewTable(), funcs)
	s.l.SetGlobal(name, mod)
}

// LuaState returns the underlying interpreter. The caller takes over
// locking responsibility.
func (s *State) LuaState() *lua.LState {
	return s.l
}

// Close releases the interpreter. Subsequent calls return ErrStateClosed.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.l.Close()
	s.closed = true
}

func (s *State) recovered(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}
