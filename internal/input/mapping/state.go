package mapping

import (
	"time"

	"github.com/dshills/modalkey/internal/input/key"
)

// Timer is a cancellable scheduled callback. Stop reports whether the
// timer was stopped before firing.
type Timer interface {
	Stop() bool
}

// TimerFactory schedules a callback after a delay. The engine installs a
// real clock by default; tests install a manual factory so timeouts fire
// only on demand.
type TimerFactory func(d time.Duration, fn func()) Timer

// realTimer wraps time.Timer.
type realTimer struct {
	t *time.Timer
}

func (r *realTimer) Stop() bool {
	return r.t.Stop()
}

// AfterFunc is the default TimerFactory backed by time.AfterFunc.
func AfterFunc(d time.Duration, fn func()) Timer {
	return &realTimer{t: time.AfterFunc(d, fn)}
}

// State is the per-session mapping-resolution record: the keys buffered
// since the last dispatch or mapping resolution, plus the armed timeout
// timer. Sessions are single-owner, so State is unsynchronized.
type State struct {
	keys  *key.Sequence
	timer Timer
}

// NewState creates an empty mapping state.
func NewState() *State {
	return &State{keys: key.NewSequence()}
}

// Keys returns the buffered key sequence. Callers must not retain the
// returned pointer across a Detach or Reset.
func (s *State) Keys() *key.Sequence {
	return s.keys
}

// AddKey buffers one key.
func (s *State) AddKey(ev key.Event) {
	s.keys.Add(ev)
}

// Detach empties the buffer and returns the keys it held, exactly once:
// replay paths must never lose or duplicate keys.
func (s *State) Detach() []key.Event {
	return s.keys.Detach()
}

// Clear empties the buffer without returning the keys.
func (s *State) Clear() {
	s.keys.Clear()
}

// StartTimer arms the disambiguation timer, replacing any armed timer.
func (s *State) StartTimer(factory TimerFactory, d time.Duration, fn func()) {
	s.StopTimer()
	s.timer = factory(d, fn)
}

// StopTimer disarms the timer if armed. Every key-handling pass disarms
// before resolving, so a key typed just before the timer fires wins.
func (s *State) StopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Reset clears the buffer and disarms the timer.
func (s *State) Reset() {
	s.Clear()
	s.StopTimer()
}
