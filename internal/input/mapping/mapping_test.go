package mapping

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/modalkey/internal/editor"
	"github.com/dshills/modalkey/internal/input/key"
	"github.com/dshills/modalkey/internal/input/mode"
)

func TestTablePutGetRemove(t *testing.T) {
	tbl := NewTable()
	info := &Info{
		FromKeys: key.MustParseSequence("jk"),
		ToKeys:   key.MustParseSequence("<Esc>"),
		Owner:    "test",
	}
	if err := tbl.Put(info); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	if got := tbl.Get(key.MustParseSequence("jk")); got != info {
		t.Errorf("Get returned %v, want the registered mapping", got)
	}
	if got := tbl.Get(key.MustParseSequence("j")); got != nil {
		t.Errorf("Get of partial source should be nil, got %v", got)
	}

	tbl.Remove(key.MustParseSequence("jk"))
	if got := tbl.Get(key.MustParseSequence("jk")); got != nil {
		t.Errorf("Get after Remove should be nil, got %v", got)
	}
}

func TestTablePutReplacesSameSource(t *testing.T) {
	tbl := NewTable()
	first := &Info{FromKeys: key.MustParseSequence("x"), ToKeys: key.MustParseSequence("a")}
	second := &Info{FromKeys: key.MustParseSequence("x"), ToKeys: key.MustParseSequence("b")}

	if err := tbl.Put(first); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := tbl.Put(second); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if tbl.Len() != 1 {
		t.Fatalf("Len = %d, want 1", tbl.Len())
	}
	if got := tbl.Get(key.MustParseSequence("x")); got != second {
		t.Error("Put should replace the mapping with the same source")
	}
}

func TestTablePutValidation(t *testing.T) {
	tbl := NewTable()
	if err := tbl.Put(&Info{ToKeys: key.MustParseSequence("a")}); !errors.Is(err, ErrEmptyFrom) {
		t.Errorf("expected ErrEmptyFrom, got %v", err)
	}
	err := tbl.Put(&Info{FromKeys: key.MustParseSequence("a")})
	if !errors.Is(err, ErrNoTarget) {
		t.Errorf("expected ErrNoTarget, got %v", err)
	}
}

func TestTableIsPrefix(t *testing.T) {
	tbl := NewTable()
	if err := tbl.Put(&Info{
		FromKeys: key.MustParseSequence("abc"),
		ToKeys:   key.MustParseSequence("x"),
	}); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	if !tbl.IsPrefix(key.MustParseSequence("a")) {
		t.Error("a should be a prefix of abc")
	}
	if !tbl.IsPrefix(key.MustParseSequence("ab")) {
		t.Error("ab should be a prefix of abc")
	}
	// Exact matches are not prefixes: the shortest match wins eagerly.
	if tbl.IsPrefix(key.MustParseSequence("abc")) {
		t.Error("an exact source is not a strict prefix")
	}
	if tbl.IsPrefix(key.MustParseSequence("b")) {
		t.Error("b is not a prefix of abc")
	}
}

func TestIsSelfPrefixed(t *testing.T) {
	selfPrefixed := &Info{
		FromKeys: key.MustParseSequence("x"),
		ToKeys:   key.MustParseSequence("xy"),
	}
	if !selfPrefixed.IsSelfPrefixed() {
		t.Error("map x xy should be self-prefixed")
	}

	plain := &Info{
		FromKeys: key.MustParseSequence("jk"),
		ToKeys:   key.MustParseSequence("<Esc>"),
	}
	if plain.IsSelfPrefixed() {
		t.Error("map jk <Esc> should not be self-prefixed")
	}
}

type recordedHandler struct {
	calls int
}

func (h *recordedHandler) Execute(_ editor.Editor) { h.calls++ }
func (h *recordedHandler) IsRepeatable() bool      { return false }

func TestSetMapHelpers(t *testing.T) {
	s := NewSet()
	modes := []mode.MappingMode{mode.MapNormal, mode.MapVisual}

	if err := s.Map(modes, key.MustParseSequence("jk"), key.MustParseSequence("<Esc>"), false, "user"); err != nil {
		t.Fatalf("Map error: %v", err)
	}
	if err := s.MapHandler(modes, key.MustParseSequence("gs"), &recordedHandler{}, "plugin"); err != nil {
		t.Fatalf("MapHandler error: %v", err)
	}

	for _, mm := range modes {
		if s.Table(mm).Get(key.MustParseSequence("jk")) == nil {
			t.Errorf("jk missing in %v", mm)
		}
		if s.Table(mm).Get(key.MustParseSequence("gs")) == nil {
			t.Errorf("gs missing in %v", mm)
		}
	}
	if s.Table(mode.MapInsert).Get(key.MustParseSequence("jk")) != nil {
		t.Error("jk should not be registered for insert mode")
	}
}

// manualTimer is a TimerFactory that fires only on demand.
type manualTimer struct {
	fn      func()
	stopped bool
}

func (m *manualTimer) Stop() bool {
	was := !m.stopped
	m.stopped = true
	return was
}

func (m *manualTimer) fire() {
	if !m.stopped {
		m.fn()
	}
}

func TestStateTimer(t *testing.T) {
	var timer *manualTimer
	factory := func(_ time.Duration, fn func()) Timer {
		timer = &manualTimer{fn: fn}
		return timer
	}

	st := NewState()
	fired := 0
	st.StartTimer(factory, time.Second, func() { fired++ })
	if timer == nil {
		t.Fatal("factory not invoked")
	}

	// Starting a new timer stops the pending one.
	first := timer
	st.StartTimer(factory, time.Second, func() { fired++ })
	if !first.stopped {
		t.Error("previous timer should be stopped")
	}

	timer.fire()
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}

	st.StopTimer()
	if !timer.stopped {
		t.Error("StopTimer should stop the active timer")
	}
}

func TestStateDetachExactlyOnce(t *testing.T) {
	st := NewState()
	st.AddKey(key.NewRuneEvent('j', key.ModNone))
	st.AddKey(key.NewRuneEvent('k', key.ModNone))

	events := st.Detach()
	if len(events) != 2 {
		t.Fatalf("detached %d events, want 2", len(events))
	}
	if again := st.Detach(); len(again) != 0 {
		t.Errorf("second Detach returned %d events, want 0", len(again))
	}
}
