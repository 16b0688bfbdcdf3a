package key

import "testing"

func TestCharArgument(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want rune
		ok   bool
	}{
		{"plain rune", NewRuneEvent('x', ModNone), 'x', true},
		{"tab", NewSpecialEvent(KeyTab, ModNone), '\t', true},
		{"enter", NewSpecialEvent(KeyEnter, ModNone), '\n', true},
		{"ctrl rune", NewRuneEvent('x', ModCtrl), 0, false},
		{"escape", NewSpecialEvent(KeyEscape, ModNone), 0, false},
		{"arrow", NewSpecialEvent(KeyLeft, ModNone), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ev.CharArgument()
			if ok != tt.ok || got != tt.want {
				t.Errorf("CharArgument() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestIsCloseKey(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want bool
	}{
		{"escape", NewSpecialEvent(KeyEscape, ModNone), true},
		{"ctrl-bracket", NewRuneEvent('[', ModCtrl), true},
		{"ctrl-c", NewRuneEvent('c', ModCtrl), true},
		{"plain c", NewRuneEvent('c', ModNone), false},
		{"enter", NewSpecialEvent(KeyEnter, ModNone), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ev.IsCloseKey(); got != tt.want {
				t.Errorf("IsCloseKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSyntheticEvents(t *testing.T) {
	if !PlugEvent().Key.IsSynthetic() {
		t.Error("PlugEvent should be synthetic")
	}
	if !OperatorSelfEvent().Key.IsSynthetic() {
		t.Error("OperatorSelfEvent should be synthetic")
	}
	if PlugEvent().IsChar() {
		t.Error("PlugEvent should not be a character")
	}
}

func TestSequencePrefix(t *testing.T) {
	ab := NewSequenceFrom(NewRuneEvent('a', ModNone), NewRuneEvent('b', ModNone))
	abc := NewSequenceFrom(NewRuneEvent('a', ModNone), NewRuneEvent('b', ModNone), NewRuneEvent('c', ModNone))
	ax := NewSequenceFrom(NewRuneEvent('a', ModNone), NewRuneEvent('x', ModNone))

	if !ab.IsPrefixOf(abc) {
		t.Error("ab should be a prefix of abc")
	}
	if abc.IsPrefixOf(ab) {
		t.Error("abc should not be a prefix of ab")
	}
	if ab.IsPrefixOf(ax) {
		t.Error("ab should not be a prefix of ax")
	}
	if !ab.IsPrefixOf(ab.Clone()) {
		t.Error("a sequence should be a prefix of itself")
	}
}

func TestSequenceDetach(t *testing.T) {
	s := MustParseSequence("abc")
	events := s.Detach()
	if len(events) != 3 {
		t.Fatalf("detached %d events, want 3", len(events))
	}
	if !s.IsEmpty() {
		t.Error("sequence should be empty after Detach")
	}
}

func TestSequenceDropLast(t *testing.T) {
	s := MustParseSequence("ab")
	s.DropLast()
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
	if first, _ := s.First(); first != NewRuneEvent('a', ModNone) {
		t.Errorf("remaining event = %v, want a", first)
	}
	s.DropLast()
	s.DropLast() // on empty: no-op
	if !s.IsEmpty() {
		t.Error("sequence should be empty")
	}
}
