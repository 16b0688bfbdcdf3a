package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"a", NewRuneEvent('a', ModNone)},
		{"A", NewRuneEvent('A', ModNone)},
		{"@", NewRuneEvent('@', ModNone)},
		{"0", NewRuneEvent('0', ModNone)},
		{"space", NewRuneEvent(' ', ModNone)},
		{"Esc", NewSpecialEvent(KeyEscape, ModNone)},
		{"<Esc>", NewSpecialEvent(KeyEscape, ModNone)},
		{"<CR>", NewSpecialEvent(KeyEnter, ModNone)},
		{"<Tab>", NewSpecialEvent(KeyTab, ModNone)},
		{"<Del>", NewSpecialEvent(KeyDelete, ModNone)},
		{"<F5>", NewSpecialEvent(KeyF5, ModNone)},
		{"<Plug>", NewSpecialEvent(KeyPlug, ModNone)},
		{"<C-s>", NewRuneEvent('s', ModCtrl)},
		{"<C-S>", NewRuneEvent('s', ModCtrl)},
		{"<A-f>", NewRuneEvent('f', ModAlt)},
		{"<C-A-x>", NewRuneEvent('x', ModCtrl|ModAlt)},
		{"<C-Left>", NewSpecialEvent(KeyLeft, ModCtrl)},
		{"<C-Space>", NewRuneEvent(' ', ModCtrl)},
		{"<C-->", NewRuneEvent('-', ModCtrl)},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"<>", ErrInvalidSpec},
		{"<X-a>", ErrInvalidSpec},
		{"<C-nosuchkey>", ErrInvalidSpec},
		{"ab", ErrInvalidSpec},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := Parse(tt.spec)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
			}
		})
	}
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		spec string
		want []Event
	}{
		{"dw", []Event{NewRuneEvent('d', ModNone), NewRuneEvent('w', ModNone)}},
		{"jk", []Event{NewRuneEvent('j', ModNone), NewRuneEvent('k', ModNone)}},
		{"<C-w>s", []Event{NewRuneEvent('w', ModCtrl), NewRuneEvent('s', ModNone)}},
		{"<Esc><Esc>", []Event{NewSpecialEvent(KeyEscape, ModNone), NewSpecialEvent(KeyEscape, ModNone)}},
		{"<Plug>(hello)", append([]Event{NewSpecialEvent(KeyPlug, ModNone)},
			NewRuneEvent('(', ModNone), NewRuneEvent('h', ModNone), NewRuneEvent('e', ModNone),
			NewRuneEvent('l', ModNone), NewRuneEvent('l', ModNone), NewRuneEvent('o', ModNone),
			NewRuneEvent(')', ModNone)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseSequence(tt.spec)
			if err != nil {
				t.Fatalf("ParseSequence(%q) error: %v", tt.spec, err)
			}
			if got.Len() != len(tt.want) {
				t.Fatalf("ParseSequence(%q) length = %d, want %d", tt.spec, got.Len(), len(tt.want))
			}
			for i, ev := range got.Events {
				if ev != tt.want[i] {
					t.Errorf("ParseSequence(%q)[%d] = %v, want %v", tt.spec, i, ev, tt.want[i])
				}
			}
		})
	}
}

func TestParseSequenceUnclosedBracket(t *testing.T) {
	// An unclosed '<' is a literal character, matching Vim's lhs parsing.
	seq, err := ParseSequence("<C-w")
	if err != nil {
		t.Fatalf("ParseSequence error: %v", err)
	}
	want := []Event{
		NewRuneEvent('<', ModNone), NewRuneEvent('C', ModNone),
		NewRuneEvent('-', ModNone), NewRuneEvent('w', ModNone),
	}
	if seq.Len() != len(want) {
		t.Fatalf("length = %d, want %d", seq.Len(), len(want))
	}
	for i, ev := range seq.Events {
		if ev != want[i] {
			t.Errorf("event[%d] = %v, want %v", i, ev, want[i])
		}
	}
}
