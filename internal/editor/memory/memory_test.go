package memory

import "testing"

func TestInsertRune(t *testing.T) {
	ed := New("ac")
	ed.Caret().MoveTo(1)
	ed.InsertRune('b')

	if got := ed.Text(); got != "abc" {
		t.Errorf("Text = %q, want abc", got)
	}
	if off := ed.Caret().Offset(); off != 2 {
		t.Errorf("caret offset = %d, want 2", off)
	}
}

func TestDeleteRange(t *testing.T) {
	ed := New("hello world")
	deleted := ed.DeleteRange(5, 11)
	if deleted != " world" {
		t.Errorf("deleted %q, want \" world\"", deleted)
	}
	if got := ed.Text(); got != "hello" {
		t.Errorf("Text = %q, want hello", got)
	}
}

func TestDeleteRangeClamps(t *testing.T) {
	ed := New("abc")
	deleted := ed.DeleteRange(1, 99)
	if deleted != "bc" {
		t.Errorf("deleted %q, want bc", deleted)
	}
}

func TestLineBounds(t *testing.T) {
	ed := New("one\ntwo\nthree")
	tests := []struct {
		offset    int
		wantStart int
		wantEnd   int
	}{
		{0, 0, 3},
		{2, 0, 3},
		{4, 4, 7},
		{8, 8, 13},
		{13, 8, 13},
	}
	for _, tt := range tests {
		start, end := ed.LineBounds(tt.offset)
		if start != tt.wantStart || end != tt.wantEnd {
			t.Errorf("LineBounds(%d) = (%d, %d), want (%d, %d)",
				tt.offset, start, end, tt.wantStart, tt.wantEnd)
		}
	}
}

func TestSelection(t *testing.T) {
	ed := New("abcdef")
	c := ed.Caret()

	c.Select(1, 3)
	if !c.HasSelection() {
		t.Fatal("expected active selection")
	}
	start, end := c.SelectionRange()
	if start != 1 || end != 3 {
		t.Errorf("SelectionRange = (%d, %d), want (1, 3)", start, end)
	}
	if c.SelectionStart() != 1 {
		t.Errorf("SelectionStart = %d, want anchor 1", c.SelectionStart())
	}

	// Reversed selection normalizes its bounds but keeps the anchor.
	c.Select(4, 2)
	start, end = c.SelectionRange()
	if start != 2 || end != 4 {
		t.Errorf("SelectionRange = (%d, %d), want (2, 4)", start, end)
	}
	if c.SelectionStart() != 4 {
		t.Errorf("SelectionStart = %d, want anchor 4", c.SelectionStart())
	}

	ed.RemoveSelection()
	if c.HasSelection() {
		t.Error("selection should be cleared")
	}
}

func TestMoveClamps(t *testing.T) {
	ed := New("ab")
	c := ed.Caret()
	c.MoveTo(-5)
	if c.Offset() != 0 {
		t.Errorf("offset = %d, want 0", c.Offset())
	}
	c.MoveTo(99)
	if c.Offset() != 2 {
		t.Errorf("offset = %d, want 2", c.Offset())
	}
}

func TestWritable(t *testing.T) {
	ed := New("x")
	if !ed.Writable() {
		t.Error("new editor should be writable")
	}
	ed.SetWritable(false)
	if ed.Writable() {
		t.Error("expected read-only after SetWritable(false)")
	}
}
