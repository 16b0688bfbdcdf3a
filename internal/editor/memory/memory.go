// Package memory provides a minimal in-memory editing surface used by the
// demo binary and by tests. It models a single buffer of runes with one
// caret; hosts embedding the engine supply their own surface.
package memory

import (
	"strings"
	"sync"

	"github.com/dshills/modalkey/internal/editor"
)

// Caret is the in-memory caret.
type Caret struct {
	ed *Editor

	offset    int
	selStart  int
	selEnd    int
	selAnchor int
	hasSel    bool
}

// Offset returns the caret's buffer offset.
func (c *Caret) Offset() int { return c.offset }

// MoveTo moves the caret, clamped to the buffer bounds.
func (c *Caret) MoveTo(offset int) {
	if offset < 0 {
		offset = 0
	}
	if max := len(c.ed.text); offset > max {
		offset = max
	}
	c.offset = offset
}

// HasSelection reports whether a selection is active.
func (c *Caret) HasSelection() bool { return c.hasSel }

// SelectionRange returns the active selection bounds.
func (c *Caret) SelectionRange() (start, end int) { return c.selStart, c.selEnd }

// SelectionStart returns the anchor the selection was started from.
func (c *Caret) SelectionStart() int { return c.selAnchor }

// Select sets a selection from anchor to end and moves the caret to end.
func (c *Caret) Select(anchor, end int) {
	c.selAnchor = anchor
	if anchor <= end {
		c.selStart, c.selEnd = anchor, end
	} else {
		c.selStart, c.selEnd = end, anchor
	}
	c.hasSel = true
	c.MoveTo(end)
}

// ClearSelection drops the active selection.
func (c *Caret) ClearSelection() { c.hasSel = false }

// Editor is the in-memory surface.
type Editor struct {
	mu       sync.Mutex
	text     []rune
	caret    *Caret
	writable bool
}

// New creates an editor over the given text with the caret at offset 0.
func New(text string) *Editor {
	ed := &Editor{text: []rune(text), writable: true}
	ed.caret = &Caret{ed: ed}
	return ed
}

// SetWritable toggles the writable flag.
func (e *Editor) SetWritable(w bool) { e.writable = w }

// Writable implements editor.Editor.
func (e *Editor) Writable() bool { return e.writable }

// Carets implements editor.Editor.
func (e *Editor) Carets() []editor.Caret { return []editor.Caret{e.caret} }

// PrimaryCaret implements editor.Editor.
func (e *Editor) PrimaryCaret() editor.Caret { return e.caret }

// Caret returns the concrete caret for selection control.
func (e *Editor) Caret() *Caret { return e.caret }

// RemoveSelection implements editor.Editor.
func (e *Editor) RemoveSelection() { e.caret.ClearSelection() }

// Text returns the buffer contents.
func (e *Editor) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return string(e.text)
}

// Len returns the buffer length in runes.
func (e *Editor) Len() int { return len(e.text) }

// InsertRune inserts r at the caret and advances it.
func (e *Editor) InsertRune(r rune) {
	e.mu.Lock()
	defer e.mu.Unlock()

	at := e.caret.offset
	e.text = append(e.text[:at], append([]rune{r}, e.text[at:]...)...)
	e.caret.offset = at + 1
}

// DeleteRange removes [start, end) and moves the caret to start.
func (e *Editor) DeleteRange(start, end int) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if start < 0 {
		start = 0
	}
	if end > len(e.text) {
		end = len(e.text)
	}
	if start >= end {
		return ""
	}
	removed := string(e.text[start:end])
	e.text = append(e.text[:start], e.text[end:]...)
	e.caret.MoveTo(start)
	return removed
}

// LineBounds returns the [start, end) offsets of the line containing
// offset, excluding the trailing newline.
func (e *Editor) LineBounds(offset int) (start, end int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if offset > len(e.text) {
		offset = len(e.text)
	}
	start = offset
	for start > 0 && e.text[start-1] != '\n' {
		start--
	}
	end = offset
	for end < len(e.text) && e.text[end] != '\n' {
		end++
	}
	return start, end
}

// Lines returns the buffer split into lines.
func (e *Editor) Lines() []string {
	return strings.Split(e.Text(), "\n")
}
