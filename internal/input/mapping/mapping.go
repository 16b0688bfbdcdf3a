// Package mapping stores user-defined key mappings per mapping mode and
// tracks the per-session buffer of keys typed while a mapping is being
// resolved, including the disambiguation timeout timer.
package mapping

import (
	"errors"
	"sync"

	"github.com/dshills/modalkey/internal/editor"
	"github.com/dshills/modalkey/internal/input/key"
	"github.com/dshills/modalkey/internal/input/mode"
)

// Registration errors.
var (
	ErrEmptyFrom = errors.New("mapping: empty source sequence")
	ErrNoTarget  = errors.New("mapping: mapping needs target keys or a handler")
)

// Handler is a handler-style extension bound to a mapping: instead of
// expanding to keys, the mapping runs code.
type Handler interface {
	// Execute runs the extension against the editing surface.
	Execute(ed editor.Editor)

	// IsRepeatable reports whether the extension participates in
	// dot-repeat.
	IsRepeatable() bool
}

// Info is one registered mapping.
type Info struct {
	// FromKeys is the typed source sequence.
	FromKeys *key.Sequence

	// ToKeys is the replacement sequence for key-substitution mappings;
	// nil for handler mappings.
	ToKeys *key.Sequence

	// Handler is the extension for handler mappings; nil for
	// key-substitution mappings.
	Handler Handler

	// Recursive marks the replayed target keys as themselves mappable.
	Recursive bool

	// Owner labels who registered the mapping (user config, plugin name).
	Owner string
}

// IsSelfPrefixed reports whether the source sequence is a prefix of the
// target sequence. The first replayed key of such a mapping must not be
// remapped or the mapping would expand forever (e.g. map x to xy).
func (i *Info) IsSelfPrefixed() bool {
	return i.ToKeys != nil && i.FromKeys.IsPrefixOf(i.ToKeys)
}

// Table holds the mappings for one mapping mode. Lookup is eager: the
// shortest registered source wins as soon as no longer source could
// extend, which is why the engine rechecks "sequence minus last key" when
// a sequence is abandoned.
type Table struct {
	mu       sync.RWMutex
	mappings []*Info
}

// NewTable creates an empty mapping table.
func NewTable() *Table {
	return &Table{}
}

// Put registers a mapping, replacing any mapping with the same source.
func (t *Table) Put(info *Info) error {
	if info.FromKeys == nil || info.FromKeys.IsEmpty() {
		return ErrEmptyFrom
	}
	if info.ToKeys == nil && info.Handler == nil {
		return ErrNoTarget
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for i, m := range t.mappings {
		if m.FromKeys.Equals(info.FromKeys) {
			t.mappings[i] = info
			return nil
		}
	}
	t.mappings = append(t.mappings, info)
	return nil
}

// Remove deletes the mapping with the given source, if present.
func (t *Table) Remove(from *key.Sequence) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, m := range t.mappings {
		if m.FromKeys.Equals(from) {
			t.mappings = append(t.mappings[:i], t.mappings[i+1:]...)
			return
		}
	}
}

// Get returns the mapping whose source exactly matches seq, or nil.
func (t *Table) Get(seq *key.Sequence) *Info {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, m := range t.mappings {
		if m.FromKeys.Equals(seq) {
			return m
		}
	}
	return nil
}

// IsPrefix reports whether seq is a strict prefix of at least one
// registered source: some source extends seq by one or more keys. Exact
// matches alone do not count; the shortest match is evaluated eagerly.
func (t *Table) IsPrefix(seq *key.Sequence) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, m := range t.mappings {
		if m.FromKeys.Len() > seq.Len() && seq.IsPrefixOf(m.FromKeys) {
			return true
		}
	}
	return false
}

// Len returns the number of registered mappings.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.mappings)
}

// Set is the full collection of mapping tables, one per mapping mode.
type Set struct {
	mu     sync.RWMutex
	tables map[mode.MappingMode]*Table
}

// NewSet creates an empty mapping set.
func NewSet() *Set {
	return &Set{tables: make(map[mode.MappingMode]*Table)}
}

// Table returns the table for a mapping mode, creating it on demand.
func (s *Set) Table(mm mode.MappingMode) *Table {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tables[mm]
	if !ok {
		t = NewTable()
		s.tables[mm] = t
	}
	return t
}

// Map registers a key-substitution mapping in each of the given modes.
func (s *Set) Map(modes []mode.MappingMode, from, to *key.Sequence, recursive bool, owner string) error {
	for _, mm := range modes {
		err := s.Table(mm).Put(&Info{
			FromKeys:  from,
			ToKeys:    to,
			Recursive: recursive,
			Owner:     owner,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// MapHandler registers a handler mapping in each of the given modes.
func (s *Set) MapHandler(modes []mode.MappingMode, from *key.Sequence, h Handler, owner string) error {
	for _, mm := range modes {
		err := s.Table(mm).Put(&Info{
			FromKeys: from,
			Handler:  h,
			Owner:    owner,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
