package key

import "strings"

// Sequence is an ordered series of key events forming a command or a
// mapping source/target. The zero value is an empty sequence.
type Sequence struct {
	// Events contains the key events in order.
	Events []Event
}

// NewSequence creates an empty key sequence.
func NewSequence() *Sequence {
	return &Sequence{Events: make([]Event, 0, 4)}
}

// NewSequenceFrom creates a sequence from the given events.
func NewSequenceFrom(events ...Event) *Sequence {
	return &Sequence{Events: events}
}

// Len returns the number of events in the sequence.
func (s *Sequence) Len() int {
	return len(s.Events)
}

// IsEmpty returns true if the sequence has no events.
func (s *Sequence) IsEmpty() bool {
	return len(s.Events) == 0
}

// Add appends an event to the sequence.
func (s *Sequence) Add(event Event) {
	s.Events = append(s.Events, event)
}

// Clear removes all events from the sequence.
func (s *Sequence) Clear() {
	s.Events = s.Events[:0]
}

// First returns the first event; ok is false if the sequence is empty.
func (s *Sequence) First() (Event, bool) {
	if len(s.Events) == 0 {
		return Event{}, false
	}
	return s.Events[0], true
}

// Last returns the last event; ok is false if the sequence is empty.
func (s *Sequence) Last() (Event, bool) {
	if len(s.Events) == 0 {
		return Event{}, false
	}
	return s.Events[len(s.Events)-1], true
}

// Equals returns true if two sequences are identical.
func (s *Sequence) Equals(other *Sequence) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.Events) != len(other.Events) {
		return false
	}
	for i, e := range s.Events {
		if e != other.Events[i] {
			return false
		}
	}
	return true
}

// IsPrefixOf returns true if this sequence is a (non-strict) prefix of other.
func (s *Sequence) IsPrefixOf(other *Sequence) bool {
	if s == nil || s.IsEmpty() {
		return true
	}
	if other == nil || len(s.Events) > len(other.Events) {
		return false
	}
	for i, e := range s.Events {
		if e != other.Events[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the sequence.
func (s *Sequence) Clone() *Sequence {
	if s == nil {
		return nil
	}
	events := make([]Event, len(s.Events))
	copy(events, s.Events)
	return &Sequence{Events: events}
}

// DropLast removes the final event, if any.
func (s *Sequence) DropLast() {
	if len(s.Events) > 0 {
		s.Events = s.Events[:len(s.Events)-1]
	}
}

// Detach empties the sequence and returns the events it held.
func (s *Sequence) Detach() []Event {
	events := s.Events
	s.Events = make([]Event, 0, 4)
	return events
}

// String returns a human-readable representation like "d w" or "C-w s".
func (s *Sequence) String() string {
	if s == nil || len(s.Events) == 0 {
		return ""
	}
	parts := make([]string, len(s.Events))
	for i, e := range s.Events {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}

// VimString returns a Vim-style representation like "dw" or "<C-w>s".
func (s *Sequence) VimString() string {
	if s == nil || len(s.Events) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, e := range s.Events {
		sb.WriteString(e.VimString())
	}
	return sb.String()
}

// ParseSequence parses a continuous Vim-style key sequence string.
// Examples: "dd", "jk", "<C-w>s", "<Plug>(commentary)".
func ParseSequence(s string) (*Sequence, error) {
	s = strings.TrimSpace(s)
	seq := NewSequence()

	i := 0
	for i < len(s) {
		if s[i] == '<' {
			end := strings.IndexByte(s[i:], '>')
			if end == -1 {
				// No closing '>', treat as a literal '<'
				seq.Add(NewRuneEvent('<', ModNone))
				i++
				continue
			}
			event, err := Parse(s[i : i+end+1])
			if err != nil {
				return nil, err
			}
			seq.Add(event)
			i += end + 1
			continue
		}

		r := []rune(s[i:])[0]
		seq.Add(NewRuneEvent(r, ModNone))
		i += len(string(r))
	}

	return seq, nil
}

// MustParseSequence parses a sequence string and panics on error.
// Use only for known-valid sequences in initialization code.
func MustParseSequence(s string) *Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return seq
}
