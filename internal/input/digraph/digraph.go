// Package digraph implements the digraph and literal-entry composer: a
// small sub-state-machine that folds a short fixed-length key sequence
// into a single resolved character.
//
// A digraph sequence is Ctrl-K followed by two characters looked up in the
// digraph table. A literal sequence is Ctrl-V followed by up to three
// decimal digits, or a radix prefix (o/O octal, x/X hex, u/U Unicode) and
// the corresponding number of digits; any non-digit terminates the literal
// early and the accumulated code point is emitted.
package digraph

import (
	"unicode"

	"github.com/dshills/modalkey/internal/input/key"
)

// ResultKind describes the outcome of feeding one key to the composer.
type ResultKind uint8

const (
	// Unhandled means the key does not belong to the composer.
	Unhandled ResultKind = iota
	// Handled means the key was consumed and more keys are expected.
	Handled
	// Done means composition finished; Result.Event holds the character.
	Done
	// Bad means the sequence cannot compose a character.
	Bad
)

// String returns a string representation of the result kind.
func (k ResultKind) String() string {
	switch k {
	case Unhandled:
		return "unhandled"
	case Handled:
		return "handled"
	case Done:
		return "done"
	case Bad:
		return "bad"
	default:
		return "unknown"
	}
}

// Result is the outcome of one composer step.
type Result struct {
	Kind ResultKind

	// Event is the composed character event, valid when Kind == Done.
	Event key.Event
}

type state uint8

const (
	stateIdle state = iota
	stateDigraphOne
	stateDigraphTwo
	stateLiteralRadix
	stateLiteralDigits
)

// Sequence is the composer's per-session state. The zero value is idle.
type Sequence struct {
	state state

	firstChar rune

	// literal accumulation
	radix     int
	digitsMax int
	digitsLen int
	codepoint int

	table *Table
}

// NewSequence creates an idle composer using the default digraph table.
func NewSequence() *Sequence {
	return &Sequence{table: DefaultTable()}
}

// NewSequenceWithTable creates an idle composer over a custom table.
func NewSequenceWithTable(t *Table) *Sequence {
	return &Sequence{table: t}
}

// IsDigraphStart reports whether ev is the hardcoded digraph trigger
// (Ctrl-K). Operators with digraph arguments honor this without mapping.
func IsDigraphStart(ev key.Event) bool {
	return ev.Key == key.KeyRune && ev.Modifiers == key.ModCtrl && ev.Rune == 'k'
}

// IsLiteralStart reports whether ev is the hardcoded literal trigger
// (Ctrl-V or Ctrl-Q).
func IsLiteralStart(ev key.Event) bool {
	return ev.Key == key.KeyRune && ev.Modifiers == key.ModCtrl && (ev.Rune == 'v' || ev.Rune == 'q')
}

// Active returns true while a composition is in progress.
func (s *Sequence) Active() bool {
	return s.state != stateIdle
}

// Reset returns the composer to idle.
func (s *Sequence) Reset() {
	s.state = stateIdle
	s.firstChar = 0
	s.radix = 0
	s.digitsMax = 0
	s.digitsLen = 0
	s.codepoint = 0
}

// StartDigraph arms the composer to read a two-character digraph.
func (s *Sequence) StartDigraph() {
	s.Reset()
	s.state = stateDigraphOne
}

// StartLiteral arms the composer to read a literal character code.
func (s *Sequence) StartLiteral() {
	s.Reset()
	s.state = stateLiteralRadix
}

// ProcessKey feeds one key to the composer.
func (s *Sequence) ProcessKey(ev key.Event) Result {
	switch s.state {
	case stateIdle:
		// Composition starts only through StartDigraph/StartLiteral; the
		// trigger keys keep their ordinary meaning until then.
		return Result{Kind: Unhandled}

	case stateDigraphOne:
		if !ev.IsChar() {
			s.Reset()
			return Result{Kind: Bad}
		}
		s.firstChar = ev.Rune
		s.state = stateDigraphTwo
		return Result{Kind: Handled}

	case stateDigraphTwo:
		if !ev.IsChar() {
			s.Reset()
			return Result{Kind: Bad}
		}
		ch, ok := s.table.Lookup(s.firstChar, ev.Rune)
		s.Reset()
		if !ok {
			return Result{Kind: Bad}
		}
		return Result{Kind: Done, Event: key.NewRuneEvent(ch, key.ModNone)}

	case stateLiteralRadix:
		return s.processLiteralRadix(ev)

	case stateLiteralDigits:
		return s.processLiteralDigit(ev)

	default:
		s.Reset()
		return Result{Kind: Unhandled}
	}
}

// processLiteralRadix handles the first key after the literal trigger:
// a radix prefix, a decimal digit, or any other key taken literally.
func (s *Sequence) processLiteralRadix(ev key.Event) Result {
	if ev.IsRune() && !ev.IsModified() {
		switch {
		case ev.Rune == 'o' || ev.Rune == 'O':
			s.armLiteral(8, 3)
			return Result{Kind: Handled}
		case ev.Rune == 'x' || ev.Rune == 'X':
			s.armLiteral(16, 2)
			return Result{Kind: Handled}
		case ev.Rune == 'u':
			s.armLiteral(16, 4)
			return Result{Kind: Handled}
		case ev.Rune == 'U':
			s.armLiteral(16, 8)
			return Result{Kind: Handled}
		case ev.Rune >= '0' && ev.Rune <= '9':
			s.armLiteral(10, 3)
			return s.processLiteralDigit(ev)
		}
	}

	// Any other key is the literal character itself.
	s.Reset()
	if ch, ok := ev.CharArgument(); ok {
		return Result{Kind: Done, Event: key.NewRuneEvent(ch, key.ModNone)}
	}
	return Result{Kind: Bad}
}

func (s *Sequence) armLiteral(radix, maxDigits int) {
	s.state = stateLiteralDigits
	s.radix = radix
	s.digitsMax = maxDigits
	s.digitsLen = 0
	s.codepoint = 0
}

func (s *Sequence) processLiteralDigit(ev key.Event) Result {
	d, ok := digitValue(ev, s.radix)
	if !ok {
		// A non-digit ends the literal; emit what accumulated, or fail if
		// nothing did.
		cp, n := s.codepoint, s.digitsLen
		s.Reset()
		if n == 0 {
			return Result{Kind: Bad}
		}
		return Result{Kind: Done, Event: key.NewRuneEvent(rune(cp), key.ModNone)}
	}

	s.codepoint = s.codepoint*s.radix + d
	s.digitsLen++

	if s.digitsLen >= s.digitsMax || s.codepoint > unicode.MaxRune {
		cp := s.codepoint
		s.Reset()
		if cp > unicode.MaxRune || cp == 0 {
			return Result{Kind: Bad}
		}
		return Result{Kind: Done, Event: key.NewRuneEvent(rune(cp), key.ModNone)}
	}

	return Result{Kind: Handled}
}

func digitValue(ev key.Event, radix int) (int, bool) {
	if !ev.IsRune() || ev.IsModified() {
		return 0, false
	}
	r := unicode.ToLower(ev.Rune)
	var v int
	switch {
	case r >= '0' && r <= '9':
		v = int(r - '0')
	case r >= 'a' && r <= 'f':
		v = int(r-'a') + 10
	default:
		return 0, false
	}
	if v >= radix {
		return 0, false
	}
	return v, true
}

// Table maps two-character digraph pairs to composed characters.
type Table struct {
	pairs map[string]rune
}

// NewTable creates an empty digraph table.
func NewTable() *Table {
	return &Table{pairs: make(map[string]rune)}
}

// Add registers a digraph pair.
func (t *Table) Add(first, second, composed rune) {
	t.pairs[string([]rune{first, second})] = composed
}

// Lookup resolves a digraph pair. Per Vim, the reversed pair matches when
// the literal order does not.
func (t *Table) Lookup(first, second rune) (rune, bool) {
	if ch, ok := t.pairs[string([]rune{first, second})]; ok {
		return ch, true
	}
	if ch, ok := t.pairs[string([]rune{second, first})]; ok {
		return ch, true
	}
	return 0, false
}

// DefaultTable returns a table preloaded with an RFC 1345 subset:
// accented Latin letters, common punctuation and currency, and a few
// Greek letters.
func DefaultTable() *Table {
	t := NewTable()
	for _, d := range []struct {
		pair     string
		composed rune
	}{
		{"a'", 'á'}, {"a`", 'à'}, {"a:", 'ä'}, {"a^", 'â'}, {"a~", 'ã'}, {"aa", 'å'},
		{"e'", 'é'}, {"e`", 'è'}, {"e:", 'ë'}, {"e^", 'ê'},
		{"i'", 'í'}, {"i`", 'ì'}, {"i:", 'ï'}, {"i^", 'î'},
		{"o'", 'ó'}, {"o`", 'ò'}, {"o:", 'ö'}, {"o^", 'ô'}, {"o~", 'õ'}, {"o/", 'ø'},
		{"u'", 'ú'}, {"u`", 'ù'}, {"u:", 'ü'}, {"u^", 'û'},
		{"n~", 'ñ'}, {"c,", 'ç'}, {"y'", 'ý'}, {"y:", 'ÿ'},
		{"A'", 'Á'}, {"A`", 'À'}, {"A:", 'Ä'}, {"A^", 'Â'}, {"A~", 'Ã'}, {"AA", 'Å'},
		{"E'", 'É'}, {"E`", 'È'}, {"E:", 'Ë'}, {"E^", 'Ê'},
		{"O'", 'Ó'}, {"O:", 'Ö'}, {"U:", 'Ü'}, {"N~", 'Ñ'}, {"C,", 'Ç'},
		{"ss", 'ß'}, {"ae", 'æ'}, {"AE", 'Æ'},
		{"Eu", '€'}, {"Pd", '£'}, {"Ye", '¥'}, {"Ct", '¢'},
		{"SE", '§'}, {"Co", '©'}, {"Rg", '®'}, {"TM", '™'}, {"DG", '°'},
		{"+-", '±'}, {"My", 'µ'}, {"12", '½'}, {"14", '¼'}, {"34", '¾'},
		{"->", '→'}, {"<-", '←'}, {"-!", '¡'}, {"?I", '¿'},
		{"a*", 'α'}, {"b*", 'β'}, {"g*", 'γ'}, {"d*", 'δ'}, {"p*", 'π'},
		{"l*", 'λ'}, {"s*", 'σ'}, {"w*", 'ω'}, {"OK", '✓'}, {"XX", '✗'},
	} {
		r := []rune(d.pair)
		t.Add(r[0], r[1], d.composed)
	}
	return t
}
