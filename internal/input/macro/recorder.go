// Package macro records key events into named registers for later
// playback. The dispatch engine appends each handled key while recording
// is active, subject to its suppression rules.
package macro

import (
	"fmt"
	"sync"

	"github.com/dshills/modalkey/internal/input/key"
)

// IsValidRegister reports whether r names a macro register. Lowercase
// letters record fresh; uppercase letters append to the lowercase
// register; digits are allowed for playback-only registers.
func IsValidRegister(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Recorder records key sequences for macro playback.
type Recorder struct {
	mu         sync.Mutex
	recording  bool
	register   rune
	appending  bool
	events     []key.Event
	registers  map[rune][]key.Event
	lastPlayed rune
}

// NewRecorder creates a recorder with empty registers.
func NewRecorder() *Recorder {
	return &Recorder{registers: make(map[rune][]key.Event)}
}

// Start begins recording to a register. An uppercase register appends to
// its lowercase counterpart. Returns an error if already recording or the
// register is invalid.
func (r *Recorder) Start(register rune) error {
	if !IsValidRegister(register) {
		return fmt.Errorf("macro: invalid register %q", register)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return fmt.Errorf("macro: already recording to register %q", r.register)
	}

	r.recording = true
	r.appending = register >= 'A' && register <= 'Z'
	if r.appending {
		register = register - 'A' + 'a'
	}
	r.register = register
	r.events = nil
	return nil
}

// Stop ends the recording and saves it. Returns the recorded events, or
// nil if not recording.
func (r *Recorder) Stop() []key.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return nil
	}
	r.recording = false

	if len(r.events) > 0 {
		saved := make([]key.Event, len(r.events))
		copy(saved, r.events)
		if r.appending {
			r.registers[r.register] = append(r.registers[r.register], saved...)
		} else {
			r.registers[r.register] = saved
		}
	} else if !r.appending {
		delete(r.registers, r.register)
	}

	result := r.events
	r.events = nil
	return result
}

// IsRecording returns true while a recording is active.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Record appends a key event to the active recording, if any.
func (r *Recorder) Record(ev key.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		r.events = append(r.events, ev)
	}
}

// Get returns a copy of the macro stored in a register.
func (r *Recorder) Get(register rune) []key.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := r.registers[register]
	result := make([]key.Event, len(events))
	copy(result, events)
	return result
}

// SetLastPlayed remembers the register for @@-style replay.
func (r *Recorder) SetLastPlayed(register rune) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastPlayed = register
}

// LastPlayed returns the last played register, or 0.
func (r *Recorder) LastPlayed() rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastPlayed
}

// Len returns the number of events in a register's macro.
func (r *Recorder) Len(register rune) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.registers[register])
}
