package macro

import (
	"testing"

	"github.com/dshills/modalkey/internal/input/key"
)

func ev(r rune) key.Event {
	return key.NewRuneEvent(r, key.ModNone)
}

func TestRecordAndGet(t *testing.T) {
	rec := NewRecorder()
	if err := rec.Start('a'); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if !rec.IsRecording() {
		t.Fatal("expected IsRecording after Start")
	}

	rec.Record(ev('d'))
	rec.Record(ev('w'))
	events := rec.Stop()
	if len(events) != 2 {
		t.Fatalf("Stop returned %d events, want 2", len(events))
	}
	if rec.IsRecording() {
		t.Error("expected recording to be inactive after Stop")
	}

	got := rec.Get('a')
	if len(got) != 2 || got[0] != ev('d') || got[1] != ev('w') {
		t.Errorf("Get('a') = %v, want [d w]", got)
	}

	// Get returns a copy.
	got[0] = ev('x')
	if again := rec.Get('a'); again[0] != ev('d') {
		t.Error("mutating the returned slice should not affect the register")
	}
}

func TestUppercaseAppends(t *testing.T) {
	rec := NewRecorder()
	rec.Start('a')
	rec.Record(ev('x'))
	rec.Stop()

	if err := rec.Start('A'); err != nil {
		t.Fatalf("Start('A') error: %v", err)
	}
	rec.Record(ev('y'))
	rec.Stop()

	got := rec.Get('a')
	if len(got) != 2 || got[0] != ev('x') || got[1] != ev('y') {
		t.Errorf("Get('a') = %v, want [x y]", got)
	}
}

func TestEmptyRecordingClearsRegister(t *testing.T) {
	rec := NewRecorder()
	rec.Start('a')
	rec.Record(ev('x'))
	rec.Stop()

	rec.Start('a')
	rec.Stop()

	if n := rec.Len('a'); n != 0 {
		t.Errorf("Len('a') = %d, want 0 after empty re-record", n)
	}
}

func TestStartErrors(t *testing.T) {
	rec := NewRecorder()
	if err := rec.Start('%'); err == nil {
		t.Error("expected error for invalid register")
	}
	rec.Start('a')
	if err := rec.Start('b'); err == nil {
		t.Error("expected error when already recording")
	}
}

func TestStopWithoutStart(t *testing.T) {
	rec := NewRecorder()
	if events := rec.Stop(); events != nil {
		t.Errorf("Stop without Start = %v, want nil", events)
	}
}

func TestLastPlayed(t *testing.T) {
	rec := NewRecorder()
	if rec.LastPlayed() != 0 {
		t.Error("LastPlayed should start at 0")
	}
	rec.SetLastPlayed('q')
	if rec.LastPlayed() != 'q' {
		t.Errorf("LastPlayed = %q, want q", rec.LastPlayed())
	}
}
