package lua

import (
	"errors"
	"testing"

	"github.com/dshills/modalkey/internal/editor/memory"
	"github.com/dshills/modalkey/internal/input/key"
	"github.com/dshills/modalkey/internal/input/mapping"
	"github.com/dshills/modalkey/internal/input/mode"
)

func newBridge(t *testing.T) (*Bridge, *mapping.Set, *State) {
	t.Helper()
	state := NewState()
	t.Cleanup(state.Close)
	maps := mapping.NewSet()
	b := NewBridge(state, maps)
	b.Install()
	return b, maps, state
}

func TestLuaMap(t *testing.T) {
	_, maps, state := newBridge(t)

	if err := state.DoString(`modalkey.map("n", "jk", "<Esc>")`); err != nil {
		t.Fatalf("DoString error: %v", err)
	}

	info := maps.Table(mode.MapNormal).Get(key.MustParseSequence("jk"))
	if info == nil {
		t.Fatal("expected jk mapping registered in normal mode")
	}
	if !info.Recursive {
		t.Error("expected map to register recursively")
	}
	if info.Owner != Owner {
		t.Errorf("expected owner %q, got %q", Owner, info.Owner)
	}
	if !info.ToKeys.Equals(key.MustParseSequence("<Esc>")) {
		t.Errorf("expected target <Esc>, got %s", info.ToKeys)
	}
}

func TestLuaNoremap(t *testing.T) {
	_, maps, state := newBridge(t)

	if err := state.DoString(`modalkey.noremap("v", "Y", "y$")`); err != nil {
		t.Fatalf("DoString error: %v", err)
	}

	for _, mm := range []mode.MappingMode{mode.MapVisual, mode.MapSelect} {
		info := maps.Table(mm).Get(key.MustParseSequence("Y"))
		if info == nil {
			t.Fatalf("expected Y mapping registered in %s", mm)
		}
		if info.Recursive {
			t.Error("expected noremap to register non-recursively")
		}
	}
}

func TestLuaMapFn(t *testing.T) {
	b, maps, state := newBridge(t)

	err := state.DoString(`
		modalkey.mapfn("n", "gh", function(ed)
			ed.move_to(ed.offset() + 5)
		end)
	`)
	if err != nil {
		t.Fatalf("DoString error: %v", err)
	}

	info := maps.Table(mode.MapNormal).Get(key.MustParseSequence("gh"))
	if info == nil || info.Handler == nil {
		t.Fatal("expected a handler mapping for gh")
	}
	if info.Handler.IsRepeatable() {
		t.Error("expected non-repeatable handler by default")
	}

	ed := memory.New("hello world")
	info.Handler.Execute(ed)
	if b.Err() != nil {
		t.Fatalf("handler error: %v", b.Err())
	}
	if got := ed.PrimaryCaret().Offset(); got != 5 {
		t.Errorf("expected caret at 5, got %d", got)
	}
}

func TestLuaMapFnRepeatable(t *testing.T) {
	_, maps, state := newBridge(t)

	err := state.DoString(`
		modalkey.mapfn("n", "gr", function(ed) end, { repeatable = true })
	`)
	if err != nil {
		t.Fatalf("DoString error: %v", err)
	}

	info := maps.Table(mode.MapNormal).Get(key.MustParseSequence("gr"))
	if info == nil || info.Handler == nil {
		t.Fatal("expected a handler mapping for gr")
	}
	if !info.Handler.IsRepeatable() {
		t.Error("expected a repeatable handler")
	}
}

func TestLuaBadModeLetter(t *testing.T) {
	_, _, state := newBridge(t)

	if err := state.DoString(`modalkey.map("z", "jk", "<Esc>")`); err == nil {
		t.Fatal("expected an error for an unknown mode letter")
	}
}

func TestParseModeLetters(t *testing.T) {
	tests := []struct {
		letters string
		want    []mode.MappingMode
	}{
		{"n", []mode.MappingMode{mode.MapNormal}},
		{"v", []mode.MappingMode{mode.MapVisual, mode.MapSelect}},
		{"nxo", []mode.MappingMode{mode.MapNormal, mode.MapVisual, mode.MapOpPending}},
		{"ic", []mode.MappingMode{mode.MapInsert, mode.MapCmdLine}},
		{"nn", []mode.MappingMode{mode.MapNormal}},
	}
	for _, tt := range tests {
		t.Run(tt.letters, func(t *testing.T) {
			got, err := parseModeLetters(tt.letters)
			if err != nil {
				t.Fatalf("parseModeLetters(%q) error: %v", tt.letters, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected modes %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("expected mode %s at %d, got %s", tt.want[i], i, got[i])
				}
			}
		})
	}

	if _, err := parseModeLetters(""); !errors.Is(err, ErrBadModeLetter) {
		t.Errorf("expected ErrBadModeLetter for empty string, got %v", err)
	}
	if _, err := parseModeLetters("q"); !errors.Is(err, ErrBadModeLetter) {
		t.Errorf("expected ErrBadModeLetter for unknown letter, got %v", err)
	}
}

func TestStateClosed(t *testing.T) {
	state := NewState()
	state.Close()

	if err := state.DoString(`return 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("expected ErrStateClosed, got %v", err)
	}
}
