package trie

import (
	"errors"
	"testing"

	"github.com/dshills/modalkey/internal/editor"
	"github.com/dshills/modalkey/internal/input/command"
	"github.com/dshills/modalkey/internal/input/key"
	"github.com/dshills/modalkey/internal/input/mode"
)

// stubAction is a minimal command.Action for registry tests.
type stubAction struct {
	id string
}

func (a *stubAction) ID() string                    { return a.id }
func (a *stubAction) Type() command.Type            { return command.TypeMotion }
func (a *stubAction) ArgumentType() command.ArgType { return command.ArgNone }
func (a *stubAction) Flags() command.Flag           { return command.FlagNone }
func (a *stubAction) Execute(_ editor.Editor, _ *command.Command) bool {
	return true
}

func TestRegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	dw := &stubAction{id: "dw"}
	reg.MustRegister([]mode.MappingMode{mode.MapNormal}, "gg", dw)

	root := reg.Root(mode.MapNormal)
	node := root.Get(key.NewRuneEvent('g', key.ModNone))
	partial, ok := node.(*PartialNode)
	if !ok {
		t.Fatalf("expected PartialNode after first g, got %T", node)
	}

	node = partial.Get(key.NewRuneEvent('g', key.ModNone))
	cmdNode, ok := node.(*CommandNode)
	if !ok {
		t.Fatalf("expected CommandNode after gg, got %T", node)
	}
	if cmdNode.Action.ID() != "dw" {
		t.Errorf("action = %q, want dw", cmdNode.Action.ID())
	}
}

func TestLookupMiss(t *testing.T) {
	reg := NewRegistry()
	root := reg.Root(mode.MapNormal)
	if node := root.Get(key.NewRuneEvent('z', key.ModNone)); node != nil {
		t.Errorf("expected nil for unregistered key, got %T", node)
	}
}

func TestRegisterConflicts(t *testing.T) {
	normal := []mode.MappingMode{mode.MapNormal}

	t.Run("duplicate leaf", func(t *testing.T) {
		reg := NewRegistry()
		reg.MustRegister(normal, "x", &stubAction{id: "one"})
		err := reg.Register(normal, key.MustParseSequence("x"), &stubAction{id: "two"})
		if !errors.Is(err, ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("command under command", func(t *testing.T) {
		reg := NewRegistry()
		reg.MustRegister(normal, "d", &stubAction{id: "d"})
		err := reg.Register(normal, key.MustParseSequence("dw"), &stubAction{id: "dw"})
		if !errors.Is(err, ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("empty sequence", func(t *testing.T) {
		reg := NewRegistry()
		err := reg.Register(normal, key.NewSequence(), &stubAction{id: "x"})
		if !errors.Is(err, ErrEmptySequence) {
			t.Errorf("expected ErrEmptySequence, got %v", err)
		}
	})
}

func TestModesAreIndependent(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister([]mode.MappingMode{mode.MapNormal, mode.MapVisual}, "w", &stubAction{id: "w"})

	for _, mm := range []mode.MappingMode{mode.MapNormal, mode.MapVisual} {
		if _, ok := reg.Root(mm).Get(key.NewRuneEvent('w', key.ModNone)).(*CommandNode); !ok {
			t.Errorf("w not registered in %v", mm)
		}
	}
	if node := reg.Root(mode.MapInsert).Get(key.NewRuneEvent('w', key.ModNone)); node != nil {
		t.Errorf("w should not be registered in insert mode, got %T", node)
	}
}

func TestSyntheticKeyRegistration(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegisterKeys([]mode.MappingMode{mode.MapOpPending},
		key.NewSequenceFrom(key.OperatorSelfEvent()), &stubAction{id: "line"})

	node := reg.Root(mode.MapOpPending).Get(key.OperatorSelfEvent())
	cmdNode, ok := node.(*CommandNode)
	if !ok {
		t.Fatalf("expected CommandNode for operator-self key, got %T", node)
	}
	if cmdNode.Action.ID() != "line" {
		t.Errorf("action = %q, want line", cmdNode.Action.ID())
	}
}
