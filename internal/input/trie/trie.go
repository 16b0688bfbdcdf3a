// Package trie holds the per-mapping-mode command tries. A trie maps key
// sequences to actions; internal nodes represent in-progress multi-key
// command prefixes, leaves represent complete commands.
package trie

import (
	"errors"
	"fmt"

	"github.com/dshills/modalkey/internal/input/command"
	"github.com/dshills/modalkey/internal/input/key"
	"github.com/dshills/modalkey/internal/input/mode"
)

// Registration errors.
var (
	ErrEmptySequence = errors.New("trie: empty command sequence")
	ErrConflict      = errors.New("trie: conflicting command sequence")
)

// Node is either a *CommandNode (leaf) or a *PartialNode (interior).
type Node interface {
	isNode()
}

// CommandNode is a leaf identifying a complete command.
type CommandNode struct {
	// Action is the command the sequence resolves to.
	Action command.Action
}

func (*CommandNode) isNode() {}

// PartialNode is an interior node whose children continue the sequence.
type PartialNode struct {
	children map[key.Event]Node
}

func (*PartialNode) isNode() {}

// NewPartialNode creates an empty interior node.
func NewPartialNode() *PartialNode {
	return &PartialNode{children: make(map[key.Event]Node)}
}

// Get returns the child for a key event, or nil for no match. A miss is
// not an error; the engine falls through to mode-specific handling.
func (n *PartialNode) Get(ev key.Event) Node {
	return n.children[ev]
}

// Len returns the number of children.
func (n *PartialNode) Len() int {
	return len(n.children)
}

// Registry builds and owns one trie root per mapping mode.
type Registry struct {
	roots map[mode.MappingMode]*PartialNode
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{roots: make(map[mode.MappingMode]*PartialNode)}
}

// Root returns the trie root for a mapping mode, creating it on demand so
// lookups in unregistered modes see an empty trie rather than nil.
func (r *Registry) Root(mm mode.MappingMode) *PartialNode {
	root, ok := r.roots[mm]
	if !ok {
		root = NewPartialNode()
		r.roots[mm] = root
	}
	return root
}

// Register adds a command sequence to the tries of the given mapping modes.
// A sequence that collides with an existing command or prefix is an error:
// the command registry is static, so a collision is a programming mistake.
func (r *Registry) Register(modes []mode.MappingMode, seq *key.Sequence, action command.Action) error {
	if seq == nil || seq.IsEmpty() {
		return ErrEmptySequence
	}

	for _, mm := range modes {
		if err := r.insert(r.Root(mm), seq.Events, action); err != nil {
			return fmt.Errorf("%w: %s in %s", err, seq, mm)
		}
	}
	return nil
}

func (r *Registry) insert(node *PartialNode, events []key.Event, action command.Action) error {
	ev := events[0]

	if len(events) == 1 {
		if _, exists := node.children[ev]; exists {
			return ErrConflict
		}
		node.children[ev] = &CommandNode{Action: action}
		return nil
	}

	child, ok := node.children[ev]
	if !ok {
		child = NewPartialNode()
		node.children[ev] = child
	}
	partial, ok := child.(*PartialNode)
	if !ok {
		return ErrConflict
	}
	return r.insert(partial, events[1:], action)
}

// MustRegister registers a sequence and panics on error. Use only in
// static registry construction.
func (r *Registry) MustRegister(modes []mode.MappingMode, spec string, action command.Action) {
	if err := r.Register(modes, key.MustParseSequence(spec), action); err != nil {
		panic(err.Error())
	}
}

// MustRegisterKeys is MustRegister for pre-built sequences, which is the
// only way to register synthetic keys that have no spec notation.
func (r *Registry) MustRegisterKeys(modes []mode.MappingMode, seq *key.Sequence, action command.Action) {
	if err := r.Register(modes, seq, action); err != nil {
		panic(err.Error())
	}
}
