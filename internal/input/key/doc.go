// Package key defines key events, modifiers, and key sequences.
//
// An Event is an immutable, equality-comparable token for one physical
// keypress. Sequences are ordered lists of events used for multi-key
// commands and user mappings. The package also parses Vim-style key
// specification strings such as "<C-w>", "<Esc>" and "dd".
package key
