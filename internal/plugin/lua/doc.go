// Package lua embeds a Lua runtime for user scripting. Scripts register
// key mappings through a small "modalkey" module: key-substitution
// mappings ("map", "noremap") and handler mappings ("mapfn") whose
// target is a Lua function executed against the editing surface.
//
// gopher-lua's LState is not goroutine-safe; a State serializes all
// access behind a mutex and must otherwise be driven from the host's
// event loop. Only the base, table, string and math libraries are
// opened, so scripts have no file system or process access.
package lua
