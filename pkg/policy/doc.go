// Package policy provides a file-backed store of named security
// descriptors with hot reload.
//
// A policy file is a TOML document listing resources, each binding a name
// to a descriptor in SDDL form:
//
//	[[resource]]
//	name = "share/finance"
//	descriptor = "O:BAG:SYD:(A;;GR;;;AU)"
//
// The store parses every descriptor at load time, so a file that loads
// successfully can always be queried. Reload swaps the snapshot
// atomically; a file that fails to load or parse leaves the previous
// snapshot in place. Watch drives reloads from filesystem events.
//
// Key concepts:
//   - Store: immutable snapshot of name to descriptor bindings, swapped
//     wholesale on reload.
//   - EffectiveAccess/CheckAccess: access queries evaluated against the
//     stored descriptor's DACL.
//   - Watch: fsnotify-driven reload with debounce, safe against editors
//     that replace rather than rewrite the file.
package policy
