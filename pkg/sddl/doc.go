// Package sddl implements the Security Descriptor Definition Language text
// form: Parse turns an SDDL string into a secdesc.SecurityDescriptor and
// Serialize renders one back.
//
// The grammar is a sequence of labeled sections, each optional and in any
// order: owner ("O:"), group ("G:"), DACL ("D:"), SACL ("S:"). A list
// section holds optional control-flag mnemonics followed by parenthesized
// ACE records concatenated without separators:
//
//	(type;flags;rights;object_guid;inherit_object_guid;trustee)
//
// Parsing is atomic — any malformed token fails the whole operation with a
// *SyntaxError and no partial descriptor — and entry order within a section
// is preserved exactly as written. DACLs accept only allow/deny-class entry
// types and SACLs only audit-class types; a valid mnemonic in the wrong
// section is rejected with ErrUnsupportedEntryForSection.
//
// Serialize covers everything Parse can produce. Entries of uninterpreted
// types or with trailing application data (both possible when a descriptor
// came from the binary codec) have no SDDL spelling; round-trip those
// through secdesc.MarshalBinary instead.
//
// Spec References:
//   - [MS-DTYP] 2.5.1: Security Descriptor Description Language
//   - [MS-DTYP] 2.5.1.1: SID strings
package sddl
