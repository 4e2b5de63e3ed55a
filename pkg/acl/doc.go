// Package acl models Windows access-control lists: the ordered ACE sequences
// that make up the discretionary (DACL) and system (SACL) halves of a
// security descriptor, and the evaluation of effective rights against them.
//
// The ordering of entries inside an ACL is semantically load-bearing and is
// preserved exactly everywhere in this package; nothing sorts, deduplicates,
// or coalesces entries.
//
// Key concepts:
//   - Ace: one allow/deny/audit rule (type, flags, mask, trustee)
//   - Acl: owned, ordered ACE sequence with Len/Get accessors
//   - View: validated, non-owning reader over raw self-relative ACL bytes
//   - EffectiveRights: Windows canonical precedence evaluation
//     (explicit deny > explicit allow > inherited deny > inherited allow)
//
// Spec References:
//   - [MS-DTYP] 2.4.4: ACE formats
//   - [MS-DTYP] 2.4.5: ACL packet representation
//   - GetEffectiveRightsFromAcl semantics for the evaluator
package acl
