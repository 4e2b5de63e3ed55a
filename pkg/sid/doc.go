// Package sid implements Windows security identifiers (SIDs), the principal
// identity type that access-control entries are expressed against.
//
// A SID is a variable-length structure: a revision, a 48-bit identifier
// authority, and up to 15 32-bit sub-authorities. The textual form is the
// familiar "S-1-5-32-544" notation; SDDL additionally defines two-letter
// aliases for well-known principals ("WD" for Everyone, "BA" for
// BUILTIN\Administrators, and so on).
//
// Key concepts:
//   - Parse accepts both the S- notation and SDDL aliases
//   - Equal is structural identity; Contains is one-way group membership
//     (Everyone contains every trustee, it is not contained by them)
//   - MarshalBinary/UnmarshalBinary implement the on-the-wire layout used
//     inside binary security descriptors
//
// Spec References:
//   - [MS-DTYP] 2.4.2: SID packet representation
//   - [MS-DTYP] 2.4.2.4: Well-known SID structures
//   - [MS-DTYP] 2.5.1.1: SDDL SID strings
package sid
