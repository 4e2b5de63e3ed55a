// Package secdesc models Windows security descriptors: an optional owner,
// an optional primary group, optional discretionary and system ACLs, and
// control flags. Descriptors are immutable values; the With* methods
// produce modified copies and nothing mutates one in place, so instances
// may be shared across goroutines without synchronization.
//
// The package also implements the self-relative binary form
// (ParseBinary/MarshalBinary). The SDDL text form lives in the sddl
// package.
//
// Spec References:
//   - [MS-DTYP] 2.4.6: SECURITY_DESCRIPTOR packet representation
//   - winnt.h SE_* control bits
package secdesc
