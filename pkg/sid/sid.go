package sid

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parsing and wire-format errors.
var (
	ErrInvalidSID       = errors.New("sid: invalid SID string")
	ErrInvalidBinarySID = errors.New("sid: invalid binary SID")
	ErrTooManySubAuths  = errors.New("sid: too many sub-authorities")
)

// Structural limits from [MS-DTYP] 2.4.2.
const (
	// Revision is the only defined SID revision.
	Revision = 1

	// MaxSubAuthorities is the maximum number of sub-authorities in a SID.
	MaxSubAuthorities = 15

	// headerSize is the fixed prefix of the binary layout:
	// revision, sub-authority count, 6-byte identifier authority.
	headerSize = 8
)

// SID is a Windows security identifier. It identifies the trustee an
// access-control entry applies to.
//
// A SID is a value type: constructors and accessors copy, nothing mutates
// an existing SID in place, so instances may be shared freely across
// goroutines.
type SID struct {
	revision  byte
	authority [6]byte
	subAuths  []uint32
}

// New creates a SID under the given identifier authority.
// The sub-authority slice is copied.
func New(authority [6]byte, subAuths ...uint32) (*SID, error) {
	if len(subAuths) > MaxSubAuthorities {
		return nil, ErrTooManySubAuths
	}
	s := &SID{
		revision:  Revision,
		authority: authority,
		subAuths:  make([]uint32, len(subAuths)),
	}
	copy(s.subAuths, subAuths)
	return s, nil
}

// mustNew is New for package-level well-known tables.
func mustNew(authority [6]byte, subAuths ...uint32) *SID {
	s, err := New(authority, subAuths...)
	if err != nil {
		panic(err)
	}
	return s
}

// Parse converts a textual SID to its structured form. It accepts the
// canonical "S-1-5-32-544" notation and the SDDL two-letter aliases from
// [MS-DTYP] 2.5.1.1 ("WD", "BA", "SY", ...).
func Parse(s string) (*SID, error) {
	if alias, ok := aliasTable[s]; ok {
		return alias.Clone(), nil
	}
	if !strings.HasPrefix(s, "S-") && !strings.HasPrefix(s, "s-") {
		return nil, fmt.Errorf("%w: %q is neither S- notation nor a known alias", ErrInvalidSID, s)
	}

	parts := strings.Split(s[2:], "-")
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: %q has no identifier authority", ErrInvalidSID, s)
	}

	rev, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil || rev != Revision {
		return nil, fmt.Errorf("%w: bad revision %q", ErrInvalidSID, parts[0])
	}

	// The identifier authority is decimal, or hex when it exceeds 32 bits.
	var authority [6]byte
	authStr := parts[1]
	var auth uint64
	if strings.HasPrefix(authStr, "0x") || strings.HasPrefix(authStr, "0X") {
		auth, err = strconv.ParseUint(authStr[2:], 16, 48)
	} else {
		auth, err = strconv.ParseUint(authStr, 10, 48)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: bad identifier authority %q", ErrInvalidSID, authStr)
	}
	authority[0] = byte(auth >> 40)
	authority[1] = byte(auth >> 32)
	binary.BigEndian.PutUint32(authority[2:], uint32(auth))

	subParts := parts[2:]
	if len(subParts) > MaxSubAuthorities {
		return nil, ErrTooManySubAuths
	}
	subAuths := make([]uint32, len(subParts))
	for i, p := range subParts {
		v, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: bad sub-authority %q", ErrInvalidSID, p)
		}
		subAuths[i] = uint32(v)
	}

	return &SID{revision: byte(rev), authority: authority, subAuths: subAuths}, nil
}

// MustParse is Parse but panics on error. Intended for constants and tests.
func MustParse(s string) *SID {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the canonical "S-1-5-32-544" form.
func (s *SID) String() string {
	var b strings.Builder
	b.WriteString("S-")
	b.WriteString(strconv.Itoa(int(s.revision)))
	b.WriteByte('-')

	auth := s.authorityValue()
	if auth >= 1<<32 {
		fmt.Fprintf(&b, "0x%x", auth)
	} else {
		b.WriteString(strconv.FormatUint(auth, 10))
	}

	for _, sub := range s.subAuths {
		b.WriteByte('-')
		b.WriteString(strconv.FormatUint(uint64(sub), 10))
	}
	return b.String()
}

// Alias returns the SDDL two-letter alias for this SID, if one exists.
func (s *SID) Alias() (string, bool) {
	a, ok := reverseAliasTable[s.String()]
	return a, ok
}

// SubAuthorityCount returns the number of sub-authorities.
func (s *SID) SubAuthorityCount() int {
	return len(s.subAuths)
}

// SubAuthority returns the sub-authority at index i, or 0 if out of range.
func (s *SID) SubAuthority(i int) uint32 {
	if i < 0 || i >= len(s.subAuths) {
		return 0
	}
	return s.subAuths[i]
}

// IdentifierAuthority returns the 6-byte identifier authority.
func (s *SID) IdentifierAuthority() [6]byte {
	return s.authority
}

func (s *SID) authorityValue() uint64 {
	return uint64(s.authority[0])<<40 | uint64(s.authority[1])<<32 |
		uint64(binary.BigEndian.Uint32(s.authority[2:]))
}

// Clone returns a deep copy.
func (s *SID) Clone() *SID {
	if s == nil {
		return nil
	}
	c := &SID{revision: s.revision, authority: s.authority}
	c.subAuths = make([]uint32, len(s.subAuths))
	copy(c.subAuths, s.subAuths)
	return c
}

// Equal reports structural identity: same revision, authority, and
// sub-authority sequence.
func (s *SID) Equal(other *SID) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.revision != other.revision || s.authority != other.authority {
		return false
	}
	if len(s.subAuths) != len(other.subAuths) {
		return false
	}
	for i := range s.subAuths {
		if s.subAuths[i] != other.subAuths[i] {
			return false
		}
	}
	return true
}

// Contains reports whether a trustee identified by other falls under this
// SID. This is one-way group membership, not equality: Everyone (S-1-1-0)
// contains every trustee, and Authenticated Users (S-1-5-11) contains every
// NT-authority principal, but neither relation holds in reverse.
func (s *SID) Contains(other *SID) bool {
	if s == nil || other == nil {
		return false
	}
	if s.Equal(other) {
		return true
	}
	switch {
	case s.Equal(Everyone):
		return true
	case s.Equal(AuthenticatedUsers):
		return other.authority == ntAuthority
	}
	return false
}

// Size returns the length of the binary encoding in bytes.
func (s *SID) Size() int {
	return headerSize + 4*len(s.subAuths)
}

// MarshalBinary encodes the SID in its packet representation:
// revision, sub-authority count, big-endian identifier authority, then
// little-endian sub-authorities. [MS-DTYP] 2.4.2.2.
func (s *SID) MarshalBinary() ([]byte, error) {
	if len(s.subAuths) > MaxSubAuthorities {
		return nil, ErrTooManySubAuths
	}
	buf := make([]byte, s.Size())
	buf[0] = s.revision
	buf[1] = byte(len(s.subAuths))
	copy(buf[2:8], s.authority[:])
	for i, sub := range s.subAuths {
		binary.LittleEndian.PutUint32(buf[headerSize+4*i:], sub)
	}
	return buf, nil
}

// UnmarshalBinary decodes a SID from its packet representation. The input
// must contain exactly one well-formed SID; trailing bytes are rejected.
func (s *SID) UnmarshalBinary(data []byte) (err error) {
	dec, _, err := Decode(data)
	if err != nil {
		return err
	}
	if dec.Size() != len(data) {
		return fmt.Errorf("%w: %d trailing bytes", ErrInvalidBinarySID, len(data)-dec.Size())
	}
	*s = *dec
	return nil
}

// Decode reads one SID from the front of data and returns it together with
// the number of bytes consumed. Used by ACL and descriptor decoding, where
// SIDs are embedded in larger structures.
func Decode(data []byte) (*SID, int, error) {
	if len(data) < headerSize {
		return nil, 0, fmt.Errorf("%w: %d bytes, need at least %d", ErrInvalidBinarySID, len(data), headerSize)
	}
	rev := data[0]
	count := int(data[1])
	if rev != Revision {
		return nil, 0, fmt.Errorf("%w: revision %d", ErrInvalidBinarySID, rev)
	}
	if count > MaxSubAuthorities {
		return nil, 0, fmt.Errorf("%w: %d sub-authorities", ErrInvalidBinarySID, count)
	}
	size := headerSize + 4*count
	if len(data) < size {
		return nil, 0, fmt.Errorf("%w: truncated at %d of %d bytes", ErrInvalidBinarySID, len(data), size)
	}

	s := &SID{revision: rev}
	copy(s.authority[:], data[2:8])
	s.subAuths = make([]uint32, count)
	for i := 0; i < count; i++ {
		s.subAuths[i] = binary.LittleEndian.Uint32(data[headerSize+4*i:])
	}
	return s, size, nil
}
