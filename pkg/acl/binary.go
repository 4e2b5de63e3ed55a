package acl

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/backkem/winsd/pkg/sid"
	"github.com/google/uuid"
)

// Binary layout errors.
var (
	// ErrInconsistentLayout means a raw ACL region's declared sizes and
	// counts do not match its actual structure. Nothing is read past the
	// point of inconsistency.
	ErrInconsistentLayout = errors.New("acl: inconsistent binary layout")

	// ErrAclTooLarge means an ACL does not fit the 16-bit size field of the
	// self-relative header.
	ErrAclTooLarge = errors.New("acl: encoded ACL exceeds 64 KiB")
)

// Self-relative ACL header: Revision(1) Sbz1(1) AclSize(2) AceCount(2)
// Sbz2(2), all multi-byte fields little-endian. Each ACE starts with
// Type(1) Flags(1) AceSize(2).
// Spec: [MS-DTYP] 2.4.5, 2.4.4.1
const (
	aclHeaderSize = 8
	aceHeaderSize = 4

	// Object ACEs carry a flags word stating which GUIDs are present.
	objectTypePresent          = 0x00000001
	inheritedObjectTypePresent = 0x00000002
)

// decodeAce reads one ACE from data, which must begin at an ACE header and
// extend at least to the ACE's declared size. Returns the entry and the
// declared size.
func decodeAce(data []byte) (Ace, int, error) {
	if len(data) < aceHeaderSize {
		return Ace{}, 0, fmt.Errorf("%w: %d bytes left, ACE header needs %d", ErrInconsistentLayout, len(data), aceHeaderSize)
	}
	t := AceType(data[0])
	flags := AceFlags(data[1])
	size := int(binary.LittleEndian.Uint16(data[2:4]))
	if size < aceHeaderSize || size > len(data) {
		return Ace{}, 0, fmt.Errorf("%w: ACE size %d outside [%d, %d]", ErrInconsistentLayout, size, aceHeaderSize, len(data))
	}
	body := data[aceHeaderSize:size]

	if !t.IsSupported() {
		return NewOpaqueAce(t, flags, body), size, nil
	}

	if len(body) < 4 {
		return Ace{}, 0, fmt.Errorf("%w: %s body too short for access mask", ErrInconsistentLayout, t)
	}
	mask := AccessMask(binary.LittleEndian.Uint32(body[:4]))
	rest := body[4:]

	a := Ace{Type: t, Flags: flags, Mask: mask}

	if t.IsObjectType() {
		if len(rest) < 4 {
			return Ace{}, 0, fmt.Errorf("%w: %s body too short for object flags", ErrInconsistentLayout, t)
		}
		objFlags := binary.LittleEndian.Uint32(rest[:4])
		rest = rest[4:]
		if objFlags&objectTypePresent != 0 {
			g, ok := readGUID(rest)
			if !ok {
				return Ace{}, 0, fmt.Errorf("%w: %s truncated object type GUID", ErrInconsistentLayout, t)
			}
			a.ObjectType = &g
			rest = rest[16:]
		}
		if objFlags&inheritedObjectTypePresent != 0 {
			g, ok := readGUID(rest)
			if !ok {
				return Ace{}, 0, fmt.Errorf("%w: %s truncated inherited object type GUID", ErrInconsistentLayout, t)
			}
			a.InheritedObjectType = &g
			rest = rest[16:]
		}
	}

	trustee, n, err := sid.Decode(rest)
	if err != nil {
		return Ace{}, 0, fmt.Errorf("%w: bad trustee SID: %v", ErrInconsistentLayout, err)
	}
	a.Trustee = trustee

	// Callback and resource-attribute entries carry data after the SID.
	if rest = rest[n:]; len(rest) > 0 {
		a.appData = make([]byte, len(rest))
		copy(a.appData, rest)
	}
	return a, size, nil
}

// encodeAce appends the wire form of an ACE to buf.
func encodeAce(buf []byte, a *Ace) ([]byte, error) {
	start := len(buf)
	buf = append(buf, byte(a.Type), byte(a.Flags), 0, 0) // size patched below

	if a.opaque != nil {
		buf = append(buf, a.opaque...)
	} else {
		var mask [4]byte
		binary.LittleEndian.PutUint32(mask[:], uint32(a.Mask))
		buf = append(buf, mask[:]...)

		if a.Type.IsObjectType() {
			var objFlags uint32
			if a.ObjectType != nil {
				objFlags |= objectTypePresent
			}
			if a.InheritedObjectType != nil {
				objFlags |= inheritedObjectTypePresent
			}
			var of [4]byte
			binary.LittleEndian.PutUint32(of[:], objFlags)
			buf = append(buf, of[:]...)
			if a.ObjectType != nil {
				buf = appendGUID(buf, *a.ObjectType)
			}
			if a.InheritedObjectType != nil {
				buf = appendGUID(buf, *a.InheritedObjectType)
			}
		}

		if a.Trustee == nil {
			return nil, fmt.Errorf("acl: %s entry has no trustee", a.Type)
		}
		sidBytes, err := a.Trustee.MarshalBinary()
		if err != nil {
			return nil, err
		}
		buf = append(buf, sidBytes...)
		buf = append(buf, a.appData...)
	}

	size := len(buf) - start
	if size > 0xFFFF {
		return nil, ErrAclTooLarge
	}
	binary.LittleEndian.PutUint16(buf[start+2:start+4], uint16(size))
	return buf, nil
}

// MarshalBinary encodes the ACL in its self-relative form.
func (a *Acl) MarshalBinary() ([]byte, error) {
	if len(a.aces) > 0xFFFF {
		return nil, ErrAclTooLarge
	}
	buf := make([]byte, aclHeaderSize, aclHeaderSize+16*len(a.aces))
	buf[0] = a.revision
	binary.LittleEndian.PutUint16(buf[4:6], uint16(len(a.aces)))

	var err error
	for i := range a.aces {
		if buf, err = encodeAce(buf, &a.aces[i]); err != nil {
			return nil, err
		}
	}
	if len(buf) > 0xFFFF {
		return nil, ErrAclTooLarge
	}
	binary.LittleEndian.PutUint16(buf[2:4], uint16(len(buf)))
	return buf, nil
}

// readGUID decodes a Windows on-disk GUID (mixed endianness: the first
// three fields little-endian, the rest as-is) into an RFC 4122 UUID.
func readGUID(b []byte) (uuid.UUID, bool) {
	if len(b) < 16 {
		return uuid.UUID{}, false
	}
	var g uuid.UUID
	g[0], g[1], g[2], g[3] = b[3], b[2], b[1], b[0]
	g[4], g[5] = b[5], b[4]
	g[6], g[7] = b[7], b[6]
	copy(g[8:], b[8:16])
	return g, true
}

// appendGUID is the inverse of readGUID.
func appendGUID(buf []byte, g uuid.UUID) []byte {
	return append(buf,
		g[3], g[2], g[1], g[0],
		g[5], g[4],
		g[7], g[6],
		g[8], g[9], g[10], g[11], g[12], g[13], g[14], g[15])
}
