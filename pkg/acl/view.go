package acl

import (
	"encoding/binary"
	"fmt"
)

// View is a read-only window over a caller-supplied byte region holding a
// self-relative ACL. It never owns the backing memory: the caller must keep
// the region alive and unmodified for as long as the View is in use, and the
// View will never attempt to release it. There is no finalizer.
//
// A View only exists in a validated state. ParseView walks the declared
// structure up front — header bounds, every ACE header, every trustee SID —
// and refuses construction on any inconsistency, so the accessors can read
// by index without rechecking bounds against the declared count.
type View struct {
	raw      []byte
	revision byte
	// offsets[i] is the start of ACE i within raw; validated at
	// construction, one per declared entry.
	offsets []int
}

// ParseView validates a self-relative ACL region and returns a non-owning
// view over it. The declared AclSize must fit the region, the declared
// AceCount must be exactly walkable without leaving the declared size, and
// every interpreted entry must carry a well-formed trustee SID. Any
// mismatch returns an error wrapping ErrInconsistentLayout and no View.
func ParseView(raw []byte) (*View, error) {
	if len(raw) < aclHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrInconsistentLayout, len(raw), aclHeaderSize)
	}
	aclSize := int(binary.LittleEndian.Uint16(raw[2:4]))
	aceCount := int(binary.LittleEndian.Uint16(raw[4:6]))
	if aclSize < aclHeaderSize {
		return nil, fmt.Errorf("%w: declared size %d smaller than header", ErrInconsistentLayout, aclSize)
	}
	if aclSize > len(raw) {
		return nil, fmt.Errorf("%w: declared size %d exceeds region of %d bytes", ErrInconsistentLayout, aclSize, len(raw))
	}

	v := &View{
		raw:      raw[:aclSize],
		revision: raw[0],
		offsets:  make([]int, 0, aceCount),
	}

	off := aclHeaderSize
	for i := 0; i < aceCount; i++ {
		// decodeAce re-validates per-entry structure, including the
		// trustee SID, before the offset is trusted.
		_, size, err := decodeAce(v.raw[off:])
		if err != nil {
			return nil, fmt.Errorf("entry %d at offset %d: %w", i, off, err)
		}
		v.offsets = append(v.offsets, off)
		off += size
	}
	if off > aclSize {
		return nil, fmt.Errorf("%w: entries end at %d, declared size %d", ErrInconsistentLayout, off, aclSize)
	}

	return v, nil
}

// Revision returns the ACL revision byte from the header.
func (v *View) Revision() byte {
	return v.revision
}

// Len returns the declared (and verified) entry count.
func (v *View) Len() uint32 {
	return uint32(len(v.offsets))
}

// Get decodes the entry at index from the underlying bytes, or returns nil
// when the index is out of range. Out-of-range access is a normal outcome.
func (v *View) Get(index uint32) *Ace {
	if index >= uint32(len(v.offsets)) {
		return nil
	}
	// Cannot fail: the same bytes were decoded during validation and the
	// caller contract forbids mutating them.
	a, _, err := decodeAce(v.raw[v.offsets[index]:])
	if err != nil {
		return nil
	}
	return &a
}

// Acl materializes an owned copy of the viewed entries, detached from the
// borrowed region.
func (v *View) Acl() *Acl {
	aces := make([]Ace, 0, len(v.offsets))
	for i := range v.offsets {
		if a := v.Get(uint32(i)); a != nil {
			aces = append(aces, *a)
		}
	}
	return New(v.revision, aces)
}
