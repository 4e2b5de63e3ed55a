package secdesc

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/backkem/winsd/pkg/acl"
	"github.com/backkem/winsd/pkg/sid"
)

// Binary form errors.
var (
	ErrInvalidDescriptor = errors.New("secdesc: invalid binary security descriptor")
	ErrNotSelfRelative   = errors.New("secdesc: descriptor is not self-relative")
)

// Self-relative header: Revision(1) Sbz1(1) Control(2) OffsetOwner(4)
// OffsetGroup(4) OffsetSacl(4) OffsetDacl(4), little-endian.
// Spec: [MS-DTYP] 2.4.6
const (
	descriptorRevision = 1
	headerSize         = 20
)

// ParseBinary decodes a self-relative security descriptor. Every offset is
// bounds-checked before it is followed, and the contained ACLs pass the
// same structural validation as acl.ParseView. Decoding is atomic: an
// error means no descriptor.
//
// A zero DACL/SACL offset yields an absent list (nil), regardless of the
// presence control bit; the bit is reconciled on the result.
func ParseBinary(raw []byte) (*SecurityDescriptor, error) {
	if len(raw) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrInvalidDescriptor, len(raw), headerSize)
	}
	if raw[0] != descriptorRevision {
		return nil, fmt.Errorf("%w: revision %d", ErrInvalidDescriptor, raw[0])
	}
	control := Control(binary.LittleEndian.Uint16(raw[2:4]))
	if !control.Has(SelfRelative) {
		return nil, ErrNotSelfRelative
	}

	owner, err := sidAt(raw, binary.LittleEndian.Uint32(raw[4:8]), "owner")
	if err != nil {
		return nil, err
	}
	group, err := sidAt(raw, binary.LittleEndian.Uint32(raw[8:12]), "group")
	if err != nil {
		return nil, err
	}
	sacl, err := aclAt(raw, binary.LittleEndian.Uint32(raw[12:16]), "SACL")
	if err != nil {
		return nil, err
	}
	dacl, err := aclAt(raw, binary.LittleEndian.Uint32(raw[16:20]), "DACL")
	if err != nil {
		return nil, err
	}

	return New(owner, group, dacl, sacl, control), nil
}

func sidAt(raw []byte, offset uint32, what string) (*sid.SID, error) {
	if offset == 0 {
		return nil, nil
	}
	if offset > uint32(len(raw)) {
		return nil, fmt.Errorf("%w: %s offset %d beyond %d bytes", ErrInvalidDescriptor, what, offset, len(raw))
	}
	s, _, err := sid.Decode(raw[offset:])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDescriptor, what, err)
	}
	return s, nil
}

func aclAt(raw []byte, offset uint32, what string) (*acl.Acl, error) {
	if offset == 0 {
		return nil, nil
	}
	if offset > uint32(len(raw)) {
		return nil, fmt.Errorf("%w: %s offset %d beyond %d bytes", ErrInvalidDescriptor, what, offset, len(raw))
	}
	v, err := acl.ParseView(raw[offset:])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	return v.Acl(), nil
}

// MarshalBinary encodes the descriptor in self-relative form. The emitted
// control word always carries SelfRelative and reconciled presence bits.
// Parts are laid out owner, group, SACL, DACL after the header, matching
// the common platform layout.
func (sd *SecurityDescriptor) MarshalBinary() ([]byte, error) {
	buf := make([]byte, headerSize)
	buf[0] = descriptorRevision

	control := reconcile(sd.control, sd.dacl, sd.sacl) | SelfRelative

	appendSID := func(s *sid.SID, offsetField int) error {
		if s == nil {
			return nil
		}
		b, err := s.MarshalBinary()
		if err != nil {
			return err
		}
		binary.LittleEndian.PutUint32(buf[offsetField:], uint32(len(buf)))
		buf = append(buf, b...)
		return nil
	}
	appendAcl := func(a *acl.Acl, offsetField int) error {
		if a == nil {
			return nil
		}
		b, err := a.MarshalBinary()
		if err != nil {
			return err
		}
		binary.LittleEndian.PutUint32(buf[offsetField:], uint32(len(buf)))
		buf = append(buf, b...)
		return nil
	}

	if err := appendSID(sd.owner, 4); err != nil {
		return nil, err
	}
	if err := appendSID(sd.group, 8); err != nil {
		return nil, err
	}
	if err := appendAcl(sd.sacl, 12); err != nil {
		return nil, err
	}
	if err := appendAcl(sd.dacl, 16); err != nil {
		return nil, err
	}

	binary.LittleEndian.PutUint16(buf[2:4], uint16(control))
	return buf, nil
}
