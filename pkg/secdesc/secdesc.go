package secdesc

import (
	"github.com/backkem/winsd/pkg/acl"
	"github.com/backkem/winsd/pkg/sid"
)

// Control holds the SECURITY_DESCRIPTOR_CONTROL flag bits.
type Control uint16

const (
	OwnerDefaulted     Control = 0x0001
	GroupDefaulted     Control = 0x0002
	DaclPresent        Control = 0x0004
	DaclDefaulted      Control = 0x0008
	SaclPresent        Control = 0x0010
	SaclDefaulted      Control = 0x0020
	DaclAutoInheritReq Control = 0x0100
	SaclAutoInheritReq Control = 0x0200
	DaclAutoInherited  Control = 0x0400
	SaclAutoInherited  Control = 0x0800
	DaclProtected      Control = 0x1000
	SaclProtected      Control = 0x2000
	RMControlValid     Control = 0x4000
	SelfRelative       Control = 0x8000
)

// Has reports whether every bit of other is set.
func (c Control) Has(other Control) bool {
	return c&other == other
}

// SecurityDescriptor is the immutable aggregate of ownership and
// access-control state for an object. A nil Dacl or Sacl means the list is
// absent, which is distinct from present-but-empty (a non-nil ACL with zero
// entries): an absent DACL denies all access, an empty one grants none but
// exists.
type SecurityDescriptor struct {
	owner   *sid.SID
	group   *sid.SID
	dacl    *acl.Acl
	sacl    *acl.Acl
	control Control
}

// New assembles a descriptor. Arguments may be nil where the corresponding
// part is absent. The DaclPresent/SaclPresent control bits are reconciled
// with the actual presence of each list.
func New(owner, group *sid.SID, dacl, sacl *acl.Acl, control Control) *SecurityDescriptor {
	control = reconcile(control, dacl, sacl)
	return &SecurityDescriptor{
		owner:   owner.Clone(),
		group:   group.Clone(),
		dacl:    dacl,
		sacl:    sacl,
		control: control,
	}
}

func reconcile(control Control, dacl, sacl *acl.Acl) Control {
	if dacl != nil {
		control |= DaclPresent
	} else {
		control &^= DaclPresent
	}
	if sacl != nil {
		control |= SaclPresent
	} else {
		control &^= SaclPresent
	}
	return control
}

// Owner returns the owner SID, or nil when absent.
func (sd *SecurityDescriptor) Owner() *sid.SID { return sd.owner }

// Group returns the primary group SID, or nil when absent.
func (sd *SecurityDescriptor) Group() *sid.SID { return sd.group }

// Dacl returns the discretionary ACL, or nil when absent.
func (sd *SecurityDescriptor) Dacl() *acl.Acl { return sd.dacl }

// Sacl returns the system ACL, or nil when absent.
func (sd *SecurityDescriptor) Sacl() *acl.Acl { return sd.sacl }

// ControlFlags returns the control bits.
func (sd *SecurityDescriptor) ControlFlags() Control { return sd.control }

// WithOwner returns a copy with the owner replaced.
func (sd *SecurityDescriptor) WithOwner(owner *sid.SID) *SecurityDescriptor {
	c := *sd
	c.owner = owner.Clone()
	return &c
}

// WithGroup returns a copy with the primary group replaced.
func (sd *SecurityDescriptor) WithGroup(group *sid.SID) *SecurityDescriptor {
	c := *sd
	c.group = group.Clone()
	return &c
}

// WithDacl returns a copy with the DACL replaced (nil removes it).
func (sd *SecurityDescriptor) WithDacl(dacl *acl.Acl) *SecurityDescriptor {
	c := *sd
	c.dacl = dacl
	c.control = reconcile(c.control, c.dacl, c.sacl)
	return &c
}

// WithSacl returns a copy with the SACL replaced (nil removes it).
func (sd *SecurityDescriptor) WithSacl(sacl *acl.Acl) *SecurityDescriptor {
	c := *sd
	c.sacl = sacl
	c.control = reconcile(c.control, c.dacl, c.sacl)
	return &c
}

// WithControl returns a copy with additional control bits set. Presence
// bits stay reconciled with the actual lists.
func (sd *SecurityDescriptor) WithControl(control Control) *SecurityDescriptor {
	c := *sd
	c.control = reconcile(sd.control|control, c.dacl, c.sacl)
	return &c
}

// EffectiveRights evaluates the DACL for the trustee. An absent DACL yields
// the zero mask, which callers read as no access.
func (sd *SecurityDescriptor) EffectiveRights(trustee *sid.SID) acl.AccessMask {
	if sd.dacl == nil {
		return 0
	}
	return acl.EffectiveRights(sd.dacl, trustee)
}

// Equal reports field-structural equality: owners, groups, control bits,
// and both ACLs including entry order.
func (sd *SecurityDescriptor) Equal(other *SecurityDescriptor) bool {
	if sd == nil || other == nil {
		return sd == other
	}
	if sd.control != other.control {
		return false
	}
	if !sidEqual(sd.owner, other.owner) || !sidEqual(sd.group, other.group) {
		return false
	}
	return sd.dacl.Equal(other.dacl) && sd.sacl.Equal(other.sacl)
}

func sidEqual(a, b *sid.SID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(b)
}
