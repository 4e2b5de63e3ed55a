package acl

import (
	"fmt"

	"github.com/backkem/winsd/pkg/sid"
	"github.com/google/uuid"
)

// Ace is a single access-control entry. It is a value type: construct it
// once and treat it as immutable. All package operations copy ACEs rather
// than aliasing them.
//
// ObjectType and InheritedObjectType are only meaningful on object-class
// types (AceType.IsObjectType); they are nil otherwise. For types the
// package does not interpret, the raw body read from a binary ACL is kept
// in opaque so the entry survives a round trip. Interpreted types may
// carry bytes after the trustee (callback conditional expressions,
// resource-attribute claims); those are kept in appData, uninterpreted.
type Ace struct {
	Type                AceType
	Flags               AceFlags
	Mask                AccessMask
	Trustee             *sid.SID
	ObjectType          *uuid.UUID
	InheritedObjectType *uuid.UUID

	opaque  []byte
	appData []byte
}

// NewAce constructs an ACE for the common non-object types.
func NewAce(t AceType, flags AceFlags, mask AccessMask, trustee *sid.SID) Ace {
	return Ace{Type: t, Flags: flags, Mask: mask, Trustee: trustee}
}

// NewOpaqueAce preserves an entry of an uninterpreted type. The body is the
// ACE payload after the 4-byte header, copied verbatim.
func NewOpaqueAce(t AceType, flags AceFlags, body []byte) Ace {
	a := Ace{Type: t, Flags: flags}
	a.opaque = make([]byte, len(body))
	copy(a.opaque, body)
	return a
}

// AceType returns the entry type.
func (a *Ace) AceType() AceType { return a.Type }

// AceFlags returns the inheritance and audit flags.
func (a *Ace) AceFlags() AceFlags { return a.Flags }

// AccessMask returns the rights mask.
func (a *Ace) AccessMask() AccessMask { return a.Mask }

// TrusteeSID returns the principal the entry applies to. It is nil for
// opaque entries whose layout the package does not interpret.
func (a *Ace) TrusteeSID() *sid.SID { return a.Trustee }

// Explicit reports whether the entry was set directly on the object rather
// than inherited from a parent.
func (a *Ace) Explicit() bool { return !a.Flags.Inherited() }

// OpaqueBody returns a copy of the preserved payload of an uninterpreted
// entry, or nil for interpreted types.
func (a *Ace) OpaqueBody() []byte {
	if a.opaque == nil {
		return nil
	}
	b := make([]byte, len(a.opaque))
	copy(b, a.opaque)
	return b
}

// ApplicationData returns a copy of the bytes following the trustee in an
// interpreted entry's binary body, or nil when there are none. SDDL-parsed
// entries never carry application data.
func (a *Ace) ApplicationData() []byte {
	if a.appData == nil {
		return nil
	}
	b := make([]byte, len(a.appData))
	copy(b, a.appData)
	return b
}

// Equal reports structural equality across all fields.
func (a *Ace) Equal(other *Ace) bool {
	if a == nil || other == nil {
		return a == other
	}
	if a.Type != other.Type || a.Flags != other.Flags || a.Mask != other.Mask {
		return false
	}
	if (a.Trustee == nil) != (other.Trustee == nil) {
		return false
	}
	if a.Trustee != nil && !a.Trustee.Equal(other.Trustee) {
		return false
	}
	if !guidEqual(a.ObjectType, other.ObjectType) ||
		!guidEqual(a.InheritedObjectType, other.InheritedObjectType) {
		return false
	}
	return bytesEqual(a.opaque, other.opaque) && bytesEqual(a.appData, other.appData)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String is a diagnostic form, not SDDL. The SDDL rendering lives in the
// sddl package.
func (a *Ace) String() string {
	trustee := "<none>"
	if a.Trustee != nil {
		trustee = a.Trustee.String()
	}
	return fmt.Sprintf("%s flags=0x%02X mask=%s trustee=%s",
		a.Type, byte(a.Flags), a.Mask, trustee)
}

// clone deep-copies an ACE, including any preserved payloads.
func (a *Ace) clone() Ace {
	c := *a
	c.Trustee = a.Trustee.Clone()
	if a.ObjectType != nil {
		g := *a.ObjectType
		c.ObjectType = &g
	}
	if a.InheritedObjectType != nil {
		g := *a.InheritedObjectType
		c.InheritedObjectType = &g
	}
	if a.opaque != nil {
		c.opaque = make([]byte, len(a.opaque))
		copy(c.opaque, a.opaque)
	}
	if a.appData != nil {
		c.appData = make([]byte, len(a.appData))
		copy(c.appData, a.appData)
	}
	return c
}

func guidEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
