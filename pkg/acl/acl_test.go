package acl

import (
	"testing"

	"github.com/backkem/winsd/pkg/sid"
)

func TestAceType_Classes(t *testing.T) {
	tests := []struct {
		t     AceType
		allow bool
		deny  bool
		audit bool
	}{
		{AccessAllowed, true, false, false},
		{AccessDenied, false, true, false},
		{SystemAudit, false, false, true},
		{SystemAlarm, false, false, true},
		{AccessAllowedObject, true, false, false},
		{AccessDeniedObject, false, true, false},
		{SystemAuditObject, false, false, true},
		{SystemMandatoryLabel, false, false, true},
		{AccessAllowedCallback, true, false, false},
		{AccessDeniedCallback, false, true, false},
		{AceType(0xE7), false, false, false},
	}

	for _, tt := range tests {
		if got := tt.t.IsAllowClass(); got != tt.allow {
			t.Errorf("%s.IsAllowClass() = %v, want %v", tt.t, got, tt.allow)
		}
		if got := tt.t.IsDenyClass(); got != tt.deny {
			t.Errorf("%s.IsDenyClass() = %v, want %v", tt.t, got, tt.deny)
		}
		if got := tt.t.IsAuditClass(); got != tt.audit {
			t.Errorf("%s.IsAuditClass() = %v, want %v", tt.t, got, tt.audit)
		}
	}
}

func TestAceFlags_Inherited(t *testing.T) {
	if (FlagContainerInherit | FlagObjectInherit).Inherited() {
		t.Error("inheritance propagation flags should not mark an ACE as inherited")
	}
	if !(FlagInherited | FlagContainerInherit).Inherited() {
		t.Error("FlagInherited should mark the ACE as inherited")
	}
}

func TestAccessMask_SetOps(t *testing.T) {
	m := GenericRead.Union(GenericWrite)
	if !m.Has(GenericRead) || !m.Has(GenericWrite) {
		t.Errorf("union missing bits: %s", m)
	}
	if m.Has(GenericExecute) {
		t.Errorf("union has spurious bits: %s", m)
	}
	if got := m.Intersect(GenericRead); got != GenericRead {
		t.Errorf("Intersect = %s, want %s", got, GenericRead)
	}

	// Zero is a valid mask.
	var zero AccessMask
	if !zero.Has(0) {
		t.Error("zero mask should trivially contain the zero mask")
	}
}

func TestAcl_LenGet(t *testing.T) {
	everyone := sid.Everyone
	aces := []Ace{
		NewAce(AccessAllowed, 0, GenericRead, everyone),
		NewAce(AccessDenied, 0, GenericWrite, everyone),
		NewAce(AccessAllowed, FlagInherited, GenericExecute, everyone),
	}
	a := New(RevisionBasic, aces)

	if a.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", a.Len())
	}
	for i := uint32(0); i < a.Len(); i++ {
		got := a.Get(i)
		if got == nil {
			t.Fatalf("Get(%d) = nil, want entry", i)
		}
		if !got.Equal(&aces[i]) {
			t.Errorf("Get(%d) = %s, want %s", i, got, &aces[i])
		}
	}

	// Out of range is absence, not a panic.
	if got := a.Get(3); got != nil {
		t.Errorf("Get(3) = %v, want nil", got)
	}
	if got := a.Get(^uint32(0)); got != nil {
		t.Errorf("Get(max) = %v, want nil", got)
	}
}

func TestAcl_OrderPreserved(t *testing.T) {
	// Deliberately non-canonical order: allow before deny, duplicates kept.
	aces := []Ace{
		NewAce(AccessAllowed, 0, GenericRead, sid.Everyone),
		NewAce(AccessDenied, 0, GenericRead, sid.Everyone),
		NewAce(AccessAllowed, 0, GenericRead, sid.Everyone),
	}
	a := New(RevisionBasic, aces)

	if a.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (duplicates must be kept)", a.Len())
	}
	wantTypes := []AceType{AccessAllowed, AccessDenied, AccessAllowed}
	for i, want := range wantTypes {
		if got := a.Get(uint32(i)).AceType(); got != want {
			t.Errorf("entry %d type = %s, want %s", i, got, want)
		}
	}
}

func TestAcl_EmptyVsNil(t *testing.T) {
	empty := New(RevisionBasic, nil)
	if empty.Len() != 0 {
		t.Errorf("empty ACL Len() = %d", empty.Len())
	}
	if empty.Get(0) != nil {
		t.Error("empty ACL Get(0) should be nil")
	}

	var absent *Acl
	if empty.Equal(absent) {
		t.Error("present-but-empty ACL must not equal an absent ACL")
	}
}

func TestAcl_ConstructionCopies(t *testing.T) {
	aces := []Ace{NewAce(AccessAllowed, 0, GenericRead, sid.Everyone)}
	a := New(RevisionBasic, aces)

	aces[0].Mask = GenericAll
	if got := a.Get(0).AccessMask(); got != GenericRead {
		t.Errorf("mutating the source slice changed the ACL: mask = %s", got)
	}
}

func TestAcl_BinaryRoundTrip(t *testing.T) {
	user := sid.MustParse("S-1-5-21-100-200-300-1001")
	aces := []Ace{
		NewAce(AccessDenied, 0, GenericWrite, user),
		NewAce(AccessAllowed, FlagContainerInherit|FlagObjectInherit, FileAllAccess, sid.BuiltinAdministrators),
		NewAce(SystemAudit, FlagSuccessfulAccess|FlagFailedAccess, GenericAll, sid.Everyone),
		NewAce(AccessAllowed, FlagInherited, GenericRead, sid.Everyone),
	}
	orig := New(RevisionBasic, aces)

	raw, err := orig.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	view, err := ParseView(raw)
	if err != nil {
		t.Fatalf("ParseView: %v", err)
	}
	if !view.Acl().Equal(orig) {
		t.Error("binary round trip changed the ACL")
	}
}

// Callback, resource attribute, trust label and access filter entries are
// interpreted structurally, not carried as opaque bodies.
func TestAcl_BinaryRoundTrip_CallbackAndLabelTypes(t *testing.T) {
	aces := []Ace{
		NewAce(AccessAllowedCallback, 0, GenericRead, sid.Everyone),
		NewAce(AccessAllowedCallbackObject, 0, GenericRead, sid.Everyone),
		NewAce(SystemResourceAttribute, 0, 0, sid.Everyone),
		NewAce(SystemProcessTrustLabel, 0, 0, sid.Everyone),
		NewAce(SystemAccessFilter, 0, 0, sid.Everyone),
	}
	orig := New(RevisionObject, aces)

	raw, err := orig.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	view, err := ParseView(raw)
	if err != nil {
		t.Fatalf("ParseView: %v", err)
	}
	if !view.Acl().Equal(orig) {
		t.Error("binary round trip changed the ACL")
	}

	for i := uint32(0); i < view.Len(); i++ {
		a := view.Get(i)
		if a.TrusteeSID() == nil {
			t.Errorf("entry %d (%s): nil trustee after decode", i, a.AceType())
		}
		if a.OpaqueBody() != nil {
			t.Errorf("entry %d (%s): decoded as opaque", i, a.AceType())
		}
	}
}

// Bytes after the trustee in a callback entry (the conditional expression)
// survive a decode/encode cycle unchanged.
func TestAcl_BinaryRoundTrip_ApplicationData(t *testing.T) {
	// One AccessAllowedCallback ACE over Everyone (S-1-1-0) with a 4-byte
	// payload after the SID.
	raw := []byte{
		RevisionBasic, 0x00, 0x20, 0x00, 0x01, 0x00, 0x00, 0x00, // ACL header
		0x09, 0x00, 0x18, 0x00, // ACE header: callback allow, size 24
		0x00, 0x00, 0x00, 0x80, // mask: GenericRead
		0x01, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, // S-1-1-0
		0xAA, 0xBB, 0xCC, 0xDD, // application data
	}

	view, err := ParseView(raw)
	if err != nil {
		t.Fatalf("ParseView: %v", err)
	}
	a := view.Get(0)
	if a == nil || a.AceType() != AccessAllowedCallback {
		t.Fatalf("Get(0) = %v, want callback allow entry", a)
	}
	if !a.TrusteeSID().Equal(sid.Everyone) || a.AccessMask() != GenericRead {
		t.Errorf("decoded entry = %s, want GenericRead for Everyone", a)
	}
	got := a.ApplicationData()
	want := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	if len(got) != len(want) {
		t.Fatalf("ApplicationData() = %x, want %x", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ApplicationData() = %x, want %x", got, want)
		}
	}

	encoded, err := view.Acl().MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if len(encoded) != len(raw) {
		t.Fatalf("re-encoded length = %d, want %d", len(encoded), len(raw))
	}
	for i := range raw {
		if encoded[i] != raw[i] {
			t.Fatalf("re-encoded bytes differ at %d: %x vs %x", i, encoded, raw)
		}
	}
}
