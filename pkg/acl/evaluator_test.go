package acl

import (
	"testing"

	"github.com/backkem/winsd/pkg/sid"
)

var (
	testUser  = sid.MustParse("S-1-5-21-100-200-300-1001")
	otherUser = sid.MustParse("S-1-5-21-100-200-300-1002")
)

func TestEffectiveRights_AbsentAcl(t *testing.T) {
	// A missing DACL denies everything.
	if got := EffectiveRights(nil, testUser); got != 0 {
		t.Errorf("EffectiveRights(nil, user) = %s, want 0", got)
	}
}

func TestEffectiveRights_EmptyAcl(t *testing.T) {
	// Present-but-empty also yields nothing, via the normal path.
	a := New(RevisionBasic, nil)
	if got := EffectiveRights(a, testUser); got != 0 {
		t.Errorf("EffectiveRights(empty, user) = %s, want 0", got)
	}
}

func TestEffectiveRights_NoMatchingEntries(t *testing.T) {
	a := New(RevisionBasic, []Ace{
		NewAce(AccessAllowed, 0, GenericAll, otherUser),
	})
	if got := EffectiveRights(a, testUser); got != 0 {
		t.Errorf("EffectiveRights = %s, want 0", got)
	}
}

func TestEffectiveRights_SimpleAllow(t *testing.T) {
	a := New(RevisionBasic, []Ace{
		NewAce(AccessAllowed, 0, GenericRead|GenericExecute, testUser),
	})
	if got := EffectiveRights(a, testUser); got != GenericRead|GenericExecute {
		t.Errorf("EffectiveRights = %s", got)
	}
}

func TestEffectiveRights_DenyBeatsLaterAllow(t *testing.T) {
	// Explicit deny followed by an explicit allow of a superset: the denied
	// bits stay excluded, the rest of the superset is granted.
	a := New(RevisionBasic, []Ace{
		NewAce(AccessDenied, 0, GenericWrite, testUser),
		NewAce(AccessAllowed, 0, GenericRead|GenericWrite|GenericExecute, testUser),
	})

	got := EffectiveRights(a, testUser)
	if got.Has(GenericWrite) {
		t.Errorf("denied bit leaked into result: %s", got)
	}
	if got != GenericRead|GenericExecute {
		t.Errorf("EffectiveRights = %s, want %s", got, GenericRead|GenericExecute)
	}
}

func TestEffectiveRights_AllowBeforeDenyKeepsBit(t *testing.T) {
	// Within a group the list order decides: a bit granted first is settled
	// and a later deny cannot take it back.
	a := New(RevisionBasic, []Ace{
		NewAce(AccessAllowed, 0, GenericRead, testUser),
		NewAce(AccessDenied, 0, GenericRead, testUser),
	})
	if got := EffectiveRights(a, testUser); got != GenericRead {
		t.Errorf("EffectiveRights = %s, want %s", got, GenericRead)
	}
}

func TestEffectiveRights_DenyOnly(t *testing.T) {
	a := New(RevisionBasic, []Ace{
		NewAce(AccessDenied, 0, GenericAll, testUser),
	})
	if got := EffectiveRights(a, testUser); got != 0 {
		t.Errorf("EffectiveRights = %s, want 0 (nothing was ever allowed)", got)
	}
}

func TestEffectiveRights_ExplicitBeatsInherited(t *testing.T) {
	// The inherited deny sits physically first; the explicit allow must
	// still win because grouping goes by the flag, not the position.
	a := New(RevisionBasic, []Ace{
		NewAce(AccessDenied, FlagInherited, GenericRead, testUser),
		NewAce(AccessAllowed, 0, GenericRead, testUser),
	})
	if got := EffectiveRights(a, testUser); got != GenericRead {
		t.Errorf("EffectiveRights = %s, want %s", got, GenericRead)
	}

	// And the mirror: explicit deny blocks an inherited allow.
	a = New(RevisionBasic, []Ace{
		NewAce(AccessAllowed, FlagInherited, GenericRead|GenericWrite, testUser),
		NewAce(AccessDenied, 0, GenericWrite, testUser),
	})
	if got := EffectiveRights(a, testUser); got != GenericRead {
		t.Errorf("EffectiveRights = %s, want %s", got, GenericRead)
	}
}

func TestEffectiveRights_InheritedGroupOrder(t *testing.T) {
	a := New(RevisionBasic, []Ace{
		NewAce(AccessDenied, FlagInherited, GenericWrite, testUser),
		NewAce(AccessAllowed, FlagInherited, GenericRead|GenericWrite, testUser),
	})
	if got := EffectiveRights(a, testUser); got != GenericRead {
		t.Errorf("EffectiveRights = %s, want %s", got, GenericRead)
	}
}

func TestEffectiveRights_GroupMembership(t *testing.T) {
	// An Everyone entry matches an arbitrary trustee via membership.
	a := New(RevisionBasic, []Ace{
		NewAce(AccessAllowed, 0, GenericRead, sid.Everyone),
	})
	if got := EffectiveRights(a, testUser); got != GenericRead {
		t.Errorf("EffectiveRights via Everyone = %s, want %s", got, GenericRead)
	}

	// Membership is one-way: an entry for a specific user does not match a
	// query for Everyone.
	a = New(RevisionBasic, []Ace{
		NewAce(AccessAllowed, 0, GenericRead, testUser),
	})
	if got := EffectiveRights(a, sid.Everyone); got != 0 {
		t.Errorf("EffectiveRights(user entry, Everyone) = %s, want 0", got)
	}
}

func TestEffectiveRights_AuditEntriesSkipped(t *testing.T) {
	// Audit entries must be stepped over, not misread as allow or deny.
	a := New(RevisionBasic, []Ace{
		NewAce(SystemAudit, FlagFailedAccess, GenericAll, testUser),
		NewAce(AccessAllowed, 0, GenericRead, testUser),
		NewAce(SystemAudit, FlagSuccessfulAccess, GenericWrite, testUser),
	})
	if got := EffectiveRights(a, testUser); got != GenericRead {
		t.Errorf("EffectiveRights = %s, want %s", got, GenericRead)
	}
}

func TestEffectiveRights_ZeroMaskEntries(t *testing.T) {
	// A zero-mask allow matches but grants nothing; it must not disturb
	// later entries.
	a := New(RevisionBasic, []Ace{
		NewAce(AccessAllowed, 0, 0, testUser),
		NewAce(AccessAllowed, 0, GenericRead, testUser),
	})
	if got := EffectiveRights(a, testUser); got != GenericRead {
		t.Errorf("EffectiveRights = %s, want %s", got, GenericRead)
	}
}

func TestHasAccess(t *testing.T) {
	a := New(RevisionBasic, []Ace{
		NewAce(AccessAllowed, 0, GenericRead|GenericExecute, testUser),
	})

	if !HasAccess(a, testUser, GenericRead) {
		t.Error("HasAccess(GenericRead) = false")
	}
	if HasAccess(a, testUser, GenericRead|GenericWrite) {
		t.Error("HasAccess(GenericRead|GenericWrite) = true")
	}
	if !HasAccess(a, testUser, 0) {
		t.Error("HasAccess(zero mask) should be trivially true")
	}
}
