package acl

import "github.com/backkem/winsd/pkg/sid"

// EffectiveRights determines the access mask a trustee effectively holds
// under an ACL, following the Windows canonical precedence rules:
// explicit deny > explicit allow > inherited deny > inherited allow.
//
// Entries are grouped by their Inherited flag, not by position: all explicit
// entries are evaluated before any inherited entry even when the list is not
// in canonical order. Within each group the original order is kept. For a
// matching deny entry, every bit of its mask not yet settled is removed from
// consideration permanently; a later allow cannot restore it. For a matching
// allow entry, every unsettled bit is granted and settled. Audit-class and
// uninterpreted entries are skipped.
//
// The function is pure and never fails: an absent ACL (nil entries), a
// trustee matching no entries, and a trustee matched only by denies all
// yield the zero mask. A nil DACL denies all access by platform convention,
// which the zero result expresses.
func EffectiveRights(entries Entries, trustee *sid.SID) AccessMask {
	if entries == nil || trustee == nil {
		return 0
	}

	var granted, settled AccessMask

	apply := func(inherited bool) {
		n := entries.Len()
		for i := uint32(0); i < n; i++ {
			ace := entries.Get(i)
			if ace == nil || ace.Flags.Inherited() != inherited {
				continue
			}
			if !ace.Type.IsAllowClass() && !ace.Type.IsDenyClass() {
				continue
			}
			if ace.Trustee == nil || !ace.Trustee.Contains(trustee) {
				continue
			}

			fresh := ace.Mask &^ settled
			if ace.Type.IsAllowClass() {
				granted |= fresh
			}
			// Deny settles its bits as not-granted; allow settles
			// its bits as granted. Either way they are final.
			settled |= fresh
		}
	}

	apply(false)
	apply(true)

	return granted
}

// HasAccess reports whether the trustee effectively holds every bit of the
// desired mask. A zero desired mask is trivially held.
func HasAccess(entries Entries, trustee *sid.SID, desired AccessMask) bool {
	return EffectiveRights(entries, trustee).Has(desired)
}
