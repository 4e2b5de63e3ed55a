package sddl

import (
	"fmt"
	"strings"

	"github.com/backkem/winsd/pkg/acl"
	"github.com/backkem/winsd/pkg/secdesc"
	"github.com/backkem/winsd/pkg/sid"
)

// Serialize renders a descriptor as SDDL in canonical section order
// (owner, group, DACL, SACL). Entry order within each list is emitted
// exactly as stored. Well-known SIDs come out as their two-letter aliases
// and exact-match rights masks as mnemonics; everything else falls back to
// the S- notation and hex, which re-parses to the same semantic value.
//
// Serialization fails with ErrNotRepresentable for entries this grammar
// cannot spell: types without an SDDL mnemonic, entries without a trustee,
// and entries carrying binary application data. Parse never produces such
// a descriptor.
func Serialize(sd *secdesc.SecurityDescriptor) (string, error) {
	var b strings.Builder

	if owner := sd.Owner(); owner != nil {
		b.WriteString("O:")
		b.WriteString(sidToken(owner))
	}
	if group := sd.Group(); group != nil {
		b.WriteString("G:")
		b.WriteString(sidToken(group))
	}
	if dacl := sd.Dacl(); dacl != nil {
		b.WriteString("D:")
		writeListControlFlags(&b, sd.ControlFlags(), daclControlTokens)
		if err := writeAces(&b, dacl); err != nil {
			return "", err
		}
	}
	if sacl := sd.Sacl(); sacl != nil {
		b.WriteString("S:")
		writeListControlFlags(&b, sd.ControlFlags(), saclControlTokens)
		if err := writeAces(&b, sacl); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func sidToken(s *sid.SID) string {
	if alias, ok := s.Alias(); ok {
		return alias
	}
	return s.String()
}

func writeListControlFlags(b *strings.Builder, control secdesc.Control, tokens []controlToken) {
	for _, ct := range tokens {
		if control.Has(ct.bits) {
			b.WriteString(ct.tok)
		}
	}
}

func writeAces(b *strings.Builder, list *acl.Acl) error {
	for i := uint32(0); i < list.Len(); i++ {
		a := list.Get(i)

		typeTok, ok := aceTypeNames[a.Type]
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotRepresentable, a.Type)
		}
		if a.Trustee == nil {
			return fmt.Errorf("%w: %s entry has no trustee", ErrNotRepresentable, a.Type)
		}
		// Conditional expressions and resource claims have no spelling in
		// this grammar; refuse rather than drop them.
		if len(a.ApplicationData()) > 0 {
			return fmt.Errorf("%w: %s entry carries application data", ErrNotRepresentable, a.Type)
		}

		b.WriteByte('(')
		b.WriteString(typeTok)
		b.WriteByte(';')
		for _, ft := range aceFlagOrder {
			if a.Flags.Has(ft.flag) {
				b.WriteString(ft.tok)
			}
		}
		b.WriteByte(';')
		b.WriteString(rightsToken(a.Mask))
		b.WriteByte(';')
		if a.ObjectType != nil {
			b.WriteString(a.ObjectType.String())
		}
		b.WriteByte(';')
		if a.InheritedObjectType != nil {
			b.WriteString(a.InheritedObjectType.String())
		}
		b.WriteByte(';')
		b.WriteString(sidToken(a.Trustee))
		b.WriteByte(')')
	}
	return nil
}

// rightsToken renders a mask as a single mnemonic on an exact match, the
// empty string for zero, and hex otherwise. Decomposing into concatenated
// mnemonics is deliberately avoided: hex is unambiguous and re-parses to
// the identical mask.
func rightsToken(mask acl.AccessMask) string {
	if mask == 0 {
		return ""
	}
	for _, rt := range rightsNames {
		if mask == rt.mask {
			return rt.tok
		}
	}
	return fmt.Sprintf("0x%x", uint32(mask))
}
