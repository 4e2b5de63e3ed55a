package sddl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/backkem/winsd/pkg/acl"
	"github.com/backkem/winsd/pkg/secdesc"
	"github.com/backkem/winsd/pkg/sid"
	"github.com/google/uuid"
)

// sectionKind distinguishes the two list sections for entry-type checks.
type sectionKind byte

const (
	sectionDacl sectionKind = iota
	sectionSacl
)

// Parse converts an SDDL string into a security descriptor. Section order
// in the input is free, but each section may appear at most once and entry
// order within a list is preserved exactly. On any malformed token the
// whole parse fails: no partial descriptor is ever returned.
func Parse(s string) (*secdesc.SecurityDescriptor, error) {
	p := parser{input: s}
	if err := p.run(); err != nil {
		return nil, err
	}
	return secdesc.New(p.owner, p.group, p.dacl, p.sacl, p.control), nil
}

type parser struct {
	input string
	pos   int

	owner   *sid.SID
	group   *sid.SID
	dacl    *acl.Acl
	sacl    *acl.Acl
	control secdesc.Control

	seen [4]bool // O, G, D, S
}

func (p *parser) run() error {
	for p.pos < len(p.input) {
		if p.pos+1 >= len(p.input) || p.input[p.pos+1] != ':' {
			return syntaxErrf(p.pos, "expected section label, found %q", p.remainder(8))
		}
		label := p.input[p.pos]
		start := p.pos
		p.pos += 2

		switch label {
		case 'O':
			if err := p.checkSeen(0, start, "O"); err != nil {
				return err
			}
			s, err := p.parseTrusteeValue()
			if err != nil {
				return err
			}
			p.owner = s
		case 'G':
			if err := p.checkSeen(1, start, "G"); err != nil {
				return err
			}
			s, err := p.parseTrusteeValue()
			if err != nil {
				return err
			}
			p.group = s
		case 'D':
			if err := p.checkSeen(2, start, "D"); err != nil {
				return err
			}
			list, err := p.parseListSection(sectionDacl)
			if err != nil {
				return err
			}
			p.dacl = list
		case 'S':
			if err := p.checkSeen(3, start, "S"); err != nil {
				return err
			}
			list, err := p.parseListSection(sectionSacl)
			if err != nil {
				return err
			}
			p.sacl = list
		default:
			return syntaxErrf(start, "unknown section label %q", string(label))
		}
	}
	return nil
}

func (p *parser) checkSeen(idx int, pos int, label string) error {
	if p.seen[idx] {
		return syntaxErrf(pos, "duplicate %s: section", label)
	}
	p.seen[idx] = true
	return nil
}

// remainder returns up to n characters of unconsumed input, for error text.
func (p *parser) remainder(n int) string {
	rest := p.input[p.pos:]
	if len(rest) > n {
		rest = rest[:n]
	}
	return rest
}

// atSectionBoundary reports whether the cursor sits at the start of the
// next section label.
func (p *parser) atSectionBoundary() bool {
	if p.pos+1 >= len(p.input) || p.input[p.pos+1] != ':' {
		return false
	}
	switch p.input[p.pos] {
	case 'O', 'G', 'D', 'S':
		return true
	}
	return false
}

// parseTrusteeValue reads the SID token of an O: or G: section, which runs
// until the next section label or the end of input.
func (p *parser) parseTrusteeValue() (*sid.SID, error) {
	start := p.pos
	end := len(p.input)
	if idx := strings.IndexByte(p.input[p.pos:], ':'); idx >= 0 {
		// The character before the colon is the next section's label.
		end = p.pos + idx - 1
	}
	if end <= start {
		return nil, syntaxErrf(start, "empty SID value")
	}
	token := p.input[start:end]
	s, err := sid.Parse(token)
	if err != nil {
		return nil, syntaxErrf(start, "bad SID %q: %v", token, err)
	}
	p.pos = end
	return s, nil
}

// parseListSection reads the control-flag mnemonics and the parenthesized
// entries of a D: or S: section. A label with zero entries yields a
// present-but-empty ACL.
func (p *parser) parseListSection(kind sectionKind) (*acl.Acl, error) {
	p.parseListControlFlags(kind)

	var aces []acl.Ace
	revision := acl.RevisionBasic
	for p.pos < len(p.input) && p.input[p.pos] == '(' {
		entryStart := p.pos
		end := strings.IndexByte(p.input[p.pos:], ')')
		if end < 0 {
			return nil, syntaxErrf(entryStart, "unterminated ACE")
		}
		inner := p.input[p.pos+1 : p.pos+end]
		a, err := p.parseAce(entryStart+1, inner, kind)
		if err != nil {
			return nil, err
		}
		if a.Type.IsObjectType() {
			revision = acl.RevisionObject
		}
		aces = append(aces, a)
		p.pos += end + 1
	}

	if p.pos < len(p.input) && !p.atSectionBoundary() {
		return nil, syntaxErrf(p.pos, "expected ACE or section label, found %q", p.remainder(8))
	}
	return acl.New(revision, aces), nil
}

// parseListControlFlags consumes the optional P/AR/AI mnemonics that may
// precede a section's entries and folds them into the control word.
func (p *parser) parseListControlFlags(kind sectionKind) {
	tokens := daclControlTokens
	if kind == sectionSacl {
		tokens = saclControlTokens
	}
	for {
		// No control token is a prefix of another and none begins a
		// section label, so greedy matching cannot half-consume anything.
		matched := false
		for _, ct := range tokens {
			if strings.HasPrefix(p.input[p.pos:], ct.tok) {
				p.control |= ct.bits
				p.pos += len(ct.tok)
				matched = true
				break
			}
		}
		if !matched {
			return
		}
	}
}

// parseAce decodes one parenthesized record. base is the position of the
// first byte after '(' in the original input, inner the record body.
func (p *parser) parseAce(base int, inner string, kind sectionKind) (acl.Ace, error) {
	fields := strings.Split(inner, ";")
	if len(fields) != 6 {
		return acl.Ace{}, syntaxErrf(base, "ACE has %d fields, want 6", len(fields))
	}

	// Byte offset of each field within the input, for error positions.
	offsets := make([]int, len(fields))
	off := base
	for i, f := range fields {
		offsets[i] = off
		off += len(f) + 1
	}

	aceType, ok := aceTypeTokens[fields[0]]
	if !ok {
		return acl.Ace{}, syntaxErrf(offsets[0], "unknown ACE type %q", fields[0])
	}
	if err := checkSectionType(aceType, kind); err != nil {
		return acl.Ace{}, err
	}

	flags, err := parseAceFlags(offsets[1], fields[1])
	if err != nil {
		return acl.Ace{}, err
	}

	mask, err := parseRights(offsets[2], fields[2])
	if err != nil {
		return acl.Ace{}, err
	}

	objType, err := parseGUIDField(offsets[3], fields[3], aceType)
	if err != nil {
		return acl.Ace{}, err
	}
	inhObjType, err := parseGUIDField(offsets[4], fields[4], aceType)
	if err != nil {
		return acl.Ace{}, err
	}

	trustee, err := sid.Parse(fields[5])
	if err != nil {
		return acl.Ace{}, syntaxErrf(offsets[5], "bad trustee %q: %v", fields[5], err)
	}

	a := acl.NewAce(aceType, flags, mask, trustee)
	a.ObjectType = objType
	a.InheritedObjectType = inhObjType
	return a, nil
}

// checkSectionType enforces list/type compatibility: discretionary lists
// hold allow/deny entries, system lists hold audit-class entries. A valid
// mnemonic in the wrong list is rejected, not silently accepted.
func checkSectionType(t acl.AceType, kind sectionKind) error {
	switch kind {
	case sectionDacl:
		if t.IsAllowClass() || t.IsDenyClass() {
			return nil
		}
		return fmt.Errorf("%w: %s in DACL", ErrUnsupportedEntryForSection, t)
	default:
		if t.IsAuditClass() {
			return nil
		}
		return fmt.Errorf("%w: %s in SACL", ErrUnsupportedEntryForSection, t)
	}
}

func parseAceFlags(pos int, field string) (acl.AceFlags, error) {
	var flags acl.AceFlags
	for i := 0; i < len(field); i += 2 {
		if i+2 > len(field) {
			return 0, syntaxErrf(pos+i, "dangling ACE flag character %q", field[i:])
		}
		bit, ok := aceFlagTokens[field[i:i+2]]
		if !ok {
			return 0, syntaxErrf(pos+i, "unknown ACE flag %q", field[i:i+2])
		}
		flags |= bit
	}
	return flags, nil
}

func parseRights(pos int, field string) (acl.AccessMask, error) {
	if field == "" {
		return 0, nil
	}
	if field[0] >= '0' && field[0] <= '9' {
		v, err := strconv.ParseUint(field, 0, 32)
		if err != nil {
			return 0, syntaxErrf(pos, "bad rights value %q", field)
		}
		return acl.AccessMask(v), nil
	}
	var mask acl.AccessMask
	for i := 0; i < len(field); i += 2 {
		if i+2 > len(field) {
			return 0, syntaxErrf(pos+i, "dangling rights character %q", field[i:])
		}
		bits, ok := rightsTokens[field[i:i+2]]
		if !ok {
			return 0, syntaxErrf(pos+i, "unknown rights mnemonic %q", field[i:i+2])
		}
		mask |= bits
	}
	return mask, nil
}

func parseGUIDField(pos int, field string, t acl.AceType) (*uuid.UUID, error) {
	if field == "" {
		return nil, nil
	}
	if !t.IsObjectType() {
		return nil, syntaxErrf(pos, "object GUID on non-object type %s", t)
	}
	g, err := uuid.Parse(field)
	if err != nil {
		return nil, syntaxErrf(pos, "bad GUID %q", field)
	}
	return &g, nil
}
