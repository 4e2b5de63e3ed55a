package acl

// ACL revision values. Revision 2 covers the basic ACE types; revision 4 is
// required once object ACEs appear. The evaluator ignores the revision; it
// is carried for round-trip fidelity.
// Spec: [MS-DTYP] 2.4.5
const (
	RevisionBasic  byte = 2
	RevisionObject byte = 4
)

// Entries is an ordered, indexable ACE sequence. Both the owned Acl and the
// borrowed View satisfy it, so the effective-rights evaluator works over
// either without copying.
type Entries interface {
	// Len returns the number of entries.
	Len() uint32

	// Get returns the entry at index, or nil when index >= Len().
	// An out-of-range index is a normal outcome, never a panic.
	Get(index uint32) *Ace
}

// Acl is an owned, ordered sequence of ACEs. Order is semantically
// load-bearing: it determines evaluation precedence, and construction
// preserves it exactly. Immutable after construction.
type Acl struct {
	revision byte
	aces     []Ace
}

// New builds an ACL from a sequence of ACEs, in the given order. The slice
// and every entry are copied; no sorting, deduplication, or coalescing
// happens here or anywhere else. A nil or empty sequence yields a valid
// empty ACL (present-but-empty, distinct from an absent ACL which callers
// represent as a nil *Acl).
func New(revision byte, aces []Ace) *Acl {
	a := &Acl{revision: revision, aces: make([]Ace, 0, len(aces))}
	for i := range aces {
		a.aces = append(a.aces, aces[i].clone())
	}
	return a
}

// Revision returns the ACL revision tag.
func (a *Acl) Revision() byte {
	return a.revision
}

// Len returns the number of entries. It always equals the number of indices
// for which Get returns a non-nil entry.
func (a *Acl) Len() uint32 {
	return uint32(len(a.aces))
}

// Get returns the entry at index, or nil when the index is out of range.
func (a *Acl) Get(index uint32) *Ace {
	if index >= uint32(len(a.aces)) {
		return nil
	}
	return &a.aces[index]
}

// Equal reports whether both ACLs hold equal entries in the same order.
// The revision tag participates: two ACLs differing only in revision are
// not equal.
func (a *Acl) Equal(other *Acl) bool {
	if a == nil || other == nil {
		return a == other
	}
	if a.revision != other.revision || len(a.aces) != len(other.aces) {
		return false
	}
	for i := range a.aces {
		if !a.aces[i].Equal(&other.aces[i]) {
			return false
		}
	}
	return true
}
