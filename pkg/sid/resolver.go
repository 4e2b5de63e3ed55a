package sid

import "errors"

// ErrUnknownPrincipal is returned by resolvers that cannot map a SID or name.
var ErrUnknownPrincipal = errors.New("sid: unknown principal")

// NameResolver maps between SIDs and human-readable account names.
// Actual resolution (LSA lookups, directory queries) lives outside this
// module; this interface is how callers plug one in.
type NameResolver interface {
	// LookupName returns the account name for a SID.
	LookupName(s *SID) (string, error)

	// LookupSID returns the SID for an account name.
	LookupSID(name string) (*SID, error)
}

// StaticResolver resolves only the well-known SIDs this package ships.
// Use it when no host-backed resolver is available.
type StaticResolver struct{}

// LookupName returns the built-in display name for well-known SIDs.
func (StaticResolver) LookupName(s *SID) (string, error) {
	if name, ok := WellKnownName(s); ok {
		return name, nil
	}
	return "", ErrUnknownPrincipal
}

// LookupSID parses aliases and S- notation; it never consults the host.
func (StaticResolver) LookupSID(name string) (*SID, error) {
	s, err := Parse(name)
	if err != nil {
		return nil, ErrUnknownPrincipal
	}
	return s, nil
}
