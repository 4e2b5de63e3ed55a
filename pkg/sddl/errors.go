package sddl

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is the class of all syntax errors. The concrete error is
	// a *SyntaxError carrying the position; errors.Is against ErrMalformed
	// matches it.
	ErrMalformed = errors.New("sddl: malformed descriptor string")

	// ErrUnsupportedEntryForSection is returned when an entry type is valid
	// SDDL but not legal in its containing list, such as an allow entry
	// inside a SACL.
	ErrUnsupportedEntryForSection = errors.New("sddl: entry type not valid for its section")

	// ErrNotRepresentable is returned by Serialize for entries whose type
	// has no SDDL mnemonic.
	ErrNotRepresentable = errors.New("sddl: entry type has no SDDL representation")
)

// SyntaxError reports a malformed token and where it sits in the input.
type SyntaxError struct {
	// Pos is the byte offset of the offending token in the input string.
	Pos int

	// Reason describes what was expected or found.
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("sddl: malformed descriptor at position %d: %s", e.Pos, e.Reason)
}

// Unwrap lets errors.Is(err, ErrMalformed) classify syntax errors.
func (e *SyntaxError) Unwrap() error {
	return ErrMalformed
}

func syntaxErrf(pos int, format string, args ...interface{}) error {
	return &SyntaxError{Pos: pos, Reason: fmt.Sprintf(format, args...)}
}
