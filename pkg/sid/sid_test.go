package sid

import (
	"errors"
	"testing"
)

func TestParse_Notation(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"S-1-1-0", "S-1-1-0"},
		{"S-1-5-18", "S-1-5-18"},
		{"S-1-5-32-544", "S-1-5-32-544"},
		{"S-1-5-21-1004336348-1177238915-682003330-512", "S-1-5-21-1004336348-1177238915-682003330-512"},
		{"S-1-0x123456789012-1", "S-1-0x123456789012-1"},
		{"s-1-5-18", "S-1-5-18"},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.input, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("Parse(%q).String() = %q, want %q", tt.input, got.String(), tt.want)
		}
	}
}

func TestParse_Aliases(t *testing.T) {
	tests := []struct {
		alias string
		want  string
	}{
		{"WD", "S-1-1-0"},
		{"SY", "S-1-5-18"},
		{"BA", "S-1-5-32-544"},
		{"BU", "S-1-5-32-545"},
		{"AU", "S-1-5-11"},
		{"AN", "S-1-5-7"},
		{"CO", "S-1-3-0"},
		{"LS", "S-1-5-19"},
		{"NS", "S-1-5-20"},
		{"HI", "S-1-16-12288"},
	}

	for _, tt := range tests {
		got, err := Parse(tt.alias)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.alias, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("Parse(%q).String() = %q, want %q", tt.alias, got.String(), tt.want)
		}

		// Reverse lookup must agree.
		alias, ok := got.Alias()
		if !ok || alias != tt.alias {
			t.Errorf("Parse(%q).Alias() = %q, %v, want %q, true", tt.alias, alias, ok, tt.alias)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"QQ",
		"S-",
		"S-1",
		"S-2-5-18",                // bad revision
		"S-1-5-notanumber",        // bad sub-authority
		"S-1-99999999999999999-1", // authority over 48 bits
		"S-1-5-1-2-3-4-5-6-7-8-9-10-11-12-13-14-15-16", // too many sub-authorities
	}

	for _, input := range inputs {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
		}
	}
}

func TestSID_Equal(t *testing.T) {
	a := MustParse("S-1-5-32-544")
	b := MustParse("BA")
	c := MustParse("S-1-5-32-545")

	if !a.Equal(b) {
		t.Error("S-1-5-32-544 should equal BA")
	}
	if a.Equal(c) {
		t.Error("S-1-5-32-544 should not equal S-1-5-32-545")
	}
	if a.Equal(nil) {
		t.Error("SID should not equal nil")
	}
}

func TestSID_Contains(t *testing.T) {
	user := MustParse("S-1-5-21-1-2-3-1001")

	tests := []struct {
		name    string
		group   *SID
		trustee *SID
		want    bool
	}{
		{"everyone contains arbitrary user", Everyone, user, true},
		{"everyone contains system", Everyone, LocalSystem, true},
		{"everyone contains itself", Everyone, Everyone, true},
		{"user does not contain everyone", user, Everyone, false},
		{"authenticated users contains NT principal", AuthenticatedUsers, user, true},
		{"authenticated users does not contain creator owner", AuthenticatedUsers, CreatorOwner, false},
		{"exact match", user, user.Clone(), true},
		{"unrelated", BuiltinAdministrators, user, false},
	}

	for _, tt := range tests {
		if got := tt.group.Contains(tt.trustee); got != tt.want {
			t.Errorf("%s: Contains() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSID_BinaryRoundTrip(t *testing.T) {
	inputs := []string{
		"S-1-1-0",
		"S-1-5-18",
		"S-1-5-32-544",
		"S-1-5-21-1004336348-1177238915-682003330-512",
	}

	for _, input := range inputs {
		orig := MustParse(input)
		data, err := orig.MarshalBinary()
		if err != nil {
			t.Fatalf("MarshalBinary(%s): %v", input, err)
		}

		var got SID
		if err := got.UnmarshalBinary(data); err != nil {
			t.Fatalf("UnmarshalBinary(%s): %v", input, err)
		}
		if !got.Equal(orig) {
			t.Errorf("round trip of %s produced %s", input, got.String())
		}
	}
}

func TestSID_UnmarshalBinaryInvalid(t *testing.T) {
	valid, err := MustParse("S-1-5-32-544").MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short header", valid[:4]},
		{"truncated sub-authorities", valid[:len(valid)-2]},
		{"trailing bytes", append(append([]byte{}, valid...), 0xFF)},
		{"bad revision", append([]byte{9}, valid[1:]...)},
		{"count too large", func() []byte {
			b := append([]byte{}, valid...)
			b[1] = MaxSubAuthorities + 1
			return b
		}()},
	}

	for _, tt := range tests {
		var s SID
		if err := s.UnmarshalBinary(tt.data); err == nil {
			t.Errorf("%s: UnmarshalBinary succeeded, want error", tt.name)
		} else if !errors.Is(err, ErrInvalidBinarySID) && !errors.Is(err, ErrTooManySubAuths) {
			t.Errorf("%s: error %v is not a binary SID error", tt.name, err)
		}
	}
}

func TestDecode_Embedded(t *testing.T) {
	orig := MustParse("S-1-5-32-544")
	data, err := orig.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	// Decode must stop at the SID boundary even with trailing data.
	padded := append(append([]byte{}, data...), 0xAA, 0xBB, 0xCC)
	got, n, err := Decode(padded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != len(data) {
		t.Errorf("Decode consumed %d bytes, want %d", n, len(data))
	}
	if !got.Equal(orig) {
		t.Errorf("Decode produced %s, want %s", got.String(), orig.String())
	}
}

func TestWellKnownName(t *testing.T) {
	name, ok := WellKnownName(Everyone)
	if !ok || name != "Everyone" {
		t.Errorf("WellKnownName(Everyone) = %q, %v", name, ok)
	}

	if _, ok := WellKnownName(MustParse("S-1-5-21-1-2-3-1001")); ok {
		t.Error("WellKnownName should not know arbitrary domain SIDs")
	}
}

func TestStaticResolver(t *testing.T) {
	var r StaticResolver

	name, err := r.LookupName(LocalSystem)
	if err != nil || name != "NT AUTHORITY\\SYSTEM" {
		t.Errorf("LookupName(SY) = %q, %v", name, err)
	}

	if _, err := r.LookupName(MustParse("S-1-5-21-1-2-3-500")); !errors.Is(err, ErrUnknownPrincipal) {
		t.Errorf("LookupName(domain SID) error = %v, want ErrUnknownPrincipal", err)
	}

	s, err := r.LookupSID("BA")
	if err != nil || !s.Equal(BuiltinAdministrators) {
		t.Errorf("LookupSID(BA) = %v, %v", s, err)
	}
}
