// winsd-inspect parses a Windows security descriptor and prints its
// structure, or evaluates the rights a trustee holds on it.
//
// Usage:
//
//	winsd-inspect [options]
//
// Options:
//
//	-sddl     Descriptor in SDDL form
//	-in       Path to a self-relative binary descriptor
//	-trustee  Trustee to evaluate (SDDL alias or S- notation)
//	-emit     Re-emit the descriptor: "sddl" or "binary"
//
// Exactly one of -sddl and -in is required. With -trustee the tool
// prints the effective access mask instead of the structure dump.
//
// Example:
//
//	winsd-inspect -sddl "O:BAG:SYD:(A;;GR;;;WD)" -trustee WD
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/backkem/winsd/pkg/acl"
	"github.com/backkem/winsd/pkg/secdesc"
	"github.com/backkem/winsd/pkg/sddl"
	"github.com/backkem/winsd/pkg/sid"
)

func main() {
	var (
		sddlText = flag.String("sddl", "", "descriptor in SDDL form")
		inPath   = flag.String("in", "", "path to a self-relative binary descriptor")
		trustee  = flag.String("trustee", "", "trustee to evaluate (alias or S- notation)")
		emit     = flag.String("emit", "", `re-emit the descriptor: "sddl" or "binary"`)
	)
	flag.Parse()

	sd, err := load(*sddlText, *inPath)
	if err != nil {
		log.Fatalf("Failed to load descriptor: %v", err)
	}

	switch {
	case *trustee != "":
		if err := evaluate(sd, *trustee); err != nil {
			log.Fatalf("Failed to evaluate access: %v", err)
		}
	case *emit != "":
		if err := reEmit(sd, *emit); err != nil {
			log.Fatalf("Failed to emit descriptor: %v", err)
		}
	default:
		dump(sd)
	}
}

func load(sddlText, inPath string) (*secdesc.SecurityDescriptor, error) {
	switch {
	case sddlText != "" && inPath != "":
		return nil, fmt.Errorf("-sddl and -in are mutually exclusive")
	case sddlText != "":
		return sddl.Parse(sddlText)
	case inPath != "":
		data, err := os.ReadFile(inPath)
		if err != nil {
			return nil, err
		}
		return secdesc.ParseBinary(data)
	default:
		return nil, fmt.Errorf("one of -sddl or -in is required")
	}
}

func evaluate(sd *secdesc.SecurityDescriptor, trustee string) error {
	t, err := sid.Parse(trustee)
	if err != nil {
		return err
	}

	granted := sd.EffectiveRights(t)
	fmt.Printf("trustee: %s\n", principal(t))
	fmt.Printf("granted: %s\n", granted)
	return nil
}

func reEmit(sd *secdesc.SecurityDescriptor, format string) error {
	switch format {
	case "sddl":
		s, err := sddl.Serialize(sd)
		if err != nil {
			return err
		}
		fmt.Println(s)
		return nil
	case "binary":
		data, err := sd.MarshalBinary()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	default:
		return fmt.Errorf("unknown emit format %q", format)
	}
}

func dump(sd *secdesc.SecurityDescriptor) {
	fmt.Printf("control: 0x%04X\n", uint16(sd.ControlFlags()))
	fmt.Printf("owner:   %s\n", principal(sd.Owner()))
	fmt.Printf("group:   %s\n", principal(sd.Group()))
	dumpList("dacl", sd.Dacl())
	dumpList("sacl", sd.Sacl())
}

func dumpList(name string, list *acl.Acl) {
	if list == nil {
		fmt.Printf("%s:    absent\n", name)
		return
	}
	fmt.Printf("%s:    revision=%d entries=%d\n", name, list.Revision(), list.Len())
	for i := uint32(0); i < list.Len(); i++ {
		a := list.Get(i)
		scope := "explicit"
		if a.Flags.Inherited() {
			scope = "inherited"
		}
		fmt.Printf("  [%d] %s %s mask=%s trustee=%s\n",
			i, a.Type, scope, a.Mask, principal(a.Trustee))
	}
}

func principal(s *sid.SID) string {
	if s == nil {
		return "absent"
	}
	if name, ok := sid.WellKnownName(s); ok {
		return fmt.Sprintf("%s (%s)", s, name)
	}
	return s.String()
}
