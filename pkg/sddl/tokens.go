package sddl

import (
	"github.com/backkem/winsd/pkg/acl"
	"github.com/backkem/winsd/pkg/secdesc"
)

// All token tables are read-only after initialization and safe for
// concurrent lookups.

// aceTypeTokens maps the SDDL ACE type mnemonics to their type codes.
// [MS-DTYP] 2.5.1.2
var aceTypeTokens = map[string]acl.AceType{
	"A":  acl.AccessAllowed,
	"D":  acl.AccessDenied,
	"OA": acl.AccessAllowedObject,
	"OD": acl.AccessDeniedObject,
	"AU": acl.SystemAudit,
	"AL": acl.SystemAlarm,
	"OU": acl.SystemAuditObject,
	"OL": acl.SystemAlarmObject,
	"ML": acl.SystemMandatoryLabel,
	"XA": acl.AccessAllowedCallback,
	"XD": acl.AccessDeniedCallback,
	"ZA": acl.AccessAllowedCallbackObject,
	"XU": acl.SystemAuditCallback,
	"RA": acl.SystemResourceAttribute,
	"SP": acl.SystemScopedPolicyID,
	"TL": acl.SystemProcessTrustLabel,
	"FL": acl.SystemAccessFilter,
}

var aceTypeNames = func() map[acl.AceType]string {
	out := make(map[acl.AceType]string, len(aceTypeTokens))
	for tok, t := range aceTypeTokens {
		out[t] = tok
	}
	return out
}()

// aceFlagTokens maps the two-letter ACE flag mnemonics to their bits.
var aceFlagTokens = map[string]acl.AceFlags{
	"CI": acl.FlagContainerInherit,
	"OI": acl.FlagObjectInherit,
	"NP": acl.FlagNoPropagateInherit,
	"IO": acl.FlagInheritOnly,
	"ID": acl.FlagInherited,
	"SA": acl.FlagSuccessfulAccess,
	"FA": acl.FlagFailedAccess,
}

// aceFlagOrder fixes the serialization order of flag mnemonics.
var aceFlagOrder = []struct {
	flag acl.AceFlags
	tok  string
}{
	{acl.FlagContainerInherit, "CI"},
	{acl.FlagObjectInherit, "OI"},
	{acl.FlagNoPropagateInherit, "NP"},
	{acl.FlagInheritOnly, "IO"},
	{acl.FlagInherited, "ID"},
	{acl.FlagSuccessfulAccess, "SA"},
	{acl.FlagFailedAccess, "FA"},
}

// rightsTokens maps the two-letter rights mnemonics to access masks.
// [MS-DTYP] 2.5.1.3
var rightsTokens = map[string]acl.AccessMask{
	"GA": acl.GenericAll,
	"GR": acl.GenericRead,
	"GW": acl.GenericWrite,
	"GX": acl.GenericExecute,

	"RC": acl.ReadControl,
	"SD": acl.Delete,
	"WD": acl.WriteDac,
	"WO": acl.WriteOwner,

	"RP": acl.DSReadProperty,
	"WP": acl.DSWriteProperty,
	"CC": acl.DSCreateChild,
	"DC": acl.DSDeleteChild,
	"LC": acl.DSListChildren,
	"SW": acl.DSSelfWrite,
	"LO": acl.DSListObject,
	"DT": acl.DSDeleteTree,
	"CR": acl.DSControlAccess,

	"FA": acl.FileAllAccess,
	"FR": acl.FileGenericRead,
	"FW": acl.FileGenericWrite,
	"FX": acl.FileGenericExecute,

	"KA": acl.KeyAllAccess,
	"KR": acl.KeyRead,
	"KW": acl.KeyWrite,
	"KX": acl.KeyExecute,

	"NR": acl.LabelNoReadUp,
	"NW": acl.LabelNoWriteUp,
	"NX": acl.LabelNoExecuteUp,
}

// rightsNames is the serialization preference for exact-match masks.
// Composite file/registry masks are deliberately absent: rendering them
// would be ambiguous against their generic/standard spellings, so those
// masks fall back to hex.
var rightsNames = []struct {
	mask acl.AccessMask
	tok  string
}{
	{acl.GenericAll, "GA"},
	{acl.GenericRead, "GR"},
	{acl.GenericWrite, "GW"},
	{acl.GenericExecute, "GX"},
	{acl.ReadControl, "RC"},
	{acl.Delete, "SD"},
	{acl.WriteDac, "WD"},
	{acl.WriteOwner, "WO"},
	{acl.DSReadProperty, "RP"},
	{acl.DSWriteProperty, "WP"},
	{acl.DSCreateChild, "CC"},
	{acl.DSDeleteChild, "DC"},
	{acl.DSListChildren, "LC"},
	{acl.DSSelfWrite, "SW"},
	{acl.DSListObject, "LO"},
	{acl.DSDeleteTree, "DT"},
	{acl.DSControlAccess, "CR"},
}

// controlToken binds a section control-flag mnemonic to its control bits.
type controlToken struct {
	tok  string
	bits secdesc.Control
}

// Section control-flag mnemonics, per list. [MS-DTYP] 2.5.1.1 acl flags.
var daclControlTokens = []controlToken{
	{"P", secdesc.DaclProtected},
	{"AR", secdesc.DaclAutoInheritReq},
	{"AI", secdesc.DaclAutoInherited},
}

var saclControlTokens = []controlToken{
	{"P", secdesc.SaclProtected},
	{"AR", secdesc.SaclAutoInheritReq},
	{"AI", secdesc.SaclAutoInherited},
}
