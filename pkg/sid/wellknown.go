package sid

// Identifier authorities from [MS-DTYP] 2.4.1.1.
var (
	nullAuthority      = [6]byte{0, 0, 0, 0, 0, 0}
	worldAuthority     = [6]byte{0, 0, 0, 0, 0, 1}
	localAuthority     = [6]byte{0, 0, 0, 0, 0, 2}
	creatorAuthority   = [6]byte{0, 0, 0, 0, 0, 3}
	ntAuthority        = [6]byte{0, 0, 0, 0, 0, 5}
	appPackageAuth     = [6]byte{0, 0, 0, 0, 0, 15}
	mandatoryLabelAuth = [6]byte{0, 0, 0, 0, 0, 16}
	authenticationAuth = [6]byte{0, 0, 0, 0, 0, 18}
)

// Relative identifiers used by the well-known tables below.
const (
	ridWorld              = 0
	ridCreatorOwner       = 0
	ridCreatorGroup       = 1
	ridCreatorOwnerRights = 4
	ridDialup             = 1
	ridNetwork            = 2
	ridBatch              = 3
	ridInteractive        = 4
	ridService            = 6
	ridAnonymous          = 7
	ridEnterpriseDCs      = 9
	ridPrincipalSelf      = 10
	ridAuthenticated      = 11
	ridRestrictedCode     = 12
	ridLocalSystem        = 18
	ridLocalService       = 19
	ridNetworkService     = 20
	ridBuiltinDomain      = 32
	ridWriteRestricted    = 33

	aliasRidAdmins          = 0x220
	aliasRidUsers           = 0x221
	aliasRidGuests          = 0x222
	aliasRidPowerUsers      = 0x223
	aliasRidAccountOps      = 0x224
	aliasRidSystemOps       = 0x225
	aliasRidPrintOps        = 0x226
	aliasRidBackupOps       = 0x227
	aliasRidReplicator      = 0x228
	aliasRidPreW2KAccess    = 0x22A
	aliasRidRemoteDesktop   = 0x22B
	aliasRidNetworkConfig   = 0x22C
	aliasRidPerfMonUsers    = 0x22E
	aliasRidPerfLogUsers    = 0x22F
	aliasRidIISUsers        = 0x238
	aliasRidCryptoOperators = 0x239
	aliasRidEventLogReaders = 0x23D
	aliasRidCertSvcDCOM     = 0x23E
	aliasRidRDSRemoteAccess = 0x23F
	aliasRidRDSEndpoint     = 0x240
	aliasRidRDSManagement   = 0x241
	aliasRidHyperVAdmins    = 0x242
	aliasRidAccessControl   = 0x243
	aliasRidRemoteMgmt      = 0x244

	ridMandatoryLow        = 0x1000
	ridMandatoryMedium     = 0x2000
	ridMandatoryMediumPlus = 0x2100
	ridMandatoryHigh       = 0x3000
	ridMandatorySystem     = 0x4000

	ridAppPackageBase = 2
	ridAnyPackage     = 1

	ridAuthAuthorityAsserted = 1
	ridAuthServiceAsserted   = 2
)

// Well-known SIDs that the package itself reasons about.
var (
	// Everyone is the World SID S-1-1-0. It contains every trustee.
	Everyone = mustNew(worldAuthority, ridWorld)

	// CreatorOwner is S-1-3-0.
	CreatorOwner = mustNew(creatorAuthority, ridCreatorOwner)

	// CreatorGroup is S-1-3-1.
	CreatorGroup = mustNew(creatorAuthority, ridCreatorGroup)

	// AnonymousLogon is NT AUTHORITY\ANONYMOUS LOGON, S-1-5-7.
	AnonymousLogon = mustNew(ntAuthority, ridAnonymous)

	// AuthenticatedUsers is NT AUTHORITY\Authenticated Users, S-1-5-11.
	AuthenticatedUsers = mustNew(ntAuthority, ridAuthenticated)

	// LocalSystem is NT AUTHORITY\SYSTEM, S-1-5-18.
	LocalSystem = mustNew(ntAuthority, ridLocalSystem)

	// BuiltinAdministrators is BUILTIN\Administrators, S-1-5-32-544.
	BuiltinAdministrators = mustNew(ntAuthority, ridBuiltinDomain, aliasRidAdmins)
)

// aliasTable maps the SDDL two-letter SID strings from [MS-DTYP] 2.5.1.1 to
// their structured form. Read-only after initialization; safe for concurrent
// lookups without synchronization. Domain-relative aliases (DA, DU, EA, ...)
// require a resolved domain SID and are deliberately absent: resolving them
// is the NameResolver collaborator's job, not this table's.
var aliasTable = map[string]*SID{
	"WD": Everyone,

	"CO": CreatorOwner,
	"CG": CreatorGroup,
	"OW": mustNew(creatorAuthority, ridCreatorOwnerRights),

	"NU": mustNew(ntAuthority, ridNetwork),
	"IU": mustNew(ntAuthority, ridInteractive),
	"SU": mustNew(ntAuthority, ridService),
	"AN": AnonymousLogon,
	"ED": mustNew(ntAuthority, ridEnterpriseDCs),
	"PS": mustNew(ntAuthority, ridPrincipalSelf),
	"AU": AuthenticatedUsers,
	"RC": mustNew(ntAuthority, ridRestrictedCode),
	"SY": LocalSystem,
	"LS": mustNew(ntAuthority, ridLocalService),
	"NS": mustNew(ntAuthority, ridNetworkService),
	"WR": mustNew(ntAuthority, ridWriteRestricted),

	"BA": BuiltinAdministrators,
	"BU": mustNew(ntAuthority, ridBuiltinDomain, aliasRidUsers),
	"BG": mustNew(ntAuthority, ridBuiltinDomain, aliasRidGuests),
	"PU": mustNew(ntAuthority, ridBuiltinDomain, aliasRidPowerUsers),
	"AO": mustNew(ntAuthority, ridBuiltinDomain, aliasRidAccountOps),
	"SO": mustNew(ntAuthority, ridBuiltinDomain, aliasRidSystemOps),
	"PO": mustNew(ntAuthority, ridBuiltinDomain, aliasRidPrintOps),
	"BO": mustNew(ntAuthority, ridBuiltinDomain, aliasRidBackupOps),
	"RE": mustNew(ntAuthority, ridBuiltinDomain, aliasRidReplicator),
	"RU": mustNew(ntAuthority, ridBuiltinDomain, aliasRidPreW2KAccess),
	"RD": mustNew(ntAuthority, ridBuiltinDomain, aliasRidRemoteDesktop),
	"NO": mustNew(ntAuthority, ridBuiltinDomain, aliasRidNetworkConfig),
	"MU": mustNew(ntAuthority, ridBuiltinDomain, aliasRidPerfMonUsers),
	"LU": mustNew(ntAuthority, ridBuiltinDomain, aliasRidPerfLogUsers),
	"IS": mustNew(ntAuthority, ridBuiltinDomain, aliasRidIISUsers),
	"CY": mustNew(ntAuthority, ridBuiltinDomain, aliasRidCryptoOperators),
	"ER": mustNew(ntAuthority, ridBuiltinDomain, aliasRidEventLogReaders),
	"CD": mustNew(ntAuthority, ridBuiltinDomain, aliasRidCertSvcDCOM),
	"RA": mustNew(ntAuthority, ridBuiltinDomain, aliasRidRDSRemoteAccess),
	"ES": mustNew(ntAuthority, ridBuiltinDomain, aliasRidRDSEndpoint),
	"MS": mustNew(ntAuthority, ridBuiltinDomain, aliasRidRDSManagement),
	"HA": mustNew(ntAuthority, ridBuiltinDomain, aliasRidHyperVAdmins),
	"AA": mustNew(ntAuthority, ridBuiltinDomain, aliasRidAccessControl),
	"RM": mustNew(ntAuthority, ridBuiltinDomain, aliasRidRemoteMgmt),

	"LW": mustNew(mandatoryLabelAuth, ridMandatoryLow),
	"ME": mustNew(mandatoryLabelAuth, ridMandatoryMedium),
	"MP": mustNew(mandatoryLabelAuth, ridMandatoryMediumPlus),
	"HI": mustNew(mandatoryLabelAuth, ridMandatoryHigh),
	"SI": mustNew(mandatoryLabelAuth, ridMandatorySystem),

	"AC": mustNew(appPackageAuth, ridAppPackageBase, ridAnyPackage),

	"AS": mustNew(authenticationAuth, ridAuthAuthorityAsserted),
	"SS": mustNew(authenticationAuth, ridAuthServiceAsserted),
}

// reverseAliasTable maps canonical SID strings back to their SDDL alias, for
// serialization. Built once from aliasTable.
var reverseAliasTable = func() map[string]string {
	out := make(map[string]string, len(aliasTable))
	for alias, s := range aliasTable {
		out[s.String()] = alias
	}
	return out
}()

// wellKnownNames maps canonical SID strings to display names for the
// principals this package defines as package-level variables.
var wellKnownNames = map[string]string{
	"S-1-1-0":      "Everyone",
	"S-1-3-0":      "CREATOR OWNER",
	"S-1-3-1":      "CREATOR GROUP",
	"S-1-5-7":      "NT AUTHORITY\\ANONYMOUS LOGON",
	"S-1-5-11":     "NT AUTHORITY\\Authenticated Users",
	"S-1-5-18":     "NT AUTHORITY\\SYSTEM",
	"S-1-5-19":     "NT AUTHORITY\\LOCAL SERVICE",
	"S-1-5-20":     "NT AUTHORITY\\NETWORK SERVICE",
	"S-1-5-32-544": "BUILTIN\\Administrators",
	"S-1-5-32-545": "BUILTIN\\Users",
	"S-1-5-32-546": "BUILTIN\\Guests",
}

// WellKnownName returns the display name for a well-known SID.
// Returns ("", false) when the SID is not in the built-in table; callers
// needing broader coverage should go through a NameResolver.
func WellKnownName(s *SID) (string, bool) {
	if s == nil {
		return "", false
	}
	name, ok := wellKnownNames[s.String()]
	return name, ok
}
