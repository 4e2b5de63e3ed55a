package acl

import "fmt"

// AceType identifies the kind of an access-control entry. The values are the
// winnt.h ACE type codes; values this package does not interpret still
// round-trip unchanged through both codecs.
// Spec: [MS-DTYP] 2.4.4.1 (ACE_HEADER AceType)
type AceType byte

const (
	// AccessAllowed grants the rights in the mask.
	AccessAllowed AceType = 0x00

	// AccessDenied removes the rights in the mask.
	AccessDenied AceType = 0x01

	// SystemAudit logs access attempts; it never affects effective rights.
	SystemAudit AceType = 0x02

	// SystemAlarm is reserved by the platform.
	SystemAlarm AceType = 0x03

	// AccessAllowedCompound is obsolete; preserved opaquely.
	AccessAllowedCompound AceType = 0x04

	// AccessAllowedObject is AccessAllowed scoped to an object GUID.
	AccessAllowedObject AceType = 0x05

	// AccessDeniedObject is AccessDenied scoped to an object GUID.
	AccessDeniedObject AceType = 0x06

	// SystemAuditObject is SystemAudit scoped to an object GUID.
	SystemAuditObject AceType = 0x07

	// SystemAlarmObject is reserved by the platform.
	SystemAlarmObject AceType = 0x08

	// AccessAllowedCallback carries a conditional expression.
	AccessAllowedCallback AceType = 0x09

	// AccessDeniedCallback carries a conditional expression.
	AccessDeniedCallback AceType = 0x0A

	// AccessAllowedCallbackObject combines callback and object forms.
	AccessAllowedCallbackObject AceType = 0x0B

	// AccessDeniedCallbackObject combines callback and object forms.
	AccessDeniedCallbackObject AceType = 0x0C

	// SystemAuditCallback carries a conditional expression.
	SystemAuditCallback AceType = 0x0D

	// SystemAlarmCallback is reserved by the platform.
	SystemAlarmCallback AceType = 0x0E

	// SystemAuditCallbackObject combines callback and object forms.
	SystemAuditCallbackObject AceType = 0x0F

	// SystemAlarmCallbackObject is reserved by the platform.
	SystemAlarmCallbackObject AceType = 0x10

	// SystemMandatoryLabel carries an integrity level.
	SystemMandatoryLabel AceType = 0x11

	// SystemResourceAttribute carries a resource claim.
	SystemResourceAttribute AceType = 0x12

	// SystemScopedPolicyID references a central access policy.
	SystemScopedPolicyID AceType = 0x13

	// SystemProcessTrustLabel carries a trust level.
	SystemProcessTrustLabel AceType = 0x14

	// SystemAccessFilter restricts access during filtered tokens.
	SystemAccessFilter AceType = 0x15
)

// String returns the winnt-style name for known types and a hex form for
// preserved unknown values.
func (t AceType) String() string {
	switch t {
	case AccessAllowed:
		return "ACCESS_ALLOWED"
	case AccessDenied:
		return "ACCESS_DENIED"
	case SystemAudit:
		return "SYSTEM_AUDIT"
	case SystemAlarm:
		return "SYSTEM_ALARM"
	case AccessAllowedObject:
		return "ACCESS_ALLOWED_OBJECT"
	case AccessDeniedObject:
		return "ACCESS_DENIED_OBJECT"
	case SystemAuditObject:
		return "SYSTEM_AUDIT_OBJECT"
	case SystemAlarmObject:
		return "SYSTEM_ALARM_OBJECT"
	case AccessAllowedCallback:
		return "ACCESS_ALLOWED_CALLBACK"
	case AccessDeniedCallback:
		return "ACCESS_DENIED_CALLBACK"
	case SystemAuditCallback:
		return "SYSTEM_AUDIT_CALLBACK"
	case SystemMandatoryLabel:
		return "SYSTEM_MANDATORY_LABEL"
	case SystemResourceAttribute:
		return "SYSTEM_RESOURCE_ATTRIBUTE"
	case SystemScopedPolicyID:
		return "SYSTEM_SCOPED_POLICY_ID"
	case SystemAccessFilter:
		return "SYSTEM_ACCESS_FILTER"
	default:
		return fmt.Sprintf("ACE_TYPE(0x%02X)", byte(t))
	}
}

// IsSupported reports whether the type is one this package interprets
// structurally (mask + trustee, optionally object GUIDs and trailing
// application data). Every type the SDDL codec can name is interpreted.
// AccessAllowedCompound has a different body layout and stays opaque, as
// does any value outside the enumeration.
func (t AceType) IsSupported() bool {
	switch t {
	case AccessAllowed, AccessDenied, SystemAudit, SystemAlarm,
		AccessAllowedObject, AccessDeniedObject, SystemAuditObject, SystemAlarmObject,
		AccessAllowedCallback, AccessDeniedCallback,
		AccessAllowedCallbackObject, AccessDeniedCallbackObject,
		SystemAuditCallback, SystemAlarmCallback,
		SystemAuditCallbackObject, SystemAlarmCallbackObject,
		SystemMandatoryLabel, SystemResourceAttribute, SystemScopedPolicyID,
		SystemProcessTrustLabel, SystemAccessFilter:
		return true
	}
	return false
}

// IsObjectType reports whether the ACE layout includes object GUID fields.
func (t AceType) IsObjectType() bool {
	switch t {
	case AccessAllowedObject, AccessDeniedObject, SystemAuditObject, SystemAlarmObject,
		AccessAllowedCallbackObject, AccessDeniedCallbackObject,
		SystemAuditCallbackObject, SystemAlarmCallbackObject:
		return true
	}
	return false
}

// IsAllowClass reports whether the type grants rights during evaluation.
func (t AceType) IsAllowClass() bool {
	switch t {
	case AccessAllowed, AccessAllowedObject, AccessAllowedCallback, AccessAllowedCallbackObject:
		return true
	}
	return false
}

// IsDenyClass reports whether the type removes rights during evaluation.
func (t AceType) IsDenyClass() bool {
	switch t {
	case AccessDenied, AccessDeniedObject, AccessDeniedCallback, AccessDeniedCallbackObject:
		return true
	}
	return false
}

// IsAuditClass reports whether the type belongs in a SACL: audit, alarm,
// label, attribute, and policy entries. These never contribute to effective
// rights.
func (t AceType) IsAuditClass() bool {
	switch t {
	case SystemAudit, SystemAlarm, SystemAuditObject, SystemAlarmObject,
		SystemAuditCallback, SystemAlarmCallback,
		SystemAuditCallbackObject, SystemAlarmCallbackObject,
		SystemMandatoryLabel, SystemResourceAttribute,
		SystemScopedPolicyID, SystemProcessTrustLabel, SystemAccessFilter:
		return true
	}
	return false
}

// AceFlags is the inheritance and audit flag byte of an ACE header.
// Spec: [MS-DTYP] 2.4.4.1 (ACE_HEADER AceFlags)
type AceFlags byte

const (
	// FlagObjectInherit propagates the ACE to non-container children.
	FlagObjectInherit AceFlags = 0x01

	// FlagContainerInherit propagates the ACE to container children.
	FlagContainerInherit AceFlags = 0x02

	// FlagNoPropagateInherit stops propagation past the first level.
	FlagNoPropagateInherit AceFlags = 0x04

	// FlagInheritOnly exempts the object itself from the ACE.
	FlagInheritOnly AceFlags = 0x08

	// FlagInherited marks an ACE inherited from a parent rather than set
	// explicitly. Explicit-vs-inherited evaluation grouping derives from
	// this bit.
	FlagInherited AceFlags = 0x10

	// FlagSuccessfulAccess audits granted access (SACL entries only).
	FlagSuccessfulAccess AceFlags = 0x40

	// FlagFailedAccess audits refused access (SACL entries only).
	FlagFailedAccess AceFlags = 0x80
)

// Has reports whether every bit of other is set.
func (f AceFlags) Has(other AceFlags) bool {
	return f&other == other
}

// Inherited reports whether the ACE came from a parent container.
// The complement is an explicit ACE, which takes absolute precedence during
// effective-rights evaluation.
func (f AceFlags) Inherited() bool {
	return f&FlagInherited != 0
}

// AccessMask is an opaque bitmask of access rights. A zero mask is a valid
// value, distinct from "no entry".
// Spec: [MS-DTYP] 2.4.3 (ACCESS_MASK)
type AccessMask uint32

// Generic and standard rights.
const (
	GenericRead    AccessMask = 0x80000000
	GenericWrite   AccessMask = 0x40000000
	GenericExecute AccessMask = 0x20000000
	GenericAll     AccessMask = 0x10000000

	AccessSystemSecurity AccessMask = 0x01000000

	Delete       AccessMask = 0x00010000
	ReadControl  AccessMask = 0x00020000
	WriteDac     AccessMask = 0x00040000
	WriteOwner   AccessMask = 0x00080000
	Synchronize  AccessMask = 0x00100000
	StandardAll  AccessMask = 0x001F0000
	SpecificAll  AccessMask = 0x0000FFFF
	StandardRead AccessMask = ReadControl
)

// File-object composite rights.
const (
	FileReadData        AccessMask = 0x0001
	FileWriteData       AccessMask = 0x0002
	FileAppendData      AccessMask = 0x0004
	FileReadEA          AccessMask = 0x0008
	FileWriteEA         AccessMask = 0x0010
	FileExecute         AccessMask = 0x0020
	FileReadAttributes  AccessMask = 0x0080
	FileWriteAttributes AccessMask = 0x0100

	FileAllAccess      AccessMask = StandardAll&0x000F0000 | Synchronize | 0x1FF
	FileGenericRead    AccessMask = ReadControl | FileReadData | FileReadAttributes | FileReadEA | Synchronize
	FileGenericWrite   AccessMask = ReadControl | FileWriteData | FileWriteAttributes | FileWriteEA | FileAppendData | Synchronize
	FileGenericExecute AccessMask = ReadControl | FileReadAttributes | FileExecute | Synchronize
)

// Registry-key composite rights.
const (
	KeyQueryValue       AccessMask = 0x0001
	KeySetValue         AccessMask = 0x0002
	KeyCreateSubKey     AccessMask = 0x0004
	KeyEnumerateSubKeys AccessMask = 0x0008
	KeyNotify           AccessMask = 0x0010
	KeyCreateLink       AccessMask = 0x0020

	KeyRead      AccessMask = (ReadControl | KeyQueryValue | KeyEnumerateSubKeys | KeyNotify) &^ Synchronize
	KeyWrite     AccessMask = (ReadControl | KeySetValue | KeyCreateSubKey) &^ Synchronize
	KeyExecute   AccessMask = KeyRead &^ Synchronize
	KeyAllAccess AccessMask = (0x001F0000 | KeyQueryValue | KeySetValue | KeyCreateSubKey |
		KeyEnumerateSubKeys | KeyNotify | KeyCreateLink) &^ Synchronize
)

// Directory-service object rights, shared with the SDDL rights mnemonics.
const (
	DSCreateChild   AccessMask = 0x0001
	DSDeleteChild   AccessMask = 0x0002
	DSListChildren  AccessMask = 0x0004
	DSSelfWrite     AccessMask = 0x0008
	DSReadProperty  AccessMask = 0x0010
	DSWriteProperty AccessMask = 0x0020
	DSDeleteTree    AccessMask = 0x0040
	DSListObject    AccessMask = 0x0080
	DSControlAccess AccessMask = 0x0100
)

// Mandatory-label policy rights.
const (
	LabelNoWriteUp   AccessMask = 0x1
	LabelNoReadUp    AccessMask = 0x2
	LabelNoExecuteUp AccessMask = 0x4
)

// Has reports whether every bit of other is set in the mask.
func (m AccessMask) Has(other AccessMask) bool {
	return m&other == other
}

// Union returns the bitwise OR of the two masks.
func (m AccessMask) Union(other AccessMask) AccessMask {
	return m | other
}

// Intersect returns the bitwise AND of the two masks.
func (m AccessMask) Intersect(other AccessMask) AccessMask {
	return m & other
}

// String renders the mask as hex; mnemonic rendering belongs to the SDDL
// layer, which owns the token tables.
func (m AccessMask) String() string {
	return fmt.Sprintf("0x%08X", uint32(m))
}
