// Package fhir defines the narrow slice of the FHIR R4B resource model this
// service produces: Patient, Encounter, Parameters (for the patient-merge
// Patch form) and the transaction Bundle that wraps them. It carries no
// validation beyond JSON shape; field-presence rules live in the builders
// that construct these values (internal/mapping).
package fhir

// Element carries extensions on a FHIR primitive value. It is serialized as
// the `_fieldName` sibling of the primitive JSON field it decorates, per the
// FHIR JSON representation rules.
type Element struct {
	Extension []Extension `json:"extension,omitempty"`
}

// Extension is a single FHIR extension: a url plus exactly one value[x].
type Extension struct {
	URL         string `json:"url"`
	ValueString string `json:"valueString,omitempty"`
	ValueCode   string `json:"valueCode,omitempty"`
}

// Meta carries the resource's declared profile.
type Meta struct {
	Profile []string `json:"profile,omitempty"`
}

// Coding is a single code from a CodeSystem.
type Coding struct {
	System  string `json:"system,omitempty"`
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`
}

// CodeableConcept is a set of Codings describing the same concept.
type CodeableConcept struct {
	Coding []Coding `json:"coding,omitempty"`
	Text   string   `json:"text,omitempty"`
}

// IdentifierUse is the closed FHIR `Identifier.use` value set this service
// ever produces.
type IdentifierUse string

const (
	IdentifierUseUsual    IdentifierUse = "usual"
	IdentifierUseOfficial IdentifierUse = "official"
)

// Identifier is a business identifier attached to a resource.
type Identifier struct {
	Use    IdentifierUse    `json:"use,omitempty"`
	System string           `json:"system,omitempty"`
	Value  string           `json:"value,omitempty"`
	Type   *CodeableConcept `json:"type,omitempty"`
}

// Reference points at another resource by literal reference string (the
// conditional-search form this service always uses).
type Reference struct {
	Reference string `json:"reference,omitempty"`
}

// Period is a start/end instant pair; either bound may be absent.
type Period struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// HumanName models PID.5/PID.6 with the extensions the source system's
// profile requires on family and prefix.
type HumanName struct {
	Use        string    `json:"use,omitempty"`
	Family     string    `json:"family,omitempty"`
	FamilyExt  *Element  `json:"_family,omitempty"`
	Given      []string  `json:"given,omitempty"`
	Prefix     []string  `json:"prefix,omitempty"`
	PrefixExt  []Element `json:"_prefix,omitempty"`
}

// AddressType is the closed set of FHIR `Address.type` values this service
// produces.
type AddressType string

const AddressTypeBoth AddressType = "both"

// Address models PID.11.
type Address struct {
	Type       AddressType `json:"type,omitempty"`
	Line       []string    `json:"line,omitempty"`
	City       string      `json:"city,omitempty"`
	PostalCode string      `json:"postalCode,omitempty"`
	Country    string      `json:"country,omitempty"`
}
