// Package refs builds FHIR Identifier values and Reference strings in the
// conditional-search form every BundleEntry.request.url and every
// cross-resource reference in this service uses.
package refs

import (
	"github.com/diz-unimr/adt2fhir/internal/faults"
	"github.com/diz-unimr/adt2fhir/pkg/fhir"
)

// ConditionalURL is re-exported for callers that only need the string form.
func ConditionalURL(resourceType, system, value string) string {
	return fhir.ConditionalURL(resourceType, system, value)
}

// Reference builds a Reference whose reference string is the conditional
// search form for resourceType/system/value.
func Reference(resourceType, system, value string) fhir.Reference {
	return fhir.Reference{Reference: fhir.ConditionalURL(resourceType, system, value)}
}

// UsualIdentifier builds the routing identifier (use=usual) every Patient
// and the first Encounter identifier carries. A missing system or value is
// a code defect surfaced as a BuilderError, since by the time a mapper
// calls this the HL7 source value has already been validated as present.
func UsualIdentifier(system, value string) (fhir.Identifier, error) {
	if system == "" {
		return fhir.Identifier{}, faults.NewBuilderError("identifier.system", "missing")
	}
	if value == "" {
		return fhir.Identifier{}, faults.NewBuilderError("identifier.value", "missing")
	}
	return fhir.Identifier{Use: fhir.IdentifierUseUsual, System: system, Value: value}, nil
}

// OfficialIdentifier builds a use=official identifier carrying a type
// CodeableConcept, used for the Encounter's secondary Fall-number
// identifier.
func OfficialIdentifier(system, value string, idType fhir.CodeableConcept) (fhir.Identifier, error) {
	if system == "" {
		return fhir.Identifier{}, faults.NewBuilderError("identifier.system", "missing")
	}
	if value == "" {
		return fhir.Identifier{}, faults.NewBuilderError("identifier.value", "missing")
	}
	return fhir.Identifier{Use: fhir.IdentifierUseOfficial, System: system, Value: value, Type: &idType}, nil
}
