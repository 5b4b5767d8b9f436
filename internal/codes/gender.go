// Package codes holds the static coded-value translation tables between
// HL7 v2 codes and FHIR CodeSystem codes. Each table is a Go map literal
// with a single default-branch fallback, not a switch statement, so the
// tables can be extended as terminology evolves without touching control
// flow.
package codes

// genderTable maps PID.8 to the FHIR administrative-gender code. It is
// total: any value not present falls through to "unknown".
var genderTable = map[string]string{
	"F": "female",
	"M": "male",
	"U": "other",
}

// Gender maps PID.8 to a FHIR administrative-gender code. Every input
// produces a result, with "unknown" as the default.
func Gender(hl7Code string) string {
	if v, ok := genderTable[hl7Code]; ok {
		return v
	}
	return "unknown"
}
