package codes

import (
	"github.com/diz-unimr/adt2fhir/internal/faults"
	"github.com/diz-unimr/adt2fhir/pkg/fhir"
)

const encounterClassSystem = "http://terminology.hl7.org/CodeSystem/v3-ActCode"

var encounterClassTable = map[string]fhir.Coding{
	"I": {System: encounterClassSystem, Code: "IMP", Display: "inpatient encounter"},
	"O": {System: encounterClassSystem, Code: "AMB", Display: "ambulatory"},
	"P": {System: encounterClassSystem, Code: "PRENC", Display: "pre-admission"},
}

// EncounterClass maps PV1.2 to a v3-ActCode Coding. Unlike MaritalStatus,
// this table's domain is closed by policy: any value outside {I,O,P} is a
// MessageContentUnexpected fault, not a sentinel.
func EncounterClass(hl7Code string) (fhir.Coding, error) {
	c, ok := encounterClassTable[hl7Code]
	if !ok {
		return fhir.Coding{}, faults.NewMessageContentUnexpected("PV1.2", "one of I, O, P", hl7Code)
	}
	return c, nil
}

const kontaktartSystem = "http://fhir.de/CodeSystem/kontaktart-de"

var kontaktartTable = map[string]fhir.Coding{
	"H":  {System: kontaktartSystem, Code: "begleitperson", Display: "Begleitperson"},
	"TS": {System: kontaktartSystem, Code: "teilstationaer", Display: "Teilstationär"},
	"NS": {System: kontaktartSystem, Code: "nachstationaer", Display: "Nachstationär"},
	"UB": {System: kontaktartSystem, Code: "ub", Display: "Unbekannt"},
}

// Kontaktart maps PV1.2 to a kontaktart-de Coding. "I" and "O" intentionally
// produce no Kontaktart coding at all (the second boolean return is false),
// not a fault and not a sentinel — PV1.2 is the same field EncounterClass
// reads, and for the plain inpatient/ambulatory values there is simply no
// additional Kontaktart to report.
func Kontaktart(hl7Code string) (fhir.Coding, bool) {
	c, ok := kontaktartTable[hl7Code]
	return c, ok
}
