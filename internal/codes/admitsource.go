package codes

import (
	"github.com/diz-unimr/adt2fhir/internal/faults"
	"github.com/diz-unimr/adt2fhir/pkg/fhir"
)

const admitSourceSystem = "http://fhir.de/CodeSystem/dgkev/Aufnahmeanlass"

var admitSourceTable = map[string]fhir.Coding{
	"E": {System: admitSourceSystem, Code: "E", Display: "Einweisung durch einen Arzt"},
	"Z": {System: admitSourceSystem, Code: "Z", Display: "Zuweisung durch einen Arzt"},
	"N": {System: admitSourceSystem, Code: "N", Display: "Notfall"},
	"R": {System: admitSourceSystem, Code: "R", Display: "Aufnahme nach vorheriger Behandlung ohne Unterbrechung (Rückverlegung)"},
	"V": {System: admitSourceSystem, Code: "V", Display: "Verlegung"},
	"A": {System: admitSourceSystem, Code: "A", Display: "Sonstiger Grund"},
	"G": {System: admitSourceSystem, Code: "G", Display: "Geburt"},
	"B": {System: admitSourceSystem, Code: "B", Display: "Begleitperson"},
}

// AdmitSource maps PV1.4.1 to a dgkev/Aufnahmeanlass Coding. The table's
// domain is closed: any value outside {E,Z,N,R,V,A,G,B} is a
// MessageContentUnexpected fault.
func AdmitSource(hl7Code string) (fhir.Coding, error) {
	c, ok := admitSourceTable[hl7Code]
	if !ok {
		return fhir.Coding{}, faults.NewMessageContentUnexpected("PV1.4.1", "one of E, Z, N, R, V, A, G, B", hl7Code)
	}
	return c, nil
}
