package codes

import "github.com/diz-unimr/adt2fhir/pkg/fhir"

const maritalStatusSystem = "http://terminology.hl7.org/CodeSystem/v3-MaritalStatus"

// maritalStatusTable maps PID.16 component 1 to the v3-MaritalStatus code.
// Several HL7 values collapse onto the same FHIR code (A and E both mean
// "Legally Separated"; G, P and R all mean "Domestic partner").
var maritalStatusTable = map[string]string{
	"A": "L",
	"E": "L",
	"D": "D",
	"M": "M",
	"S": "S",
	"W": "W",
	"C": "C",
	"G": "T",
	"P": "T",
	"R": "T",
	"N": "A",
	"I": "I",
	"B": "U",
}

var maritalStatusDisplay = map[string]string{
	"L":   "Legally Separated",
	"D":   "Divorced",
	"M":   "Married",
	"S":   "Never Married",
	"W":   "Widowed",
	"C":   "Common Law",
	"T":   "Domestic Partner",
	"A":   "Annulled",
	"I":   "Interlocutory",
	"U":   "Unmarried",
	"UNK": "unknown",
}

// MaritalStatus maps PID.16.1 to a v3-MaritalStatus CodeableConcept. Any
// value outside the enumerated domain yields the sentinel "UNK" coding
// rather than a fault.
func MaritalStatus(hl7Code string) fhir.CodeableConcept {
	code, ok := maritalStatusTable[hl7Code]
	if !ok {
		code = "UNK"
	}
	return fhir.CodeableConcept{
		Coding: []fhir.Coding{{
			System:  maritalStatusSystem,
			Code:    code,
			Display: maritalStatusDisplay[code],
		}},
	}
}
