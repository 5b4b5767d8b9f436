// Package mapping implements the HL7→FHIR transformation engine: the ADT
// event dispatcher, the Patient and Encounter builders, and the bundle
// assembler that ties them together into the single `Map` entry point the
// harness calls once per message.
package mapping

import (
	"github.com/diz-unimr/adt2fhir/internal/faults"
	"github.com/diz-unimr/adt2fhir/internal/hl7"
)

// requireField reads a field and turns an absent segment or field into the
// outermost error kind (MessageAccessError) with the HL7 location
// attached, rather than letting the access layer's own untyped "not
// present" signal leak past this package's boundary.
func requireField(msg *hl7.Message, segment string, field int) (string, error) {
	v, ok := msg.Field(segment, field)
	if !ok {
		return "", faults.NewMessageAccessError(segment, field, "missing field")
	}
	return v, nil
}
