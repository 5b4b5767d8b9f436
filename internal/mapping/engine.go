package mapping

import (
	"encoding/json"

	"github.com/diz-unimr/adt2fhir/internal/config"
	"github.com/diz-unimr/adt2fhir/internal/faults"
	"github.com/diz-unimr/adt2fhir/internal/hl7"
	"github.com/diz-unimr/adt2fhir/internal/resourcemap"
	"github.com/diz-unimr/adt2fhir/pkg/fhir"
)

// Engine is the HL7→FHIR mapping engine: the event dispatcher, the
// Patient/Encounter mappers it drives, and the bundle assembler. Once
// constructed, every field is immutable, so an Engine value is safe to call
// concurrently from any number of worker goroutines; all coordination
// lives in the harness, not here.
type Engine struct {
	cfg       config.FhirConfig
	resources *resourcemap.ResourceMap
}

// New builds an Engine from injected configuration and an already-loaded
// Resource Map. Construction performs no I/O of its own; callers load the
// Resource Map fixtures once at startup via resourcemap.Load.
func New(cfg config.FhirConfig, resources *resourcemap.ResourceMap) *Engine {
	return &Engine{cfg: cfg, resources: resources}
}

// Map transforms one HL7 v2 ADT message into a FHIR transaction Bundle,
// serialized as JSON. The second return value reports whether a Bundle was
// produced at all: some events, and any message whose PV1.2 is "H",
// legitimately produce no output, which is not an error.
func (e *Engine) Map(text string) (string, bool, error) {
	msg, err := hl7.Parse(text)
	if err != nil {
		return "", false, faults.WrapMessageAccessError("MSH", 0, err)
	}

	event, err := requireField(msg, "EVN", 1)
	if err != nil {
		return "", false, err
	}

	var entries []fhir.BundleEntry

	// A companion (Begleitperson) visit produces no output at all, for
	// either mapper, regardless of event type.
	if companion, _ := msg.Field("PV1", 2); companion != "H" {
		patientEntries, err := e.mapPatient(msg, event)
		if err != nil {
			return "", false, err
		}
		entries = append(entries, patientEntries...)

		encounterEntries, err := e.mapEncounter(msg, event)
		if err != nil {
			return "", false, err
		}
		entries = append(entries, encounterEntries...)
	}

	if len(entries) == 0 {
		return "", false, nil
	}

	bundle := fhir.NewTransactionBundle(entries)
	out, err := json.Marshal(bundle)
	if err != nil {
		return "", false, faults.NewBuilderError("Bundle", "failed to serialize: "+err.Error())
	}
	return string(out), true, nil
}
