package mapping

// patientAction is the per-event strategy the Patient mapper applies.
type patientAction int

const (
	patientActionNone patientAction = iota
	patientActionUpdateAsCreate
	patientActionConditionalCreate
	patientActionPatch
)

// patientDispatch is the closed table of recognized ADT events for the
// Patient Mapper. A lookup miss (not merely patientActionNone) means the
// event is unrecognized and is a MessageContentUnexpected fault — A11-style
// cancellation events are deliberately present in this table mapped to
// patientActionNone, not absent from it.
var patientDispatch = map[string]patientAction{
	"A01": patientActionUpdateAsCreate,
	"A04": patientActionUpdateAsCreate,
	"A05": patientActionUpdateAsCreate,
	"A06": patientActionUpdateAsCreate,
	"A07": patientActionUpdateAsCreate,
	"A08": patientActionUpdateAsCreate,
	"A02": patientActionConditionalCreate,
	"A03": patientActionConditionalCreate,
	"A31": patientActionConditionalCreate,
	"A34": patientActionPatch,
	"A40": patientActionPatch,
	"A11": patientActionNone,
	"A12": patientActionNone,
	"A13": patientActionNone,
	"A14": patientActionNone,
	"A27": patientActionNone,
}

func dispatchPatient(event string) (patientAction, bool) {
	a, ok := patientDispatch[event]
	return a, ok
}

// encounterBuildEvents is the closed set of events for which the Encounter
// Mapper builds an einrichtungskontakt Encounter. Every other event,
// recognized or not, simply produces no Encounter entries — unlike the
// Patient Mapper, an unrecognized event here is not a fault.
var encounterBuildEvents = map[string]bool{
	"A01": true,
	"A02": true,
	"A03": true,
	"A04": true,
	"A05": true,
}

func dispatchEncounter(event string) bool {
	return encounterBuildEvents[event]
}
