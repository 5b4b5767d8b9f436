package mapping

import (
	"github.com/diz-unimr/adt2fhir/internal/codes"
	"github.com/diz-unimr/adt2fhir/internal/datetime"
	"github.com/diz-unimr/adt2fhir/internal/faults"
	"github.com/diz-unimr/adt2fhir/internal/hl7"
	"github.com/diz-unimr/adt2fhir/internal/refs"
	"github.com/diz-unimr/adt2fhir/pkg/fhir"
)

const (
	kontaktebeneSystem     = "http://fhir.de/CodeSystem/Kontaktebene"
	departmentOrgSystem    = "https://fhir.diz.uni-marburg.de/sid/department"
	identifierTypeV2System = "http://terminology.hl7.org/CodeSystem/v2-0203"
)

// mapEncounter runs the Encounter mapper's dispatch step. PV1.2=H is
// filtered out one level up, before either mapper runs.
func (e *Engine) mapEncounter(msg *hl7.Message, event string) ([]fhir.BundleEntry, error) {
	if !dispatchEncounter(event) {
		return nil, nil
	}

	encounter, err := e.buildEncounter(msg, event)
	if err != nil {
		return nil, err
	}
	id, ok := encounter.UsualIdentifier()
	if !ok {
		return nil, faults.NewBuilderError("Encounter.identifier", "missing use=usual identifier")
	}

	req := fhir.UpdateAsCreate(fhir.ResourceTypeEncounter, id.System, id.Value)
	return []fhir.BundleEntry{{Resource: encounter, Request: req}}, nil
}

// buildEncounter assembles the einrichtungskontakt Encounter from PID/PV1.
func (e *Engine) buildEncounter(msg *hl7.Message, event string) (*fhir.Encounter, error) {
	visitNumber, err := visitNumber(msg, event)
	if err != nil {
		return nil, err
	}

	encounter := fhir.NewEncounter()
	encounter.Meta = &fhir.Meta{Profile: []string{e.cfg.Fall.Profile}}

	usual, err := refs.UsualIdentifier(e.cfg.Fall.Einrichtungskontakt.System, visitNumber)
	if err != nil {
		return nil, err
	}
	idType := fhir.CodeableConcept{Coding: []fhir.Coding{{System: identifierTypeV2System, Code: "VN"}}}
	official, err := refs.OfficialIdentifier(e.cfg.Fall.System, visitNumber, idType)
	if err != nil {
		return nil, err
	}
	encounter.Identifier = []fhir.Identifier{usual, official}

	period, err := buildPeriod(msg, event)
	if err != nil {
		return nil, err
	}
	encounter.Period = period
	encounter.Status = deriveStatus(period)

	pv12, err := requireField(msg, "PV1", 2)
	if err != nil {
		return nil, err
	}
	class, err := codes.EncounterClass(pv12)
	if err != nil {
		return nil, err
	}
	encounter.Class = class

	typeConcept := fhir.CodeableConcept{Coding: []fhir.Coding{
		{System: kontaktebeneSystem, Code: "einrichtungskontakt", Display: "Einrichtungskontakt"},
	}}
	if kontaktart, ok := codes.Kontaktart(pv12); ok {
		typeConcept.Coding = append(typeConcept.Coding, kontaktart)
	}
	encounter.Type = []fhir.CodeableConcept{typeConcept}

	pid2, err := requireField(msg, "PID", 2)
	if err != nil {
		return nil, err
	}
	subject := refs.Reference(fhir.ResourceTypePatient, e.cfg.Person.System, pid2)
	encounter.Subject = &subject

	if err := e.applyDepartment(msg, encounter); err != nil {
		return nil, err
	}
	if err := applyHospitalization(msg, encounter); err != nil {
		return nil, err
	}

	return encounter, nil
}

// visitNumber picks the visit-number source field: PID.4 for PendingAdmit
// (A14), PV1.19 otherwise.
func visitNumber(msg *hl7.Message, event string) (string, error) {
	if event == "A14" {
		return requireField(msg, "PID", 4)
	}
	return requireField(msg, "PV1", 19)
}

// buildPeriod implements the start/end rule: start is required, end falls
// back to start for A04 when PV1.45 is absent, and is otherwise omitted.
func buildPeriod(msg *hl7.Message, event string) (*fhir.Period, error) {
	startRaw, err := requireField(msg, "PV1", 44)
	if err != nil {
		return nil, err
	}
	start, err := datetime.ParseDateTime("PV1.44", startRaw)
	if err != nil {
		return nil, err
	}

	period := &fhir.Period{Start: start}
	if endRaw, ok := msg.Field("PV1", 45); ok {
		end, err := datetime.ParseDateTime("PV1.45", endRaw)
		if err != nil {
			return nil, err
		}
		period.End = end
	} else if event == "A04" {
		period.End = start
	}
	return period, nil
}

// deriveStatus derives status from period presence; it is never copied
// from HL7.
func deriveStatus(period *fhir.Period) fhir.EncounterStatus {
	if period.Start == "" && period.End == "" {
		return fhir.EncounterStatusUnknown
	}
	if period.End != "" {
		return fhir.EncounterStatusFinished
	}
	start, err := datetime.ParseInstant(period.Start)
	if err != nil {
		return fhir.EncounterStatusUnknown
	}
	if start.Before(datetime.Now()) {
		return fhir.EncounterStatusInProgress
	}
	return fhir.EncounterStatusPlanned
}

// applyDepartment implements the PV1.3 component-selection rule and resolves
// the winning key through the Resource Map into serviceType/serviceProvider.
func (e *Engine) applyDepartment(msg *hl7.Message, encounter *fhir.Encounter) error {
	dept, ok := selectDepartment(msg)
	if !ok {
		return nil
	}
	serviceType, err := e.resources.Department(dept)
	if err != nil {
		return err
	}
	encounter.ServiceType = &fhir.CodeableConcept{Coding: []fhir.Coding{serviceType}}
	orgRef := refs.Reference("Organization", departmentOrgSystem, dept)
	encounter.ServiceProvider = &orgRef
	return nil
}

// selectDepartment applies the f/l/s precedence over PV1.3's components:
// comp4=f, comp1=l, comp5=s.
func selectDepartment(msg *hl7.Message) (string, bool) {
	raw, ok := msg.Field("PV1", 3)
	if !ok {
		return "", false
	}
	f, fOk := msg.Component(raw, 4)
	l, lOk := msg.Component(raw, 1)
	s, sOk := msg.Component(raw, 5)
	switch {
	case fOk && lOk:
		return f, true
	case lOk:
		return l, true
	case fOk && sOk:
		return s, true
	default:
		return "", false
	}
}

// applyHospitalization maps PV1.4.1 through the AdmitSource table; the whole
// block is omitted when PV1.4 is absent.
func applyHospitalization(msg *hl7.Message, encounter *fhir.Encounter) error {
	raw, ok := msg.Field("PV1", 4)
	if !ok {
		return nil
	}
	comp1, _ := msg.Component(raw, 1)
	admitSource, err := codes.AdmitSource(comp1)
	if err != nil {
		return err
	}
	encounter.Hospitalization = &fhir.Hospitalization{
		AdmitSource: &fhir.CodeableConcept{Coding: []fhir.Coding{admitSource}},
	}
	return nil
}
