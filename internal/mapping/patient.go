package mapping

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/diz-unimr/adt2fhir/internal/codes"
	"github.com/diz-unimr/adt2fhir/internal/datetime"
	"github.com/diz-unimr/adt2fhir/internal/faults"
	"github.com/diz-unimr/adt2fhir/internal/hl7"
	"github.com/diz-unimr/adt2fhir/internal/refs"
	"github.com/diz-unimr/adt2fhir/pkg/fhir"
)

const (
	iso21090QualifierExt = "http://hl7.org/fhir/StructureDefinition/iso21090-EN-qualifier"
	namenszusatzExt      = "http://fhir.de/StructureDefinition/humanname-namenszusatz"
	ownPrefixExt         = "http://hl7.org/fhir/StructureDefinition/humanname-own-prefix"
)

// mapPatient runs the Patient Mapper's dispatch step and returns the bundle
// entries it produces for event (zero, one, or an error).
func (e *Engine) mapPatient(msg *hl7.Message, event string) ([]fhir.BundleEntry, error) {
	action, ok := dispatchPatient(event)
	if !ok {
		return nil, faults.NewMessageContentUnexpected("EVN.1", "a recognized ADT event type", event)
	}

	switch action {
	case patientActionNone:
		return nil, nil
	case patientActionPatch:
		return e.mapPatientMerge(msg)
	default:
		return e.mapPatientResource(msg, action)
	}
}

func (e *Engine) mapPatientResource(msg *hl7.Message, action patientAction) ([]fhir.BundleEntry, error) {
	patient, err := e.buildPatient(msg)
	if err != nil {
		return nil, err
	}
	id, ok := patient.UsualIdentifier()
	if !ok {
		return nil, faults.NewBuilderError("Patient.identifier", "missing use=usual identifier")
	}

	entry := fhir.BundleEntry{Resource: patient}
	switch action {
	case patientActionUpdateAsCreate:
		entry.Request = fhir.UpdateAsCreate(fhir.ResourceTypePatient, id.System, id.Value)
	case patientActionConditionalCreate:
		entry.Request = fhir.ConditionalCreate(fhir.ResourceTypePatient, id.System, id.Value)
		entry.FullURL = "urn:uuid:" + uuid.NewString()
	}
	return []fhir.BundleEntry{entry}, nil
}

// buildPatient assembles the Patient resource from PID.
func (e *Engine) buildPatient(msg *hl7.Message) (*fhir.Patient, error) {
	pid2, err := requireField(msg, "PID", 2)
	if err != nil {
		return nil, err
	}
	id, err := refs.UsualIdentifier(e.cfg.Person.System, pid2)
	if err != nil {
		return nil, err
	}

	patient := fhir.NewPatient()
	patient.Meta = &fhir.Meta{Profile: []string{e.cfg.Person.Profile}}
	patient.Identifier = []fhir.Identifier{id}

	if name, ok := buildPrimaryName(msg); ok {
		patient.Name = append(patient.Name, name)
	}
	if name, ok := buildMaidenName(msg); ok {
		patient.Name = append(patient.Name, name)
	}

	if raw, ok := msg.Field("PID", 7); ok {
		date, err := datetime.ParseDate("PID.7", raw)
		if err != nil {
			return nil, err
		}
		patient.BirthDate = date
	}

	if raw, ok := msg.Field("PID", 8); ok {
		patient.Gender = codes.Gender(raw)
	}

	if addr, ok := buildAddress(msg); ok {
		patient.Address = []fhir.Address{addr}
	}

	if raw, ok := msg.Field("PID", 16); ok {
		comp1, _ := msg.Component(raw, 1)
		ms := codes.MaritalStatus(comp1)
		patient.MaritalStatus = &ms
	}

	if err := applyMultipleBirth(msg, patient); err != nil {
		return nil, err
	}
	if err := applyDeceased(msg, patient); err != nil {
		return nil, err
	}

	return patient, nil
}

// buildPrimaryName builds HumanName[0] from PID.5.
func buildPrimaryName(msg *hl7.Message) (fhir.HumanName, bool) {
	raw, ok := msg.Field("PID", 5)
	if !ok {
		return fhir.HumanName{}, false
	}
	name := fhir.HumanName{}
	if family, ok := msg.Component(raw, 1); ok {
		name.Family = family
	}
	if given, ok := msg.Component(raw, 2); ok {
		name.Given = []string{given}
	}
	if prefix, ok := msg.Component(raw, 6); ok {
		name.Prefix = []string{prefix}
		name.PrefixExt = []fhir.Element{{Extension: []fhir.Extension{{URL: iso21090QualifierExt, ValueCode: "AC"}}}}
	}
	if namenszusatz, ok := msg.Component(raw, 4); ok {
		name.FamilyExt = &fhir.Element{Extension: []fhir.Extension{{URL: namenszusatzExt, ValueString: namenszusatz}}}
	}
	// comp5 (own prefix), when present, overrides the namenszusatz extension.
	if ownPrefix, ok := msg.Component(raw, 5); ok {
		name.FamilyExt = &fhir.Element{Extension: []fhir.Extension{{URL: ownPrefixExt, ValueString: ownPrefix}}}
	}
	if use, ok := msg.Component(raw, 7); ok {
		switch use {
		case "L":
			name.Use = "official"
		case "M", "B":
			name.Use = "maiden"
		}
	}
	return name, true
}

// buildMaidenName builds the second HumanName (use=maiden) from PID.6.
func buildMaidenName(msg *hl7.Message) (fhir.HumanName, bool) {
	raw, ok := msg.Field("PID", 6)
	if !ok {
		return fhir.HumanName{}, false
	}
	name := fhir.HumanName{Use: "maiden"}
	if family, ok := msg.Component(raw, 1); ok {
		name.Family = family
	}
	if given, ok := msg.Component(raw, 2); ok {
		name.Given = []string{given}
	}
	return name, true
}

// buildAddress builds PID.11 into a single Address.
func buildAddress(msg *hl7.Message) (fhir.Address, bool) {
	raw, ok := msg.Field("PID", 11)
	if !ok {
		return fhir.Address{}, false
	}
	addr := fhir.Address{Type: fhir.AddressTypeBoth}
	if lines, ok := msg.SubComponents(raw, 1); ok {
		addr.Line = lines
	}
	if city, ok := msg.Component(raw, 3); ok {
		addr.City = city
	}
	if postal, ok := msg.Component(raw, 5); ok {
		addr.PostalCode = postal
	}
	if country, ok := msg.Component(raw, 6); ok {
		addr.Country = country
	}
	return addr, true
}

// applyMultipleBirth combines the PID.24 flag with the PID.25 count.
func applyMultipleBirth(msg *hl7.Message, patient *fhir.Patient) error {
	flag, hasFlag := msg.Field("PID", 24)
	number, hasNumber := msg.Field("PID", 25)
	if !hasFlag && !hasNumber {
		return nil
	}

	switch flag {
	case "Y":
		if !hasNumber {
			t := true
			patient.MultipleBirthBoolean = &t
			return nil
		}
		n, err := strconv.Atoi(number)
		if err != nil {
			return faults.NewFormattingError("PID.25", number, "not an integer")
		}
		patient.MultipleBirthInteger = &n
		return nil
	case "N":
		if !hasNumber {
			f := false
			patient.MultipleBirthBoolean = &f
			return nil
		}
		return faults.NewMessageContentUnexpected("PID.24", "Y", flag)
	default:
		return faults.NewMessageContentUnexpected("PID.24", "Y or N", flag)
	}
}

// applyDeceased implements PID.29/PID.30: a deceased datetime takes priority
// over the boolean flag.
func applyDeceased(msg *hl7.Message, patient *fhir.Patient) error {
	if raw, ok := msg.Field("PID", 29); ok {
		dt, err := datetime.ParseDateTime("PID.29", raw)
		if err != nil {
			return err
		}
		patient.DeceasedDateTime = &dt
		return nil
	}
	if flag, ok := msg.Field("PID", 30); ok && flag == "Y" {
		t := true
		patient.DeceasedBoolean = &t
	}
	return nil
}

// mapPatientMerge builds the Patient-merge Patch form for A34/A40.
// MRG.1 names the conditional target (the record being replaced); PID.2
// names the surviving record the nested `other` Reference points to.
func (e *Engine) mapPatientMerge(msg *hl7.Message) ([]fhir.BundleEntry, error) {
	mrg1, err := requireField(msg, "MRG", 1)
	if err != nil {
		return nil, err
	}
	pid2, err := requireField(msg, "PID", 2)
	if err != nil {
		return nil, err
	}

	system := e.cfg.Person.System
	other := refs.Reference(fhir.ResourceTypePatient, system, pid2)
	params := fhir.NewPatientLinkPatch(other.Reference)
	req := fhir.Patch(fhir.ResourceTypePatient, system, mrg1)

	return []fhir.BundleEntry{{Resource: params, Request: req}}, nil
}
