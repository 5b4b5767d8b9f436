package fhir

// ResourceTypePatient is the literal FHIR resource type name, used in
// conditional-search reference strings and `ifNoneExist` URLs.
const ResourceTypePatient = "Patient"

// Patient is the resource produced by the Patient Mapper. Polymorphic
// value[x] fields (deceased, multipleBirth) are modeled as separate
// pointers; at most one of each pair is ever populated, mirroring the
// FHIR JSON representation where only the type-suffixed key is emitted.
type Patient struct {
	ResourceType string       `json:"resourceType"`
	Meta         *Meta        `json:"meta,omitempty"`
	Identifier   []Identifier `json:"identifier"`
	Name         []HumanName  `json:"name,omitempty"`
	Gender       string       `json:"gender,omitempty"`
	BirthDate    string       `json:"birthDate,omitempty"`
	Address      []Address    `json:"address,omitempty"`

	MaritalStatus *CodeableConcept `json:"maritalStatus,omitempty"`

	DeceasedBoolean  *bool   `json:"deceasedBoolean,omitempty"`
	DeceasedDateTime *string `json:"deceasedDateTime,omitempty"`

	MultipleBirthBoolean *bool `json:"multipleBirthBoolean,omitempty"`
	MultipleBirthInteger *int  `json:"multipleBirthInteger,omitempty"`
}

// NewPatient returns an empty Patient with its resourceType discriminator
// set, ready for a builder to populate.
func NewPatient() *Patient {
	return &Patient{ResourceType: ResourceTypePatient}
}

// UsualIdentifier returns the identifier with use=usual, of which there is
// always exactly one, or false if none is present (a builder defect if it
// ever occurs post-construction).
func (p *Patient) UsualIdentifier() (Identifier, bool) {
	for _, id := range p.Identifier {
		if id.Use == IdentifierUseUsual {
			return id, true
		}
	}
	return Identifier{}, false
}
