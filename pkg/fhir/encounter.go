package fhir

// ResourceTypeEncounter is the literal FHIR resource type name.
const ResourceTypeEncounter = "Encounter"

// EncounterStatus is the closed set of `Encounter.status` values this
// service derives from period presence; it is never copied from HL7.
type EncounterStatus string

const (
	EncounterStatusUnknown    EncounterStatus = "unknown"
	EncounterStatusFinished   EncounterStatus = "finished"
	EncounterStatusInProgress EncounterStatus = "in-progress"
	EncounterStatusPlanned    EncounterStatus = "planned"
)

// Hospitalization carries the admit-source Coding derived from PV1.4.1.
type Hospitalization struct {
	AdmitSource *CodeableConcept `json:"admitSource,omitempty"`
}

// Encounter is the resource produced by the Encounter Mapper.
type Encounter struct {
	ResourceType string           `json:"resourceType"`
	Meta         *Meta            `json:"meta,omitempty"`
	Identifier   []Identifier     `json:"identifier"`
	Status       EncounterStatus  `json:"status"`
	Class        Coding           `json:"class"`
	Type         []CodeableConcept `json:"type,omitempty"`
	Subject      *Reference       `json:"subject,omitempty"`
	Period       *Period          `json:"period,omitempty"`

	ServiceType     *CodeableConcept `json:"serviceType,omitempty"`
	ServiceProvider *Reference       `json:"serviceProvider,omitempty"`
	Hospitalization *Hospitalization `json:"hospitalization,omitempty"`
}

// NewEncounter returns an empty Encounter with its resourceType
// discriminator set, ready for a builder to populate.
func NewEncounter() *Encounter {
	return &Encounter{ResourceType: ResourceTypeEncounter}
}

// UsualIdentifier returns the routing identifier (use=usual, always the
// first entry by construction).
func (e *Encounter) UsualIdentifier() (Identifier, bool) {
	for _, id := range e.Identifier {
		if id.Use == IdentifierUseUsual {
			return id, true
		}
	}
	return Identifier{}, false
}
