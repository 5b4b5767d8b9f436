package fhir

// ResourceTypeParameters is the literal FHIR resource type name used for the
// Patient-merge Patch form.
const ResourceTypeParameters = "Parameters"

// Parameter is one (possibly nested) FHIR Parameters.parameter entry. Only
// the value[x] variants this service ever emits are modeled.
type Parameter struct {
	Name            string      `json:"name"`
	ValueCode       string      `json:"valueCode,omitempty"`
	ValueString     string      `json:"valueString,omitempty"`
	ValueReference  *Reference  `json:"valueReference,omitempty"`
	Part            []Parameter `json:"part,omitempty"`
}

// Parameters wraps the single `operation` parameter the Patient-merge
// builder produces: an "add Patient.link" FHIR Patch operation.
type Parameters struct {
	ResourceType string      `json:"resourceType"`
	Parameter    []Parameter `json:"parameter"`
}

// NewPatientLinkPatch builds the Parameters resource for the Patient-merge
// Patch form: add a `link` element whose `other` is a Reference to the
// surviving patient and whose `type` is `replaced-by`.
func NewPatientLinkPatch(otherReference string) *Parameters {
	return &Parameters{
		ResourceType: ResourceTypeParameters,
		Parameter: []Parameter{
			{
				Name: "operation",
				Part: []Parameter{
					{Name: "type", ValueCode: "add"},
					{Name: "path", ValueString: "Patient"},
					{Name: "name", ValueString: "link"},
					{
						Name: "value",
						Part: []Parameter{
							{Name: "other", ValueReference: &Reference{Reference: otherReference}},
							{Name: "type", ValueCode: "replaced-by"},
						},
					},
				},
			},
		},
	}
}
