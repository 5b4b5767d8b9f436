package fhir

// HTTPVerb is the closed set of `BundleEntry.request.method` values this
// service emits.
type HTTPVerb string

const (
	HTTPVerbPut   HTTPVerb = "PUT"
	HTTPVerbPost  HTTPVerb = "POST"
	HTTPVerbPatch HTTPVerb = "PATCH"
)

// BundleType is the closed set of `Bundle.type` values; this service only
// ever produces transaction bundles.
type BundleType string

const BundleTypeTransaction BundleType = "transaction"

// BundleEntryRequest carries the method/url/ifNoneExist triple that encodes
// one of the three conditional request forms the assembler emits.
type BundleEntryRequest struct {
	Method       HTTPVerb `json:"method"`
	URL          string   `json:"url"`
	IfNoneExist  string   `json:"ifNoneExist,omitempty"`
}

// BundleEntry pairs a resource with the request envelope that tells the
// receiving FHIR server how to apply it. FullURL is set only for
// ConditionalCreate entries, which have no identifier-based URL to address
// them by until the receiving server assigns one; a client-generated
// urn:uuid gives other entries in the same transaction something stable to
// reference.
type BundleEntry struct {
	FullURL  string             `json:"fullUrl,omitempty"`
	Resource interface{}        `json:"resource"`
	Request  BundleEntryRequest `json:"request"`
}

// Bundle is the outer transaction envelope the Bundle Assembler produces.
type Bundle struct {
	ResourceType string        `json:"resourceType"`
	Type         BundleType    `json:"type"`
	Entry        []BundleEntry `json:"entry"`
}

// NewTransactionBundle wraps entries in a transaction Bundle. Callers are
// expected to have already checked entries is non-empty; an
// empty Bundle is never constructed by the assembler.
func NewTransactionBundle(entries []BundleEntry) *Bundle {
	return &Bundle{
		ResourceType: "Bundle",
		Type:         BundleTypeTransaction,
		Entry:        entries,
	}
}

// UpdateAsCreate builds the PUT-by-identifier entry request form.
func UpdateAsCreate(resourceType, system, value string) BundleEntryRequest {
	return BundleEntryRequest{Method: HTTPVerbPut, URL: ConditionalURL(resourceType, system, value)}
}

// ConditionalCreate builds the POST-with-ifNoneExist entry request form.
func ConditionalCreate(resourceType, system, value string) BundleEntryRequest {
	return BundleEntryRequest{
		Method:      HTTPVerbPost,
		URL:         resourceType,
		IfNoneExist: "identifier=" + system + "|" + value,
	}
}

// Patch builds the PATCH-by-identifier entry request form.
func Patch(resourceType, system, value string) BundleEntryRequest {
	return BundleEntryRequest{Method: HTTPVerbPatch, URL: ConditionalURL(resourceType, system, value)}
}

// ConditionalURL builds the `ResourceType?identifier=system|value` form
// shared by UpdateAsCreate and Patch.
func ConditionalURL(resourceType, system, value string) string {
	return resourceType + "?identifier=" + system + "|" + value
}
