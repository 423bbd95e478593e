package onshape

// Element represents a single tab in an Onshape document: a Part Studio,
// a drawing, an uploaded blob, or a third-party application element.
type Element struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ElementType    string `json:"elementType"` // "PARTSTUDIO", "DRAWING", "BLOB", "APPLICATION"
	DataType       string `json:"dataType,omitempty"`
	MicroversionID string `json:"microversionId,omitempty"`
}

// elementList is the wrapper shape the elements endpoint sometimes returns.
// The endpoint historically returned a bare array; newer API versions wrap
// it. Both shapes are normalized in Client.ListElements.
type elementList struct {
	Elements []Element `json:"elements"`
}

// Part represents a solid or sheet body inside a Part Studio. Flattened
// bodies are the unfolded representations of sheet metal parts; their
// UnflattenedPartID points back at the folded original.
type Part struct {
	PartID            string `json:"partId"`
	Name              string `json:"name"`
	IsFlattenedBody   bool   `json:"isFlattenedBody,omitempty"`
	UnflattenedPartID string `json:"unflattenedPartId,omitempty"`
}

// Feature is a single entry in a Part Studio's feature list.
type Feature struct {
	FeatureID  string `json:"featureId"`
	Name       string `json:"name"`
	Suppressed bool   `json:"suppressed"`
}

type featureList struct {
	Features []Feature `json:"features"`
}

// BoundingBox is a part's axis-aligned bounding box in meters.
type BoundingBox struct {
	LowX  float64 `json:"lowX"`
	LowY  float64 `json:"lowY"`
	LowZ  float64 `json:"lowZ"`
	HighX float64 `json:"highX"`
	HighY float64 `json:"highY"`
	HighZ float64 `json:"highZ"`
}

// Property is a single metadata property on a part or element. Values are
// left untyped: the API returns strings for most properties but an object
// with a displayName for materials.
type Property struct {
	PropertyID string `json:"propertyId"`
	Name       string `json:"name"`
	Value      any    `json:"value"`
}

// Metadata is the property set attached to a part or element.
type Metadata struct {
	Properties []Property `json:"properties"`
}

// PropertyValue returns the value of the property with the given ID, or
// nil when absent.
func (m Metadata) PropertyValue(propertyID string) any {
	for _, p := range m.Properties {
		if p.PropertyID == propertyID {
			return p.Value
		}
	}
	return nil
}

// Translation request states reported by the translations endpoint.
const (
	TranslationActive = "ACTIVE"
	TranslationDone   = "DONE"
	TranslationFailed = "FAILED"
)

// Translation is the status of an asynchronous format-conversion job.
type Translation struct {
	ID               string   `json:"id"`
	RequestState     string   `json:"requestState"`
	ResultElementIDs []string `json:"resultElementIds,omitempty"`
	FailureReason    string   `json:"failureReason,omitempty"`
}

// DrawingReference names an element (Part Studio or assembly) that a
// drawing's views are generated from.
type DrawingReference struct {
	TargetElementID string `json:"targetElementId"`
	PartID          string `json:"partId,omitempty"`
}

type drawingReferenceList struct {
	ReferencedElements []DrawingReference `json:"referencedElements"`
	References         []DrawingReference `json:"references"`
}

// Document is a summary entry from the document listing endpoint.
type Document struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ModifiedAt string `json:"modifiedAt,omitempty"`
}

type documentList struct {
	Items []Document `json:"items"`
}

// Workspace is a named mutable branch of a document.
type Workspace struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Version is a named immutable snapshot of a document.
type Version struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt,omitempty"`
}
