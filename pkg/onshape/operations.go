package onshape

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ListElements returns every tab in the document. The endpoint returns
// either a bare array or an {"elements": [...]} wrapper depending on API
// version; both are normalized to a plain slice here.
func (c *Client) ListElements(ctx DocContext) ([]Element, error) {
	body, err := c.do(http.MethodGet, "/documents"+ctx.Path("/elements"), nil, nil)
	if err != nil {
		return nil, err
	}

	var bare []Element
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}

	var wrapped elementList
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("parse elements response: %w", err)
	}
	return wrapped.Elements, nil
}

// Features returns the feature list of a Part Studio.
func (c *Client) Features(ctx DocContext, elementID string) ([]Feature, error) {
	var resp featureList
	endpoint := "/partstudios" + ctx.Path("/e/"+elementID+"/features")
	if err := c.getJSON(endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Features, nil
}

// ListParts returns the parts of a Part Studio. With includeFlat set the
// response also contains the flattened bodies of sheet metal parts.
func (c *Client) ListParts(ctx DocContext, elementID string, includeFlat bool) ([]Part, error) {
	var query map[string]string
	if includeFlat {
		query = map[string]string{"includeFlatParts": "true"}
	}

	var parts []Part
	endpoint := "/parts" + ctx.Path("/e/"+elementID)
	if err := c.getJSON(endpoint, query, &parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// PartMetadata returns the metadata properties of a single part.
func (c *Client) PartMetadata(ctx DocContext, elementID, partID string) (Metadata, error) {
	var meta Metadata
	endpoint := "/metadata" + ctx.Path("/e/"+elementID+"/p/"+partID)
	err := c.getJSON(endpoint, nil, &meta)
	return meta, err
}

// ElementMetadata returns the metadata properties of an element.
func (c *Client) ElementMetadata(ctx DocContext, elementID string) (Metadata, error) {
	var meta Metadata
	endpoint := "/metadata" + ctx.Path("/e/"+elementID)
	err := c.getJSON(endpoint, nil, &meta)
	return meta, err
}

// PartBoundingBox returns a part's axis-aligned bounding box in meters.
func (c *Client) PartBoundingBox(ctx DocContext, elementID, partID string) (BoundingBox, error) {
	var box BoundingBox
	endpoint := "/parts" + ctx.Path("/e/"+elementID+"/partid/"+partID+"/boundingboxes")
	err := c.getJSON(endpoint, nil, &box)
	return box, err
}

// CreateDrawing creates an empty drawing element using the default
// template and returns its element ID.
func (c *Client) CreateDrawing(ctx DocContext, name string) (string, error) {
	payload := map[string]any{
		"drawingName":        name,
		"standard":           "ISO",
		"templateDocumentId": defaultTemplateDocument,
		"templateElementId":  defaultTemplateElement,
		"units":              "MILLIMETER",
		"size":               "A",
		"border":             false,
		"titleblock":         false,
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := c.postJSON("/drawings"+ctx.Path("/create"), payload, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("create drawing %q: no element id in response", name)
	}
	return resp.ID, nil
}

// DeleteElement removes an element from the document.
func (c *Client) DeleteElement(ctx DocContext, elementID string) error {
	_, err := c.do(http.MethodDelete, "/elements"+ctx.Path("/e/"+elementID), nil, nil)
	return err
}

// RenameElement updates an element's Name metadata property. The Name
// property ID differs per document, so it is looked up first.
func (c *Client) RenameElement(ctx DocContext, elementID, newName string) error {
	meta, err := c.ElementMetadata(ctx, elementID)
	if err != nil {
		return err
	}

	var namePropertyID string
	for _, p := range meta.Properties {
		if p.Name == "Name" {
			namePropertyID = p.PropertyID
			break
		}
	}
	if namePropertyID == "" {
		return fmt.Errorf("rename element %s: no Name property in metadata", elementID)
	}

	payload := map[string]any{
		"properties": []map[string]any{
			{"propertyId": namePropertyID, "value": newName},
		},
	}
	return c.postJSON("/metadata"+ctx.Path("/e/"+elementID), payload, nil)
}

// AddDrawingView inserts a 1:1 top view of a part into a drawing. The view
// renders asynchronously; callers must wait for the drawing's microversion
// to change before translating it.
func (c *Client) AddDrawingView(ctx DocContext, drawingID, sourceElementID, partID string) error {
	payload := map[string]any{
		"description": "Add Top View 1:1",
		"jsonRequests": []map[string]any{
			{
				"messageName":   "onshapeCreateViews",
				"formatVersion": "2021-01-01",
				"description":   "Add top view",
				"views": []map[string]any{
					{
						"viewType":        "TopLevel",
						"position":        map[string]float64{"x": 0.1, "y": 0.1},
						"scale":           map[string]any{"scaleSource": "Custom", "numerator": 1, "denumerator": 1},
						"orientation":     "top",
						"showCentermarks": false,
						"showCenterlines": false,
						"reference": map[string]any{
							"elementId": sourceElementID,
							"idTag":     partID,
						},
					},
				},
			},
		},
	}
	return c.postJSON("/drawings"+ctx.Path("/e/"+drawingID+"/modify"), payload, nil)
}

// UpdateFeatureSuppression sets a feature's suppression flag. The full
// feature body is echoed back with only the flag changed, as the endpoint
// requires.
func (c *Client) UpdateFeatureSuppression(ctx DocContext, elementID string, feature Feature, suppressed bool) error {
	feature.Suppressed = suppressed
	payload := map[string]any{
		"feature":              feature,
		"serializationVersion": "1.2.15",
		"sourceMicroversion":   "",
	}
	endpoint := "/partstudios" + ctx.Path("/e/"+elementID+"/features/featureid/"+feature.FeatureID)
	return c.postJSON(endpoint, payload, nil)
}

// CreateTranslation starts a server-side conversion of a drawing into the
// given format ("DXF" or "PDF") and returns the job ID. The result is
// stored in the document under destinationName, subject to export rules.
func (c *Client) CreateTranslation(ctx DocContext, elementID, format, destinationName string) (string, error) {
	payload := map[string]any{
		"formatName":               format,
		"storeInDocument":          true,
		"evaluateExportRule":       true,
		"destinationName":          destinationName,
		"includeFormedCentermarks": false,
	}
	if format == "DXF" {
		// Flat pattern exports want bend centerlines, not bend lines.
		payload["includeBendCenterlines"] = true
		payload["includeBendLines"] = false
	}

	var resp Translation
	endpoint := "/drawings" + ctx.Path("/e/"+elementID+"/translations")
	if err := c.postJSON(endpoint, payload, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("translation of element %s: no job id in response", elementID)
	}
	return resp.ID, nil
}

// Translation fetches the current status of a translation job.
func (c *Client) Translation(jobID string) (Translation, error) {
	var resp Translation
	err := c.getJSON("/translations/"+jobID, nil, &resp)
	return resp, err
}

// DownloadBlob returns the raw content of a blob element.
func (c *Client) DownloadBlob(ctx DocContext, elementID string) ([]byte, error) {
	return c.do(http.MethodGet, "/blobelements"+ctx.Path("/e/"+elementID), nil, nil)
}

// DrawingReferences returns the elements a drawing's views reference. The
// endpoint's response shape varies across API versions (bare array,
// "referencedElements", or "references"); all are normalized here.
func (c *Client) DrawingReferences(ctx DocContext, drawingID string) ([]DrawingReference, error) {
	body, err := c.do(http.MethodGet, "/appelements"+ctx.Path("/e/"+drawingID+"/references"), nil, nil)
	if err != nil {
		return nil, err
	}

	var bare []DrawingReference
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}

	var wrapped drawingReferenceList
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("parse drawing references response: %w", err)
	}
	if wrapped.ReferencedElements != nil {
		return wrapped.ReferencedElements, nil
	}
	return wrapped.References, nil
}

// ListDocuments returns the caller's most recently modified documents.
func (c *Client) ListDocuments(limit int) ([]Document, error) {
	query := map[string]string{
		"sortColumn": "modifiedAt",
		"sortOrder":  "desc",
		"limit":      fmt.Sprintf("%d", limit),
	}

	body, err := c.do(http.MethodGet, "/documents", query, nil)
	if err != nil {
		return nil, err
	}

	var wrapped documentList
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Items != nil {
		return wrapped.Items, nil
	}

	var bare []Document
	if err := json.Unmarshal(body, &bare); err != nil {
		return nil, fmt.Errorf("parse documents response: %w", err)
	}
	return bare, nil
}

// ListWorkspaces returns the workspaces of a document.
func (c *Client) ListWorkspaces(documentID string) ([]Workspace, error) {
	var workspaces []Workspace
	err := c.getJSON("/documents/d/"+documentID+"/workspaces", nil, &workspaces)
	return workspaces, err
}

// ListVersions returns the versions of a document.
func (c *Client) ListVersions(documentID string) ([]Version, error) {
	var versions []Version
	err := c.getJSON("/documents/d/"+documentID+"/versions", nil, &versions)
	return versions, err
}
