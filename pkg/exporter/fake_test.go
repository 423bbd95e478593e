package exporter

import (
	"errors"
	"fmt"
	"time"

	"github.com/plateworks/onshape-export/pkg/onshape"
)

// fakeAPI is an in-memory stand-in for the remote document. Behavior is
// driven by the seeded maps plus a handful of failure toggles; every
// mutating call is recorded so tests can assert on side effects.
type fakeAPI struct {
	elements []onshape.Element
	features map[string][]onshape.Feature
	parts    map[string][]onshape.Part // ListParts(includeFlat=false)
	allParts map[string][]onshape.Part // ListParts(includeFlat=true)
	partMeta map[string]onshape.Metadata
	elemMeta map[string]onshape.Metadata
	boxes    map[string]onshape.BoundingBox
	blobs    map[string][]byte
	refs     map[string][]onshape.DrawingReference

	nextID       int
	deleteCalls  []string
	renames      map[string]string
	suppressions []suppressionEvent
	jobs         map[string]onshape.Translation

	listElementsErr  error
	createDrawingErr error
	addViewErr       error
	deleteErr        error
	listPartsErr     error
	suppressErr      error

	// bumpOnAddView makes AddDrawingView advance the drawing's
	// microversion, simulating a completed render.
	bumpOnAddView bool
	// dropOnAddView removes the drawing instead, simulating an element
	// that disappears mid-wait.
	dropOnAddView bool
	// translationOutcome selects what created translation jobs report:
	// "done", "done-empty", "failed", or "stuck".
	translationOutcome string
}

type suppressionEvent struct {
	featureID  string
	suppressed bool
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		features:           make(map[string][]onshape.Feature),
		parts:              make(map[string][]onshape.Part),
		allParts:           make(map[string][]onshape.Part),
		partMeta:           make(map[string]onshape.Metadata),
		elemMeta:           make(map[string]onshape.Metadata),
		boxes:              make(map[string]onshape.BoundingBox),
		blobs:              make(map[string][]byte),
		refs:               make(map[string][]onshape.DrawingReference),
		renames:            make(map[string]string),
		jobs:               make(map[string]onshape.Translation),
		bumpOnAddView:      true,
		translationOutcome: "done",
	}
}

// newTestWorkflow wires a fake API into a workflow with near-zero timing so
// poll loops resolve instantly.
func newTestWorkflow(api *fakeAPI, ctx onshape.DocContext, outputDir string) *Workflow {
	w := NewWorkflow(api, ctx, outputDir, nil)
	w.Timing = Timing{
		PollInterval:       time.Millisecond,
		TranslationTimeout: 50 * time.Millisecond,
		RenderTimeout:      50 * time.Millisecond,
		RegenerationDelay:  0,
		RenderBuffer:       0,
	}
	return w
}

func (f *fakeAPI) hasElement(id string) bool {
	for _, e := range f.elements {
		if e.ID == id {
			return true
		}
	}
	return false
}

func (f *fakeAPI) ListElements(ctx onshape.DocContext) ([]onshape.Element, error) {
	if f.listElementsErr != nil {
		return nil, f.listElementsErr
	}
	out := make([]onshape.Element, len(f.elements))
	copy(out, f.elements)
	return out, nil
}

func (f *fakeAPI) Features(ctx onshape.DocContext, elementID string) ([]onshape.Feature, error) {
	return f.features[elementID], nil
}

func (f *fakeAPI) ListParts(ctx onshape.DocContext, elementID string, includeFlat bool) ([]onshape.Part, error) {
	if f.listPartsErr != nil {
		return nil, f.listPartsErr
	}
	if includeFlat {
		if parts, ok := f.allParts[elementID]; ok {
			return parts, nil
		}
	}
	return f.parts[elementID], nil
}

func (f *fakeAPI) PartMetadata(ctx onshape.DocContext, elementID, partID string) (onshape.Metadata, error) {
	return f.partMeta[elementID+"/"+partID], nil
}

func (f *fakeAPI) ElementMetadata(ctx onshape.DocContext, elementID string) (onshape.Metadata, error) {
	return f.elemMeta[elementID], nil
}

func (f *fakeAPI) PartBoundingBox(ctx onshape.DocContext, elementID, partID string) (onshape.BoundingBox, error) {
	if box, ok := f.boxes[elementID+"/"+partID]; ok {
		return box, nil
	}
	return onshape.BoundingBox{}, errors.New("no bounding box")
}

func (f *fakeAPI) CreateDrawing(ctx onshape.DocContext, name string) (string, error) {
	if f.createDrawingErr != nil {
		return "", f.createDrawingErr
	}
	f.nextID++
	id := fmt.Sprintf("drawing-%d", f.nextID)
	f.elements = append(f.elements, onshape.Element{
		ID:             id,
		Name:           name,
		ElementType:    "DRAWING",
		MicroversionID: "mv-base",
	})
	return id, nil
}

func (f *fakeAPI) DeleteElement(ctx onshape.DocContext, elementID string) error {
	f.deleteCalls = append(f.deleteCalls, elementID)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, e := range f.elements {
		if e.ID == elementID {
			f.elements = append(f.elements[:i], f.elements[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeAPI) RenameElement(ctx onshape.DocContext, elementID, newName string) error {
	f.renames[elementID] = newName
	return nil
}

func (f *fakeAPI) AddDrawingView(ctx onshape.DocContext, drawingID, sourceElementID, partID string) error {
	if f.addViewErr != nil {
		return f.addViewErr
	}
	for i, e := range f.elements {
		if e.ID != drawingID {
			continue
		}
		if f.dropOnAddView {
			f.elements = append(f.elements[:i], f.elements[i+1:]...)
		} else if f.bumpOnAddView {
			f.elements[i].MicroversionID = "mv-rendered"
		}
		break
	}
	return nil
}

func (f *fakeAPI) UpdateFeatureSuppression(ctx onshape.DocContext, elementID string, feature onshape.Feature, suppressed bool) error {
	if f.suppressErr != nil {
		return f.suppressErr
	}
	f.suppressions = append(f.suppressions, suppressionEvent{featureID: feature.FeatureID, suppressed: suppressed})
	features := f.features[elementID]
	for i := range features {
		if features[i].FeatureID == feature.FeatureID {
			features[i].Suppressed = suppressed
		}
	}
	return nil
}

func (f *fakeAPI) CreateTranslation(ctx onshape.DocContext, elementID, format, destinationName string) (string, error) {
	f.nextID++
	jobID := fmt.Sprintf("job-%d", f.nextID)

	switch f.translationOutcome {
	case "done":
		resultID := fmt.Sprintf("blob-%d", f.nextID)
		f.blobs[resultID] = []byte("export content for " + elementID)
		f.jobs[jobID] = onshape.Translation{
			ID:               jobID,
			RequestState:     onshape.TranslationDone,
			ResultElementIDs: []string{resultID},
		}
	case "done-empty":
		f.jobs[jobID] = onshape.Translation{ID: jobID, RequestState: onshape.TranslationDone}
	case "failed":
		f.jobs[jobID] = onshape.Translation{
			ID:            jobID,
			RequestState:  onshape.TranslationFailed,
			FailureReason: "geometry error",
		}
	default: // stuck
		f.jobs[jobID] = onshape.Translation{ID: jobID, RequestState: onshape.TranslationActive}
	}
	return jobID, nil
}

func (f *fakeAPI) Translation(jobID string) (onshape.Translation, error) {
	job, ok := f.jobs[jobID]
	if !ok {
		return onshape.Translation{}, fmt.Errorf("unknown translation %s", jobID)
	}
	return job, nil
}

func (f *fakeAPI) DownloadBlob(ctx onshape.DocContext, elementID string) ([]byte, error) {
	content, ok := f.blobs[elementID]
	if !ok {
		return nil, fmt.Errorf("no blob %s", elementID)
	}
	return content, nil
}

func (f *fakeAPI) DrawingReferences(ctx onshape.DocContext, drawingID string) ([]onshape.DrawingReference, error) {
	return f.refs[drawingID], nil
}
