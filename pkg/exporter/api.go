package exporter

import (
	"github.com/plateworks/onshape-export/pkg/onshape"
)

// API is the remote document surface the workflow consumes. *onshape.Client
// satisfies it; tests substitute an in-memory fake.
type API interface {
	ListElements(ctx onshape.DocContext) ([]onshape.Element, error)
	Features(ctx onshape.DocContext, elementID string) ([]onshape.Feature, error)
	ListParts(ctx onshape.DocContext, elementID string, includeFlat bool) ([]onshape.Part, error)
	PartMetadata(ctx onshape.DocContext, elementID, partID string) (onshape.Metadata, error)
	ElementMetadata(ctx onshape.DocContext, elementID string) (onshape.Metadata, error)
	PartBoundingBox(ctx onshape.DocContext, elementID, partID string) (onshape.BoundingBox, error)
	CreateDrawing(ctx onshape.DocContext, name string) (string, error)
	DeleteElement(ctx onshape.DocContext, elementID string) error
	RenameElement(ctx onshape.DocContext, elementID, newName string) error
	AddDrawingView(ctx onshape.DocContext, drawingID, sourceElementID, partID string) error
	UpdateFeatureSuppression(ctx onshape.DocContext, elementID string, feature onshape.Feature, suppressed bool) error
	CreateTranslation(ctx onshape.DocContext, elementID, format, destinationName string) (string, error)
	Translation(jobID string) (onshape.Translation, error)
	DownloadBlob(ctx onshape.DocContext, elementID string) ([]byte, error)
	DrawingReferences(ctx onshape.DocContext, drawingID string) ([]onshape.DrawingReference, error)
}

var _ API = (*onshape.Client)(nil)

// ExportResult names one successfully translated artifact: the blob element
// holding it and the filename it will carry in the archive.
type ExportResult struct {
	ElementID string
	Filename  string
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}
