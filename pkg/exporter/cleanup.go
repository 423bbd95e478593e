package exporter

import (
	"github.com/plateworks/onshape-export/pkg/onshape"
)

// sweepTempElements deletes leftover temporary elements from interrupted
// prior runs. Individual delete failures are tolerated; whatever survives
// will be swept again next run.
func (w *Workflow) sweepTempElements() (int, error) {
	elements, err := w.api.ListElements(w.ctx)
	if err != nil {
		return 0, err
	}

	var stale []onshape.Element
	for _, e := range elements {
		if IsTempElementName(e.Name) {
			stale = append(stale, e)
		}
	}

	deleted := w.deleteElements(stale)
	if deleted > 0 {
		w.logger.Infof("Cleaned up %d temporary elements", deleted)
	}
	return deleted, nil
}

// cleanupExports deletes every DXF and PDF blob in the document. It is the
// destructive half of --clean-before/--clean-after and refuses to touch an
// immutable context: a version-mode run makes this a logged no-op with
// zero delete calls issued.
func (w *Workflow) cleanupExports() (int, error) {
	if !w.ctx.IsMutable() {
		w.logger.Warnf("Cannot clean up exports in immutable context (version/microversion)")
		return 0, nil
	}

	elements, err := w.api.ListElements(w.ctx)
	if err != nil {
		return 0, err
	}

	blobs := FilterBlobsByExtension(elements, ".dxf", ".pdf")
	if len(blobs) == 0 {
		w.logger.Infof("No DXF/PDF blobs to clean up")
		return 0, nil
	}

	w.logger.Infof("Cleaning up %d DXF/PDF files...", len(blobs))
	deleted := w.deleteElements(blobs)
	w.logger.Infof("Deleted %d export files", deleted)
	return deleted, nil
}

// deleteElements deletes each element, counting successes. Failures are
// logged and skipped.
func (w *Workflow) deleteElements(elements []onshape.Element) int {
	deleted := 0
	for _, e := range elements {
		if err := w.api.DeleteElement(w.ctx, e.ID); err != nil {
			w.logger.Warnf("Failed to delete element %s: %v", e.ID, err)
			continue
		}
		deleted++
	}
	return deleted
}
