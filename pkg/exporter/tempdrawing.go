package exporter

import (
	"fmt"
	"time"
)

// tempDrawing is a scoped transient drawing element. Acquire it with
// acquireTempDrawing, defer Release immediately, and the drawing is deleted
// on every exit path. A failed delete is logged, never escalated: the
// reserved-prefix sweep at the start of the next run picks up strays.
type tempDrawing struct {
	w                *Workflow
	id               string
	name             string
	baseMicroversion string
}

// acquireTempDrawing creates a uniquely named transient drawing for the
// given part and records its starting microversion so that later view
// insertion can be synchronized on.
func (w *Workflow) acquireTempDrawing(partName string) (*tempDrawing, error) {
	name := fmt.Sprintf("TEMP_%s_%d", partName, time.Now().Unix())

	id, err := w.api.CreateDrawing(w.ctx, name)
	if err != nil {
		return nil, fmt.Errorf("create temp drawing %q: %w", name, err)
	}

	baseMV, err := w.elementMicroversion(id)
	if err != nil {
		// The drawing exists but its microversion could not be read; still
		// release it before giving up.
		d := &tempDrawing{w: w, id: id, name: name}
		d.Release()
		return nil, fmt.Errorf("read microversion of temp drawing %q: %w", name, err)
	}

	w.logger.Infof("Created temp drawing for '%s'", partName)
	return &tempDrawing{w: w, id: id, name: name, baseMicroversion: baseMV}, nil
}

// AddViewAndWait inserts a 1:1 top view of the target part and blocks until
// the drawing's microversion changes, confirming the view has rendered.
// Translating before that point would export an incomplete drawing.
func (d *tempDrawing) AddViewAndWait(sourceElementID, partID string) error {
	if err := d.w.api.AddDrawingView(d.w.ctx, d.id, sourceElementID, partID); err != nil {
		return fmt.Errorf("add view to temp drawing %q: %w", d.name, err)
	}

	if _, err := d.w.waitForMicroversionChange(d.id, d.baseMicroversion); err != nil {
		return fmt.Errorf("wait for view render in %q: %w", d.name, err)
	}
	return nil
}

// Release deletes the temp drawing. Safe to call more than once.
func (d *tempDrawing) Release() {
	if d.id == "" {
		return
	}
	if err := d.w.api.DeleteElement(d.w.ctx, d.id); err != nil {
		d.w.logger.Warnf("Failed to delete temp drawing %q: %v", d.name, err)
	}
	d.id = ""
}
