package exporter

import (
	"fmt"
	"strings"

	"github.com/plateworks/onshape-export/pkg/onshape"
)

// exportPartAsDXF exports one part through a temporary drawing: create the
// drawing, insert a 1:1 top view, wait for it to render, translate to DXF.
// The temp drawing is released on every exit path. Errors here are
// per-item: the caller logs them and moves on to the next part.
func (w *Workflow) exportPartAsDXF(partStudioID string, part onshape.Part) (ExportResult, error) {
	partName := part.Name
	if partName == "" {
		partName = "unnamed_part"
	}

	drawing, err := w.acquireTempDrawing(partName)
	if err != nil {
		return ExportResult{}, err
	}
	defer drawing.Release()

	if err := drawing.AddViewAndWait(partStudioID, part.PartID); err != nil {
		return ExportResult{}, err
	}

	thicknessMM := w.partThickness(partStudioID, part.PartID)
	if thicknessMM > 0 {
		w.logger.Infof("Part '%s' thickness: %.2fmm", partName, thicknessMM)
	}

	props := w.partProperties(partStudioID, part.PartID, partName)
	filename := BuildDXFFilename(partName, thicknessMM, props)

	result, err := w.executeTranslation(drawing.id, "DXF", partName, filename)
	if err != nil {
		return ExportResult{}, err
	}

	w.logger.Infof("Exported '%s' -> %s (%s)", partName, result.ElementID, result.Filename)
	return result, nil
}

// partThickness reads a part's bounding-box Z extent. Failures are soft:
// the filename simply loses its thickness prefix.
func (w *Workflow) partThickness(partStudioID, partID string) float64 {
	box, err := w.api.PartBoundingBox(w.ctx, partStudioID, partID)
	if err != nil {
		w.logger.Warnf("Failed to get bounding box for part %s: %v", partID, err)
		return 0
	}
	return ThicknessFromBoundingBox(box)
}

// partProperties fetches a part's filename properties, warning about
// whatever is missing. Failures degrade to the fallback naming scheme.
func (w *Workflow) partProperties(partStudioID, partID, partName string) PartProperties {
	meta, err := w.api.PartMetadata(w.ctx, partStudioID, partID)
	if err != nil {
		w.logger.Warnf("Failed to get properties for part %s: %v", partID, err)
		return PartProperties{}
	}

	props, missing := ExtractProperties(meta, true)
	if len(missing) > 0 {
		w.logger.Warnf("Part '%s' missing properties: %s", partName, strings.Join(missing, ", "))
	}
	return props
}

// exportPartStudio exports every part of one Part Studio as DXF, in two
// phases: flat patterns first (already unfolded and oriented), then the
// remaining regular parts under the orientation feature. Per-part failures
// are swallowed; structural failures (part listing, feature mutation)
// propagate and abort the run.
func (w *Workflow) exportPartStudio(partStudio onshape.Element) ([]ExportResult, error) {
	w.logger.Infof("Processing Part Studio: %s", partStudio.Name)

	allParts, err := w.api.ListParts(w.ctx, partStudio.ID, true)
	if err != nil {
		return nil, fmt.Errorf("list parts of %q: %w", partStudio.Name, err)
	}

	flatPatterns, regularParts := CategorizeParts(allParts)
	w.logger.Infof("Found %d flat patterns, %d regular parts", len(flatPatterns), len(regularParts))

	var results []ExportResult
	for _, flat := range flatPatterns {
		result, err := w.exportPartAsDXF(partStudio.ID, flat)
		if err != nil {
			w.logger.Errorf("Failed to export flat pattern '%s': %v", flat.Name, err)
			continue
		}
		results = append(results, result)
	}

	if len(regularParts) == 0 {
		w.logger.Infof("No regular parts to export in %s", partStudio.Name)
		return results, nil
	}

	features, err := w.api.Features(w.ctx, partStudio.ID)
	if err != nil {
		return results, fmt.Errorf("list features of %q: %w", partStudio.Name, err)
	}

	orientFeature, ok := FindOrientFeature(features)
	if !ok {
		w.logger.Warnf("No 'Orient Plates for Export' feature in %s, skipping %d regular parts",
			partStudio.Name, len(regularParts))
		return results, nil
	}

	err = w.withOrientFeature(partStudio.ID, orientFeature, func() error {
		orientedParts, err := w.api.ListParts(w.ctx, partStudio.ID, false)
		if err != nil {
			return fmt.Errorf("list oriented parts of %q: %w", partStudio.Name, err)
		}

		for _, part := range orientedParts {
			result, err := w.exportPartAsDXF(partStudio.ID, part)
			if err != nil {
				w.logger.Errorf("Failed to export part '%s': %v", part.Name, err)
				continue
			}
			results = append(results, result)
		}
		return nil
	})
	return results, err
}

// exportDrawingAsPDF exports one existing drawing as PDF, naming it from
// the properties of the first element the drawing references. All failures
// are per-item.
func (w *Workflow) exportDrawingAsPDF(drawing onshape.Element) (ExportResult, error) {
	w.logger.Infof("Processing drawing: %s", drawing.Name)

	var props PartProperties
	missing := []string{"Part Number", "Revision"}

	refs, err := w.api.DrawingReferences(w.ctx, drawing.ID)
	if err != nil {
		w.logger.Warnf("Failed to get references of drawing '%s': %v", drawing.Name, err)
	} else if len(refs) > 0 && refs[0].TargetElementID != "" {
		meta, err := w.api.ElementMetadata(w.ctx, refs[0].TargetElementID)
		if err != nil {
			w.logger.Warnf("Failed to get properties for element %s: %v", refs[0].TargetElementID, err)
		} else {
			props, missing = ExtractProperties(meta, false)
		}
	}

	if len(missing) > 0 {
		w.logger.Warnf("Drawing '%s' missing properties: %s", drawing.Name, strings.Join(missing, ", "))
	}

	filename := BuildPDFFilename(drawing.Name, props)

	result, err := w.executeTranslation(drawing.ID, "PDF", drawing.Name, filename)
	if err != nil {
		return ExportResult{}, err
	}

	w.logger.Infof("Exported '%s' -> %s (%s)", drawing.Name, result.ElementID, result.Filename)
	return result, nil
}
