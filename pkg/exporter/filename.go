package exporter

import (
	"fmt"
	"strings"

	"github.com/plateworks/onshape-export/pkg/onshape"
)

// PartProperties holds the metadata properties used for filename assembly.
// Empty fields were absent or blank on the server.
type PartProperties struct {
	PartNumber string
	Revision   string
	Material   string
}

// ExtractProperties pulls the filename-relevant properties out of a
// metadata response. The second return value names the properties that
// were missing; callers report them as warnings and fall back to the
// source name. Material is only expected on parts, so element metadata
// lookups pass includeMaterial=false.
func ExtractProperties(meta onshape.Metadata, includeMaterial bool) (PartProperties, []string) {
	var props PartProperties
	var missing []string

	if v := stringProperty(meta.PropertyValue(onshape.PropPartNumber)); v != "" {
		props.PartNumber = v
	} else {
		missing = append(missing, "Part Number")
	}

	if v := stringProperty(meta.PropertyValue(onshape.PropRevision)); v != "" {
		props.Revision = v
	} else {
		missing = append(missing, "Revision")
	}

	if includeMaterial {
		if v := stringProperty(meta.PropertyValue(onshape.PropMaterial)); v != "" {
			props.Material = v
		} else {
			missing = append(missing, "Material")
		}
	}

	return props, missing
}

// stringProperty flattens a metadata property value. Materials arrive as
// an object carrying a displayName; everything else is a plain string.
func stringProperty(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any:
		if name, ok := v["displayName"].(string); ok {
			return name
		}
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FormatThickness renders a plate thickness in millimetres for filename
// prefixes: one decimal place with trailing zero and decimal point
// trimmed, suffixed "mm". Non-positive values yield an empty string.
//
//	FormatThickness(3.0)  == "3mm"
//	FormatThickness(1.50) == "1.5mm"
//	FormatThickness(0)    == ""
func FormatThickness(thicknessMM float64) string {
	if thicknessMM <= 0 {
		return ""
	}
	formatted := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.1f", thicknessMM), "0"), ".")
	return formatted + "mm"
}

// ThicknessFromBoundingBox derives a plate thickness in millimetres from a
// server-reported bounding box (meters). Assumes the part is oriented with
// its face normal parallel to the Z axis. Degenerate extents (under a
// hundredth of a millimetre) yield zero.
func ThicknessFromBoundingBox(box onshape.BoundingBox) float64 {
	zExtent := box.HighZ - box.LowZ
	if zExtent < 0 {
		zExtent = -zExtent
	}
	thicknessMM := zExtent * 1000
	if thicknessMM <= 0.01 {
		return 0
	}
	return thicknessMM
}

// BuildDXFFilename assembles the DXF filename for a part:
//
//	<thickness>mm <material>_<partNumber>_Rev <revision>.dxf
//
// falling back to the part's own name (with optional thickness prefix)
// when part number or revision is missing.
func BuildDXFFilename(partName string, thicknessMM float64, props PartProperties) string {
	return buildExportFilename(partName, props, "dxf", thicknessMM, true)
}

// BuildPDFFilename assembles the PDF filename for a drawing:
//
//	<partNumber>_Rev <revision>.pdf
//
// falling back to the drawing's own name when properties are missing.
func BuildPDFFilename(drawingName string, props PartProperties) string {
	return buildExportFilename(drawingName, props, "pdf", 0, false)
}

func buildExportFilename(fallbackName string, props PartProperties, extension string, thicknessMM float64, includeMaterial bool) string {
	thickness := FormatThickness(thicknessMM)

	if props.PartNumber != "" && props.Revision != "" {
		var prefixParts []string
		if thickness != "" {
			prefixParts = append(prefixParts, thickness)
		}
		if includeMaterial && props.Material != "" {
			prefixParts = append(prefixParts, props.Material)
		}

		core := fmt.Sprintf("%s_Rev %s", props.PartNumber, props.Revision)
		if len(prefixParts) > 0 {
			return fmt.Sprintf("%s_%s.%s", strings.Join(prefixParts, " "), core, extension)
		}
		return fmt.Sprintf("%s.%s", core, extension)
	}

	// Fallback: source name, never doubling the extension.
	name := fallbackName
	if strings.HasSuffix(strings.ToLower(name), "."+extension) {
		name = name[:len(name)-len(extension)-1]
	}
	return fmt.Sprintf("%s%s.%s", thickness, name, extension)
}
