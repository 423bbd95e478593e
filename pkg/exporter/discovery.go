package exporter

import (
	"strings"

	"github.com/plateworks/onshape-export/pkg/onshape"
)

// tempElementPrefixes mark transient elements created by this tool. Any
// element carrying one of these prefixes is a leftover from an interrupted
// run and is never treated as user content.
var tempElementPrefixes = []string{"TEMP_", "DEBUG_VIEW_", "TEST_MV_"}

// IsTempElementName reports whether an element name carries a reserved
// temporary-element prefix.
func IsTempElementName(name string) bool {
	for _, prefix := range tempElementPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// DiscoverExportables partitions document elements into Part Studios and
// drawings. Application elements whose declared data type mentions
// "drawing" count as drawings (third-party drawing apps store their tabs
// that way). Temporary leftovers are excluded from both categories.
func DiscoverExportables(elements []onshape.Element) (partStudios, drawings []onshape.Element) {
	for _, e := range elements {
		if IsTempElementName(e.Name) {
			continue
		}
		switch e.ElementType {
		case "PARTSTUDIO":
			partStudios = append(partStudios, e)
		case "DRAWING":
			drawings = append(drawings, e)
		case "APPLICATION":
			if strings.Contains(strings.ToLower(e.DataType), "drawing") {
				drawings = append(drawings, e)
			}
		}
	}
	return partStudios, drawings
}

// CategorizeParts separates flat patterns (the unfolded sheet metal bodies,
// exported directly) from regular parts. A regular part whose ID matches
// some flat pattern's unflattened original is dropped: the flat pattern
// already represents that plate, and exporting both would produce the same
// physical part twice.
func CategorizeParts(parts []onshape.Part) (flatPatterns, regularParts []onshape.Part) {
	flattenedOriginals := make(map[string]bool)
	for _, p := range parts {
		if p.IsFlattenedBody {
			flatPatterns = append(flatPatterns, p)
			if p.UnflattenedPartID != "" {
				flattenedOriginals[p.UnflattenedPartID] = true
			}
		}
	}

	for _, p := range parts {
		if p.IsFlattenedBody || flattenedOriginals[p.PartID] {
			continue
		}
		regularParts = append(regularParts, p)
	}
	return flatPatterns, regularParts
}

// FilterBlobsByExtension returns the blob elements whose names end in one
// of the given extensions. Matching is case-insensitive; extensions include
// the leading dot.
func FilterBlobsByExtension(elements []onshape.Element, extensions ...string) []onshape.Element {
	var blobs []onshape.Element
	for _, e := range elements {
		if e.ElementType != "BLOB" {
			continue
		}
		name := strings.ToLower(e.Name)
		for _, ext := range extensions {
			if strings.HasSuffix(name, ext) {
				blobs = append(blobs, e)
				break
			}
		}
	}
	return blobs
}
