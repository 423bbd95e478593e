package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plateworks/onshape-export/pkg/onshape"
)

func TestFormatThickness(t *testing.T) {
	tests := []struct {
		name        string
		thicknessMM float64
		want        string
	}{
		{"zero means absent", 0, ""},
		{"negative is invalid", -3, ""},
		{"whole number drops decimal", 3.0, "3mm"},
		{"trailing zero trimmed", 1.50, "1.5mm"},
		{"rounded to one decimal", 2.54, "2.5mm"},
		{"rounds up", 2.96, "3mm"},
		{"sub-millimetre", 0.8, "0.8mm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatThickness(tt.thicknessMM))
		})
	}
}

func TestThicknessFromBoundingBox(t *testing.T) {
	tests := []struct {
		name string
		box  onshape.BoundingBox
		want float64
	}{
		{"3mm plate", onshape.BoundingBox{LowZ: 0, HighZ: 0.003}, 3},
		{"inverted extents", onshape.BoundingBox{LowZ: 0.003, HighZ: 0}, 3},
		{"degenerate extent discarded", onshape.BoundingBox{LowZ: 0, HighZ: 0.000_000_005}, 0},
		{"flat box", onshape.BoundingBox{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ThicknessFromBoundingBox(tt.box), 1e-9)
		})
	}
}

func TestBuildDXFFilename(t *testing.T) {
	tests := []struct {
		name        string
		partName    string
		thicknessMM float64
		props       PartProperties
		want        string
	}{
		{
			name:        "full properties with thickness and material",
			partName:    "Bracket",
			thicknessMM: 3,
			props:       PartProperties{PartNumber: "PN-100", Revision: "A", Material: "Steel"},
			want:        "3mm Steel_PN-100_Rev A.dxf",
		},
		{
			name:     "part number and revision only",
			partName: "Bracket",
			props:    PartProperties{PartNumber: "PN-100", Revision: "A"},
			want:     "PN-100_Rev A.dxf",
		},
		{
			name:        "thickness without material",
			partName:    "Bracket",
			thicknessMM: 1.5,
			props:       PartProperties{PartNumber: "PN-100", Revision: "B"},
			want:        "1.5mm_PN-100_Rev B.dxf",
		},
		{
			name:     "missing revision falls back to part name",
			partName: "Bracket",
			props:    PartProperties{PartNumber: "PN-100"},
			want:     "Bracket.dxf",
		},
		{
			name:        "fallback keeps thickness prefix",
			partName:    "Bracket",
			thicknessMM: 3,
			props:       PartProperties{},
			want:        "3mmBracket.dxf",
		},
		{
			name:     "fallback never doubles the extension",
			partName: "Bracket.dxf",
			props:    PartProperties{},
			want:     "Bracket.dxf",
		},
		{
			name:        "fallback with thickness never doubles the extension",
			partName:    "Bracket.DXF",
			thicknessMM: 3,
			props:       PartProperties{},
			want:        "3mmBracket.dxf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildDXFFilename(tt.partName, tt.thicknessMM, tt.props))
		})
	}
}

func TestBuildPDFFilename(t *testing.T) {
	tests := []struct {
		name        string
		drawingName string
		props       PartProperties
		want        string
	}{
		{
			name:        "full properties",
			drawingName: "Assembly",
			props:       PartProperties{PartNumber: "PN-200", Revision: "C"},
			want:        "PN-200_Rev C.pdf",
		},
		{
			name:        "material never appears in PDF names",
			drawingName: "Assembly",
			props:       PartProperties{PartNumber: "PN-200", Revision: "C", Material: "Steel"},
			want:        "PN-200_Rev C.pdf",
		},
		{
			name:        "fallback to drawing name",
			drawingName: "Assembly",
			props:       PartProperties{},
			want:        "Assembly.pdf",
		},
		{
			name:        "fallback never doubles the extension",
			drawingName: "Assembly.pdf",
			props:       PartProperties{},
			want:        "Assembly.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildPDFFilename(tt.drawingName, tt.props))
		})
	}
}

func TestExtractProperties(t *testing.T) {
	meta := onshape.Metadata{Properties: []onshape.Property{
		{PropertyID: onshape.PropPartNumber, Value: "PN-100"},
		{PropertyID: onshape.PropRevision, Value: "A"},
		{PropertyID: onshape.PropMaterial, Value: map[string]any{"displayName": "Mild Steel"}},
	}}

	props, missing := ExtractProperties(meta, true)
	assert.Empty(t, missing)
	assert.Equal(t, PartProperties{PartNumber: "PN-100", Revision: "A", Material: "Mild Steel"}, props)
}

func TestExtractProperties_Missing(t *testing.T) {
	props, missing := ExtractProperties(onshape.Metadata{}, true)
	assert.Equal(t, PartProperties{}, props)
	assert.Equal(t, []string{"Part Number", "Revision", "Material"}, missing)
}

func TestExtractProperties_NoMaterialForElements(t *testing.T) {
	meta := onshape.Metadata{Properties: []onshape.Property{
		{PropertyID: onshape.PropPartNumber, Value: "PN-300"},
	}}

	props, missing := ExtractProperties(meta, false)
	assert.Equal(t, "PN-300", props.PartNumber)
	assert.Equal(t, []string{"Revision"}, missing)
}

func TestExtractProperties_BlankValuesAreMissing(t *testing.T) {
	meta := onshape.Metadata{Properties: []onshape.Property{
		{PropertyID: onshape.PropPartNumber, Value: ""},
		{PropertyID: onshape.PropRevision, Value: "A"},
	}}

	_, missing := ExtractProperties(meta, false)
	assert.Equal(t, []string{"Part Number"}, missing)
}
