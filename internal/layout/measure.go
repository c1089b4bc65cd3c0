package layout

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Measurer is the text-measurement capability the layout depends on.
// Results must be deterministic for a given text and font size.
type Measurer interface {
	// Measure returns the rendered width of text at fontSize
	Measure(text string, fontSize float64) float64

	// LineHeight returns the height of one display row at fontSize
	LineHeight(fontSize float64) float64
}

// CellMeasurer measures in terminal cells. A terminal has one fixed font
// size, so fontSize is ignored.
type CellMeasurer struct{}

// Measure returns the number of cells text occupies
func (CellMeasurer) Measure(text string, _ float64) float64 {
	return float64(runewidth.StringWidth(text))
}

// LineHeight is always one row
func (CellMeasurer) LineHeight(float64) float64 {
	return 1
}

// FaceMeasurer measures in pixels using the Go regular typeface
type FaceMeasurer struct {
	font  *opentype.Font
	dpi   float64
	faces map[float64]font.Face
}

// NewFaceMeasurer parses the embedded typeface
func NewFaceMeasurer(dpi float64) (*FaceMeasurer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse typeface: %w", err)
	}
	if dpi <= 0 {
		dpi = 72
	}
	return &FaceMeasurer{
		font:  f,
		dpi:   dpi,
		faces: make(map[float64]font.Face),
	}, nil
}

// face returns a cached face for size
func (m *FaceMeasurer) face(size float64) (font.Face, error) {
	if f, ok := m.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     m.dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	m.faces[size] = f
	return f, nil
}

// Measure returns the advance width of text in pixels
func (m *FaceMeasurer) Measure(text string, fontSize float64) float64 {
	if text == "" {
		return 0
	}
	f, err := m.face(fontSize)
	if err != nil {
		return 0
	}
	return toFloat(font.MeasureString(f, text))
}

// LineHeight returns the recommended line spacing in pixels
func (m *FaceMeasurer) LineHeight(fontSize float64) float64 {
	f, err := m.face(fontSize)
	if err != nil {
		return fontSize
	}
	return toFloat(f.Metrics().Height)
}

// Close releases cached faces
func (m *FaceMeasurer) Close() error {
	for size, f := range m.faces {
		f.Close()
		delete(m.faces, size)
	}
	return nil
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
