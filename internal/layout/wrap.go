// Package layout turns logical lines into display lines, word-wrapping them
// to a width when wrapping is enabled.
package layout

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/TimelordUK/lview/internal/source"
)

// Params are the inputs that invalidate a layout when they change
type Params struct {
	MaxWidth float64
	FontSize float64
	Wrap     bool
}

// Layout converts lines into display lines. Without wrapping, or with no
// usable width, each logical line maps to exactly one display line. The
// whole buffer is rebuilt on every call.
func Layout(lines []source.LogicalLine, p Params, m Measurer) []source.DisplayLine {
	out := make([]source.DisplayLine, 0, len(lines))
	if !p.Wrap || p.MaxWidth <= 0 || m == nil {
		for _, line := range lines {
			out = append(out, source.DisplayLine{
				LogicalIndex:   line.Index,
				IsFirstSegment: true,
				Text:           line.Text,
			})
		}
		return out
	}

	for _, line := range lines {
		segments := WrapLine(line.Text, p.MaxWidth, p.FontSize, m)
		if len(segments) == 0 {
			// Blank lines keep one addressable row.
			segments = []string{""}
		}
		for i, seg := range segments {
			out = append(out, source.DisplayLine{
				LogicalIndex:   line.Index,
				IsFirstSegment: i == 0,
				Text:           seg,
			})
		}
	}
	return out
}

// WrapLine greedily word-wraps text into segments no wider than maxWidth.
// Runs of whitespace collapse to single spaces. A word wider than maxWidth
// is broken between grapheme clusters; a cluster wider than maxWidth on its
// own is emitted alone. Text with no words yields no segments.
func WrapLine(text string, maxWidth, fontSize float64, m Measurer) []string {
	w := wrapper{maxWidth: maxWidth, fontSize: fontSize, m: m}

	for _, word := range strings.Fields(text) {
		if w.width(word) > maxWidth {
			w.flush()
			w.hardBreak(word)
			continue
		}

		// The word fits on its own, so only a non-empty row can overflow.
		if w.current == "" {
			w.current = word
			continue
		}
		tentative := w.current + " " + word
		if w.width(tentative) > maxWidth {
			w.flush()
			w.current = word
			continue
		}
		w.current = tentative
	}
	w.flush()

	return w.segments
}

type wrapper struct {
	maxWidth float64
	fontSize float64
	m        Measurer

	current  string
	segments []string
}

func (w *wrapper) width(s string) float64 {
	return w.m.Measure(s, w.fontSize)
}

func (w *wrapper) flush() {
	if w.current == "" {
		return
	}
	w.segments = append(w.segments, w.current)
	w.current = ""
}

// hardBreak splits word between grapheme clusters. The last partial piece
// stays in the accumulator so following words can share its row.
func (w *wrapper) hardBreak(word string) {
	var buf strings.Builder
	gr := uniseg.NewGraphemes(word)
	for gr.Next() {
		cluster := gr.Str()
		if buf.Len() > 0 && w.width(buf.String()+cluster) > w.maxWidth {
			w.segments = append(w.segments, buf.String())
			buf.Reset()
		}
		buf.WriteString(cluster)
	}
	w.current = buf.String()
}
