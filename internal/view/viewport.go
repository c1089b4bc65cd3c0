package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/TimelordUK/lview/internal/render"
	"github.com/TimelordUK/lview/internal/source"
)

// RowStateFunc reports overlay state for the display line at index
type RowStateFunc func(index int, line source.DisplayLine) render.RowState

// Viewport manages the visible portion of the display-line buffer.
// Sizes are in measurer units: cells for a terminal, pixels for a face.
type Viewport struct {
	// Dimensions
	width      float64
	height     float64
	lineHeight float64

	// Scroll position, in the same units as height
	scrollOffset float64
	total        int

	// Styling
	lineNumberStyle lipgloss.Style
	markerStyle     lipgloss.Style

	// Options
	showLineNumbers bool
	wrapLines       bool
	gutterDigits    int
}

// NewViewport creates a new viewport
func NewViewport(width, height float64) *Viewport {
	return &Viewport{
		width:           width,
		height:          height,
		lineHeight:      1,
		showLineNumbers: true,
		lineNumberStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		markerStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		gutterDigits:    1,
	}
}

// SetStyles sets the line number colors
func (v *Viewport) SetStyles(lineNumbers, marker string) {
	v.lineNumberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(lineNumbers))
	v.markerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(marker)).Bold(true)
}

// SetSize updates viewport dimensions
func (v *Viewport) SetSize(width, height float64) {
	v.width = width
	v.height = height
	v.clampScroll()
}

// Size returns the viewport dimensions
func (v *Viewport) Size() (float64, float64) {
	return v.width, v.height
}

// SetLineHeight sets the height of one display row
func (v *Viewport) SetLineHeight(h float64) {
	if h <= 0 {
		h = 1
	}
	v.lineHeight = h
	v.clampScroll()
}

// LineHeight returns the height of one display row
func (v *Viewport) LineHeight() float64 {
	return v.lineHeight
}

// SetTotal sets the number of display lines in the buffer
func (v *Viewport) SetTotal(n int) {
	v.total = n
	v.clampScroll()
}

// SetGutterDigits sets how many digits the widest line number needs
func (v *Viewport) SetGutterDigits(lineCount int) {
	v.gutterDigits = len(fmt.Sprintf("%d", lineCount))
}

// SetShowLineNumbers toggles line numbers
func (v *Viewport) SetShowLineNumbers(show bool) {
	v.showLineNumbers = show
}

// ShowLineNumbers reports whether the gutter is drawn
func (v *Viewport) ShowLineNumbers() bool {
	return v.showLineNumbers
}

// SetWrapLines tells the viewport whether rows were wrapped to fit
func (v *Viewport) SetWrapLines(wrap bool) {
	v.wrapLines = wrap
}

// gutterWidth returns the cells used by line numbers
func (v *Viewport) gutterWidth() int {
	if !v.showLineNumbers {
		return 0
	}
	return v.gutterDigits + 1
}

// TextWidth returns the width available to line text
func (v *Viewport) TextWidth() float64 {
	w := v.width - float64(v.gutterWidth())
	if w < 0 {
		return 0
	}
	return w
}

// VisibleLines returns how many whole rows fit
func (v *Viewport) VisibleLines() int {
	return int(math.Floor(v.height / v.lineHeight))
}

// MaxScroll returns the largest valid scroll offset
func (v *Viewport) MaxScroll() float64 {
	maxScroll := float64(v.total)*v.lineHeight - v.height
	if maxScroll < 0 {
		return 0
	}
	return maxScroll
}

// clampScroll ensures scroll offset is within valid bounds
func (v *Viewport) clampScroll() {
	if v.scrollOffset > v.MaxScroll() {
		v.scrollOffset = v.MaxScroll()
	}
	if v.scrollOffset < 0 {
		v.scrollOffset = 0
	}
}

// ScrollTo sets the scroll offset
func (v *Viewport) ScrollTo(offset float64) {
	v.scrollOffset = offset
	v.clampScroll()
}

// Offset returns the scroll offset
func (v *Viewport) Offset() float64 {
	return v.scrollOffset
}

// ScrollDown scrolls down by n lines
func (v *Viewport) ScrollDown(n int) {
	v.ScrollTo(v.scrollOffset + float64(n)*v.lineHeight)
}

// ScrollUp scrolls up by n lines
func (v *Viewport) ScrollUp(n int) {
	v.ScrollTo(v.scrollOffset - float64(n)*v.lineHeight)
}

// PageDown scrolls down by one page
func (v *Viewport) PageDown() {
	v.ScrollDown(max(v.VisibleLines()-1, 1))
}

// PageUp scrolls up by one page
func (v *Viewport) PageUp() {
	v.ScrollUp(max(v.VisibleLines()-1, 1))
}

// GotoTop scrolls to the beginning
func (v *Viewport) GotoTop() {
	v.scrollOffset = 0
}

// GotoBottom scrolls to the end
func (v *Viewport) GotoBottom() {
	v.scrollOffset = v.MaxScroll()
}

// GotoLine scrolls so display line index is at the top
func (v *Viewport) GotoLine(index int) {
	v.ScrollTo(float64(index) * v.lineHeight)
}

// CurrentLine returns the display line at the top of the viewport
func (v *Viewport) CurrentLine() int {
	return int(math.Floor(v.scrollOffset / v.lineHeight))
}

// RowAt maps a row on screen to a display line index, or -1
func (v *Viewport) RowAt(row int) int {
	if row < 0 || row >= v.VisibleLines() {
		return -1
	}
	idx := v.CurrentLine() + row
	if idx >= v.total {
		return -1
	}
	return idx
}

// PercentScrolled returns how far through the buffer we are
func (v *Viewport) PercentScrolled() float64 {
	if v.total == 0 {
		return 0
	}
	if v.MaxScroll() == 0 {
		return 100
	}
	return v.scrollOffset / v.MaxScroll() * 100
}

// Render draws the visible display lines. Only rows inside the viewport are
// styled, whatever the buffer size.
func (v *Viewport) Render(lines []source.DisplayLine, r render.Renderer, state RowStateFunc) string {
	height := v.VisibleLines()
	start := v.CurrentLine()
	textWidth := int(v.TextWidth())

	var builder strings.Builder
	rows := 0
	for i := start; i < len(lines) && rows < height; i++ {
		if rows > 0 {
			builder.WriteString("\n")
		}
		line := lines[i]

		var rs render.RowState
		if state != nil {
			rs = state(i, line)
		}
		rs.Width = textWidth

		if v.showLineNumbers {
			numStr := strings.Repeat(" ", v.gutterDigits+1)
			if line.IsFirstSegment {
				numStr = fmt.Sprintf("%*d ", v.gutterDigits, line.LogicalIndex+1)
			}
			if rs.CurrentMatch || rs.Selected {
				builder.WriteString(v.markerStyle.Render(numStr))
			} else {
				builder.WriteString(v.lineNumberStyle.Render(numStr))
			}
		}

		content := r.Render(line, rs)
		if !v.wrapLines && textWidth > 0 {
			content = ansi.Truncate(content, textWidth, "…")
		}
		builder.WriteString(content)
		rows++
	}

	// Pad with empty lines if needed
	for ; rows < height; rows++ {
		if rows > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("~")
	}

	return builder.String()
}
