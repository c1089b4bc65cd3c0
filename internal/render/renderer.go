package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/lview/internal/highlight"
	"github.com/TimelordUK/lview/internal/source"
)

// RowState is per-row overlay state supplied by the view
type RowState struct {
	Selected     bool
	CurrentMatch bool
	Width        int // cells available to the text, 0 if unknown
}

// Renderer applies styling to display lines
type Renderer interface {
	Render(line source.DisplayLine, state RowState) string
}

// PlainRenderer renders without styling
type PlainRenderer struct{}

// NewPlainRenderer creates a plain renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// Render returns the line text as-is
func (r *PlainRenderer) Render(line source.DisplayLine, _ RowState) string {
	return line.Text
}

// Theme holds the overlay colors
type Theme struct {
	Selection   string
	SearchMatch string
}

// HighlightRenderer paints highlight rules, selection and the current search
// match over a base renderer. Rows without any overlay keep the base styling.
type HighlightRenderer struct {
	base  Renderer
	rules *highlight.RuleSet

	selectionColor lipgloss.Color
	matchStyle     lipgloss.Style
}

// NewHighlightRenderer creates an overlay renderer
func NewHighlightRenderer(base Renderer, rules *highlight.RuleSet, theme Theme) *HighlightRenderer {
	if base == nil {
		base = NewPlainRenderer()
	}
	return &HighlightRenderer{
		base:           base,
		rules:          rules,
		selectionColor: lipgloss.Color(theme.Selection),
		matchStyle: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.SearchMatch)).
			Foreground(lipgloss.Color("0")),
	}
}

// Render applies the overlays for one row
func (r *HighlightRenderer) Render(line source.DisplayLine, state RowState) string {
	var res highlight.Result
	if r.rules != nil {
		res = highlight.MatchAll(line.Text, r.rules.Rules())
	}

	if !res.HasBackground && !res.HasLetters && !state.Selected && !state.CurrentMatch {
		return r.base.Render(line, state)
	}

	if state.CurrentMatch {
		return r.matchStyle.Render(pad(line.Text, state.Width))
	}

	style := lipgloss.NewStyle()
	if res.HasLetters {
		style = style.Foreground(lipgloss.Color(res.Letters))
	}
	if res.HasBackground {
		style = style.Background(lipgloss.Color(res.Background))
	}
	if state.Selected {
		style = style.Background(r.selectionColor)
	}

	text := line.Text
	if res.HasBackground || state.Selected {
		text = pad(text, state.Width)
	}
	return style.Render(text)
}

// pad fills text with spaces up to width so a background covers the row
func pad(text string, width int) string {
	w := lipgloss.Width(text)
	if width <= 0 || w >= width {
		return text
	}
	return text + strings.Repeat(" ", width-w)
}
