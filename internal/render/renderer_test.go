package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/TimelordUK/lview/internal/highlight"
	"github.com/TimelordUK/lview/internal/source"
)

func TestPlainRenderer(t *testing.T) {
	line := source.DisplayLine{Text: "hello"}
	if got := NewPlainRenderer().Render(line, RowState{Selected: true}); got != "hello" {
		t.Errorf("Render() = %q", got)
	}
}

func TestHighlightRendererPassThrough(t *testing.T) {
	rules := highlight.NewRuleSet()
	rules.Add(highlight.Background, "ERROR", "1")
	r := NewHighlightRenderer(nil, rules, Theme{Selection: "4", SearchMatch: "3"})

	line := source.DisplayLine{Text: "INFO fine"}
	if got := r.Render(line, RowState{}); got != "INFO fine" {
		t.Errorf("unmatched row should render unchanged, got %q", got)
	}
}

func TestHighlightRendererKeepsText(t *testing.T) {
	rules := highlight.NewRuleSet()
	rules.Add(highlight.Background, "ERROR", "1")
	rules.Add(highlight.Letters, "disk", "2")
	r := NewHighlightRenderer(nil, rules, Theme{Selection: "4", SearchMatch: "3"})

	states := []RowState{
		{},
		{Selected: true, Width: 20},
		{CurrentMatch: true, Width: 20},
	}
	for _, st := range states {
		got := ansi.Strip(r.Render(source.DisplayLine{Text: "ERROR disk"}, st))
		if strings.TrimRight(got, " ") != "ERROR disk" {
			t.Errorf("state %+v: stripped output %q", st, got)
		}
	}
}

func TestPad(t *testing.T) {
	if got := pad("ab", 5); got != "ab   " {
		t.Errorf("pad() = %q", got)
	}
	if got := pad("abcdef", 3); got != "abcdef" {
		t.Errorf("pad() should not truncate, got %q", got)
	}
	if lipgloss.Width(pad("日本", 6)) != 6 {
		t.Error("pad() should count wide runes")
	}
}

func TestSyntaxRendererFallsBack(t *testing.T) {
	r := NewSyntaxRenderer("app.json", "")
	if r.LexerName() == "plaintext" {
		t.Errorf("expected a JSON lexer, got %q", r.LexerName())
	}
	if got := r.Render(source.DisplayLine{}, RowState{}); got != "" {
		t.Errorf("empty line should render empty, got %q", got)
	}
	got := ansi.Strip(r.Render(source.DisplayLine{Text: `{"a": 1}`}, RowState{}))
	if got != `{"a": 1}` {
		t.Errorf("stripped output %q", got)
	}
	if !IsSyntaxHighlightable("x.yaml") || IsSyntaxHighlightable("server.log") {
		t.Error("IsSyntaxHighlightable() mismatch")
	}
}
