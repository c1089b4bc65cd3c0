package ui

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/TimelordUK/lview/internal/config"
	"github.com/TimelordUK/lview/internal/filter"
	"github.com/TimelordUK/lview/internal/highlight"
	"github.com/TimelordUK/lview/internal/layout"
	"github.com/TimelordUK/lview/internal/render"
	"github.com/TimelordUK/lview/internal/session"
	"github.com/TimelordUK/lview/pkg/logformat"
)

// Pane represents a single file view with its own session
type Pane struct {
	session  *session.Session
	renderer render.Renderer
	config   *config.Config

	// File state
	filename   string
	sourcePath string
}

// NewPane creates a pane for filePath. An empty path gives an empty pane.
func NewPane(filePath string, cfg *config.Config, m layout.Measurer) (*Pane, error) {
	s := session.New(session.Options{
		Measurer:        m,
		FontSize:        cfg.Display.FontSize,
		Wrap:            cfg.Display.WrapLines,
		ShowLineNumbers: cfg.Display.ShowLineNumbers,
		LogLevels:       &cfg.LogLevels,
	})
	s.Viewport().SetStyles(cfg.Theme.LineNumbers, cfg.Theme.SearchMatch)

	p := &Pane{
		session: s,
		config:  cfg,
	}
	if err := applyPresets(s, cfg); err != nil {
		return nil, err
	}
	if filePath != "" {
		if err := p.Open(filePath); err != nil {
			return nil, err
		}
	} else {
		p.setRenderer()
	}
	return p, nil
}

// applyPresets adds the configured filter and highlight rules. Level colors
// go first so user highlights added later are checked after them.
func applyPresets(s *session.Session, cfg *config.Config) error {
	for _, fc := range cfg.Filters {
		kind, ok := filter.ParseKind(fc.Kind)
		if !ok {
			return fmt.Errorf("filter %q: unknown kind %q", fc.Pattern, fc.Kind)
		}
		s.AddFilterRule(filter.Rule{Kind: kind, Pattern: fc.Pattern, Enabled: fc.IsEnabled()})
	}

	if cfg.Display.LevelColors {
		for _, r := range logformat.HighlightRules(&cfg.LogLevels, cfg.Theme.Levels) {
			s.AddHighlightRule(r)
		}
	}

	for _, hc := range cfg.Highlights {
		kind, ok := highlight.ParseKind(hc.Kind)
		if !ok {
			return fmt.Errorf("highlight %q: unknown kind %q", hc.Pattern, hc.Kind)
		}
		s.AddHighlightRule(highlight.Rule{
			Kind:    kind,
			Pattern: hc.Pattern,
			Color:   hc.Color,
			Enabled: hc.IsEnabled(),
		})
	}
	return nil
}

// Open loads filePath into the pane. On failure the pane keeps its content.
func (p *Pane) Open(filePath string) error {
	if err := p.session.LoadFile(filePath); err != nil {
		return err
	}
	p.sourcePath = filePath
	p.filename = filepath.Base(filePath)
	p.setRenderer()
	return nil
}

// setRenderer picks the base renderer for the current file and wraps it in
// the highlight overlay
func (p *Pane) setRenderer() {
	var base render.Renderer = render.NewPlainRenderer()
	if p.config.Display.Syntax && render.IsSyntaxHighlightable(p.filename) {
		sr := render.NewSyntaxRenderer(p.filename, p.config.Display.SyntaxTheme)
		log.Printf("syntax highlighting %s with %s", p.filename, sr.LexerName())
		base = sr
	}
	p.renderer = render.NewHighlightRenderer(base, p.session.Highlights(), render.Theme{
		Selection:   p.config.Theme.Selection,
		SearchMatch: p.config.Theme.SearchMatch,
	})
}

// SetSize sets the text area size in cells
func (p *Pane) SetSize(width, height int) {
	p.session.SetViewport(float64(width), float64(height))
}

// Render rebuilds derived buffers if needed and draws the visible rows
func (p *Pane) Render() string {
	p.session.Update()
	return p.session.Render(p.renderer)
}

// Session returns the pane's session
func (p *Pane) Session() *session.Session {
	return p.session
}

// Filename returns the display filename
func (p *Pane) Filename() string {
	return p.filename
}

// SourcePath returns the path the pane was opened from
func (p *Pane) SourcePath() string {
	return p.sourcePath
}

// Goto moves to a line reference. It reports false when the reference does
// not parse or no visible line is at or after it.
func (p *Pane) Goto(ref string) bool {
	p.session.Update()
	current := 0
	lines := p.session.DisplayLines()
	if top := p.session.Viewport().CurrentLine(); top < len(lines) {
		current = lines[top].LogicalIndex
	}
	line := parseLineRef(ref, current, p.session.TotalLines()-1, p.session.Marks())
	if line < 0 {
		return false
	}
	return p.session.GotoLine(line)
}

// parseLineRef parses a line reference like ".", "$", "$-100", ".+5", "'a"
// or "500" into a 0-based logical line, or -1
func parseLineRef(ref string, current, last int, marks map[rune]int) int {
	ref = strings.TrimSpace(ref)

	if ref == "" {
		return -1
	}

	if ref == "." {
		return current
	}

	if ref == "$" {
		return last
	}

	// Handle mark references like 'a
	if strings.HasPrefix(ref, "'") {
		name := []rune(ref[1:])
		if len(name) != 1 {
			return -1
		}
		if line, ok := marks[name[0]]; ok {
			return line
		}
		return -1
	}

	// Handle $-N
	if strings.HasPrefix(ref, "$") {
		offset := 0
		if _, err := fmt.Sscanf(ref[1:], "%d", &offset); err != nil {
			return -1
		}
		return clampLine(last+offset, last)
	}

	// Handle .-N or .+N
	if strings.HasPrefix(ref, ".") {
		offset := 0
		if _, err := fmt.Sscanf(ref[1:], "%d", &offset); err != nil {
			return -1
		}
		return clampLine(current+offset, last)
	}

	// Absolute line number (1-based input, convert to 0-based)
	var lineNum int
	if _, err := fmt.Sscanf(ref, "%d", &lineNum); err != nil || lineNum < 1 {
		return -1
	}
	return lineNum - 1
}

func clampLine(line, last int) int {
	if line < 0 {
		return 0
	}
	if line > last {
		return last
	}
	return line
}
