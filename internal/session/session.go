// Package session owns every buffer of one open file: the line store, the
// filtered working set, the display-line buffer and the view state. All
// mutation goes through a Session on a single goroutine; derived buffers are
// recomputed in Update when something marked them dirty.
package session

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/TimelordUK/lview/internal/config"
	"github.com/TimelordUK/lview/internal/filter"
	"github.com/TimelordUK/lview/internal/highlight"
	lviewio "github.com/TimelordUK/lview/internal/io"
	"github.com/TimelordUK/lview/internal/layout"
	"github.com/TimelordUK/lview/internal/render"
	"github.com/TimelordUK/lview/internal/ruleset"
	"github.com/TimelordUK/lview/internal/search"
	"github.com/TimelordUK/lview/internal/source"
	"github.com/TimelordUK/lview/internal/view"
	"github.com/TimelordUK/lview/pkg/logformat"
)

// Font size bounds
const (
	MinFontSize = 6
	MaxFontSize = 72
)

// Options configure a new session
type Options struct {
	Measurer        layout.Measurer
	FontSize        float64
	Wrap            bool
	ShowLineNumbers bool
	// LogLevels drives level filtering; nil uses the default patterns
	LogLevels *config.LogLevelConfig
}

// Session is the single owner of all view state for a file
type Session struct {
	store      *source.Store
	filtered   *filter.Provider
	highlights *highlight.RuleSet

	measurer layout.Measurer
	params   layout.Params

	display     []source.DisplayLine
	layoutDirty bool
	layoutGen   uint64 // filter generation the display buffer was built from

	viewport  *view.Viewport
	selection *view.Selection
	search    *search.State

	marks    map[rune]int // mark name to logical line
	levels   map[logformat.Level]bool
	detector *logformat.Detector
}

// New creates an empty session
func New(opts Options) *Session {
	if opts.Measurer == nil {
		opts.Measurer = layout.CellMeasurer{}
	}
	if opts.LogLevels == nil {
		opts.LogLevels = &config.DefaultConfig().LogLevels
	}
	store := source.NewStore()
	s := &Session{
		store:       store,
		filtered:    filter.NewProvider(store),
		highlights:  highlight.NewRuleSet(),
		measurer:    opts.Measurer,
		viewport:    view.NewViewport(0, 0),
		selection:   view.NewSelection(),
		search:      search.NewState(),
		marks:       make(map[rune]int),
		levels:      make(map[logformat.Level]bool),
		detector:    logformat.NewDetector(opts.LogLevels),
		layoutDirty: true,
	}
	s.params.Wrap = opts.Wrap
	s.viewport.SetShowLineNumbers(opts.ShowLineNumbers)
	s.viewport.SetWrapLines(opts.Wrap)
	s.SetFontSize(opts.FontSize)
	return s
}

// Load replaces the content with text
func (s *Session) Load(content string) {
	s.store.Load(content)
	s.afterLoad()
}

// LoadFile replaces the content with the file at path. On failure the
// session is unchanged.
func (s *Session) LoadFile(path string) error {
	if err := s.store.LoadFile(path); err != nil {
		log.Printf("load failed: %v", err)
		return err
	}
	log.Printf("loaded %s (%d lines)", path, s.store.LineCount())
	s.afterLoad()
	return nil
}

func (s *Session) afterLoad() {
	s.filtered.MarkDirty()
	s.selection.Clear()
	s.search.Reset()
	s.ClearMarks()
	s.viewport.GotoTop()
	s.viewport.SetGutterDigits(s.store.LineCount())
	s.syncWidth()
}

// Path returns the loaded file path, empty for text loaded from memory
func (s *Session) Path() string {
	return s.store.Path()
}

// Update rebuilds the filtered set and display lines if anything marked them
// dirty since the last call. It reports whether a rebuild happened.
func (s *Session) Update() bool {
	gen := s.filtered.Generation()
	if gen == s.layoutGen && !s.layoutDirty {
		return false
	}

	s.display = layout.Layout(s.filtered.Lines(), s.params, s.measurer)
	s.layoutDirty = false
	s.layoutGen = gen
	s.viewport.SetTotal(len(s.display))
	return true
}

// Dirty reports whether the next Update will rebuild
func (s *Session) Dirty() bool {
	if s.layoutDirty || s.filtered.IsDirty() {
		return true
	}
	return s.filtered.Generation() != s.layoutGen
}

// DisplayLines returns the current display-line buffer. Callers must not
// modify it.
func (s *Session) DisplayLines() []source.DisplayLine {
	return s.display
}

// FilteredLines returns a copy of the filtered working set
func (s *Session) FilteredLines() []source.LogicalLine {
	return s.filtered.Lines()
}

// TotalLines returns the number of logical lines in the file
// FilteredCount is the size of the filtered working set, without copying it
func (s *Session) FilteredCount() int {
	return s.filtered.LineCount()
}

func (s *Session) TotalLines() int {
	return s.store.LineCount()
}

// Filters

// AddFilter appends an enabled filter rule
func (s *Session) AddFilter(kind filter.Kind, pattern string) ruleset.ID {
	return s.filtered.AddRule(kind, pattern)
}

// AddFilterRule appends a filter rule as given
func (s *Session) AddFilterRule(r filter.Rule) ruleset.ID {
	return s.filtered.AddPreset(r)
}

// RemoveFilter deletes a filter rule
func (s *Session) RemoveFilter(id ruleset.ID) bool {
	return s.filtered.RemoveRule(id)
}

// ToggleFilter flips a filter rule
func (s *Session) ToggleFilter(id ruleset.ID) bool {
	return s.filtered.ToggleRule(id)
}

// EditFilter replaces a filter rule's pattern
func (s *Session) EditFilter(id ruleset.ID, pattern string) bool {
	return s.filtered.EditRule(id, pattern)
}

// SetFilterKind switches a filter between include and exclude
func (s *Session) SetFilterKind(id ruleset.ID, kind filter.Kind) bool {
	return s.filtered.SetRuleKind(id, kind)
}

// Filter returns a filter rule by ID
func (s *Session) Filter(id ruleset.ID) (filter.Rule, bool) {
	return s.filtered.Rules().Get(id)
}

// Filters returns the filter rules in order
func (s *Session) Filters() []ruleset.Entry[filter.Rule] {
	return s.filtered.Rules().Entries()
}

// IsFiltered reports whether any filter rule or level filter is active
func (s *Session) IsFiltered() bool {
	return s.filtered.IsFiltered()
}

// Highlights. They never change the display buffer, so no rebuild follows.

// AddHighlight appends an enabled highlight rule
func (s *Session) AddHighlight(kind highlight.Kind, pattern, color string) ruleset.ID {
	return s.highlights.Add(kind, pattern, color)
}

// AddHighlightRule appends a highlight rule as given
func (s *Session) AddHighlightRule(r highlight.Rule) ruleset.ID {
	return s.highlights.AddRule(r)
}

// RemoveHighlight deletes a highlight rule
func (s *Session) RemoveHighlight(id ruleset.ID) bool {
	return s.highlights.Remove(id)
}

// ToggleHighlight flips a highlight rule
func (s *Session) ToggleHighlight(id ruleset.ID) bool {
	return s.highlights.Toggle(id)
}

// EditHighlight replaces a highlight rule's pattern
func (s *Session) EditHighlight(id ruleset.ID, pattern string) bool {
	return s.highlights.Edit(id, pattern)
}

// SetHighlightColor replaces a highlight rule's color
func (s *Session) SetHighlightColor(id ruleset.ID, color string) bool {
	return s.highlights.SetColor(id, color)
}

// SetHighlightKind switches a highlight between background and letters
func (s *Session) SetHighlightKind(id ruleset.ID, kind highlight.Kind) bool {
	return s.highlights.SetKind(id, kind)
}

// Highlights returns the highlight rule set
func (s *Session) Highlights() *highlight.RuleSet {
	return s.highlights
}

// Layout parameters

// SetWrap turns word wrap on or off
func (s *Session) SetWrap(wrap bool) {
	if s.params.Wrap == wrap {
		return
	}
	s.params.Wrap = wrap
	s.viewport.SetWrapLines(wrap)
	s.layoutDirty = true
}

// Wrap reports whether word wrap is on
func (s *Session) Wrap() bool {
	return s.params.Wrap
}

// SetFontSize sets the font size, clamped to [MinFontSize, MaxFontSize]
func (s *Session) SetFontSize(size float64) {
	if size < MinFontSize {
		size = MinFontSize
	}
	if size > MaxFontSize {
		size = MaxFontSize
	}
	if s.params.FontSize == size {
		return
	}
	s.params.FontSize = size
	s.viewport.SetLineHeight(s.measurer.LineHeight(size))
	s.layoutDirty = true
}

// FontSize returns the current font size
func (s *Session) FontSize() float64 {
	return s.params.FontSize
}

// SetViewport sets the viewport size in measurer units
func (s *Session) SetViewport(width, height float64) {
	s.viewport.SetSize(width, height)
	s.syncWidth()
}

// SetShowLineNumbers toggles the gutter, which changes the text width
func (s *Session) SetShowLineNumbers(show bool) {
	s.viewport.SetShowLineNumbers(show)
	s.syncWidth()
}

// ShowLineNumbers reports whether the gutter is drawn
func (s *Session) ShowLineNumbers() bool {
	return s.viewport.ShowLineNumbers()
}

func (s *Session) syncWidth() {
	w := s.viewport.TextWidth()
	if s.params.MaxWidth == w {
		return
	}
	s.params.MaxWidth = w
	s.layoutDirty = true
}

// Viewport returns the session viewport
func (s *Session) Viewport() *view.Viewport {
	return s.viewport
}

// Search

// SearchForward moves to the next display line containing text
func (s *Session) SearchForward(text string) bool {
	idx, ok := s.search.Forward(s.display, text)
	return s.reveal(idx, ok)
}

// SearchBackward moves to the previous display line containing text
func (s *Session) SearchBackward(text string) bool {
	idx, ok := s.search.Backward(s.display, text)
	return s.reveal(idx, ok)
}

// SearchNext repeats the last search forward
func (s *Session) SearchNext() bool {
	return s.SearchForward(s.search.Term())
}

// SearchPrev repeats the last search backward
func (s *Session) SearchPrev() bool {
	return s.SearchBackward(s.search.Term())
}

func (s *Session) reveal(idx int, ok bool) bool {
	if !ok {
		return false
	}
	target := search.ScrollTarget(idx, len(s.display), s.viewport.LineHeight(), s.viewportHeight())
	s.viewport.ScrollTo(target)
	s.selection.Click(s.display[idx].LogicalIndex)
	return true
}

func (s *Session) viewportHeight() float64 {
	_, h := s.viewport.Size()
	return h
}

// SearchTerm returns the last searched text
func (s *Session) SearchTerm() string {
	return s.search.Term()
}

// CurrentMatch returns the display-line index of the current match
func (s *Session) CurrentMatch() (int, bool) {
	return s.search.Current()
}

// NoMatch reports whether the no-match message should be shown and for how
// much longer
func (s *Session) NoMatch() (bool, time.Duration) {
	return s.search.NoMatch(), s.search.NoMatchRemaining()
}

// Tick advances transient timers
func (s *Session) Tick(elapsed time.Duration) {
	s.search.Tick(elapsed)
}

// Selection

// Click selects the logical line shown at display index
func (s *Session) Click(displayIndex int) {
	if line, ok := s.displayAt(displayIndex); ok {
		s.selection.Click(line.LogicalIndex)
	}
}

// ToggleClick adds or removes the logical line at display index
func (s *Session) ToggleClick(displayIndex int) {
	if line, ok := s.displayAt(displayIndex); ok {
		s.selection.Toggle(line.LogicalIndex)
	}
}

// RangeClick extends the selection from the anchor to display index
func (s *Session) RangeClick(displayIndex int) {
	line, ok := s.displayAt(displayIndex)
	if !ok {
		return
	}
	s.selection.RangeTo(line.LogicalIndex, s.visibleLogical())
}

// ClearSelection deselects everything
func (s *Session) ClearSelection() {
	s.selection.Clear()
}

// Selection returns the selection state
func (s *Session) Selection() *view.Selection {
	return s.selection
}

func (s *Session) displayAt(i int) (source.DisplayLine, bool) {
	if i < 0 || i >= len(s.display) {
		return source.DisplayLine{}, false
	}
	return s.display[i], true
}

func (s *Session) visibleLogical() []int {
	out := make([]int, 0, len(s.display))
	for _, dl := range s.display {
		if dl.IsFirstSegment {
			out = append(out, dl.LogicalIndex)
		}
	}
	return out
}

// SelectedText returns the selected logical lines in file order, joined by
// newlines
func (s *Session) SelectedText() string {
	lines := s.selection.Sorted()
	texts := make([]string, 0, len(lines))
	for _, idx := range lines {
		if line, ok := s.store.GetLine(idx); ok {
			texts = append(texts, line.Text)
		}
	}
	return strings.Join(texts, "\n")
}

// Navigation

// ScrollBy scrolls by n display lines, negative for up
func (s *Session) ScrollBy(n int) {
	if n < 0 {
		s.viewport.ScrollUp(-n)
		return
	}
	s.viewport.ScrollDown(n)
}

// PageDown scrolls down one page
func (s *Session) PageDown() { s.viewport.PageDown() }

// PageUp scrolls up one page
func (s *Session) PageUp() { s.viewport.PageUp() }

// GotoTop scrolls to the first display line
func (s *Session) GotoTop() { s.viewport.GotoTop() }

// GotoBottom scrolls to the last page
func (s *Session) GotoBottom() { s.viewport.GotoBottom() }

// GotoLine scrolls to the first visible line at or after the 0-based logical
// line and selects it. It reports false when no such line is visible.
func (s *Session) GotoLine(logical int) bool {
	for i, dl := range s.display {
		if dl.IsFirstSegment && dl.LogicalIndex >= logical {
			s.viewport.GotoLine(i)
			s.selection.Click(dl.LogicalIndex)
			return true
		}
	}
	return false
}

// Rendering and saving

// Render draws the visible rows with r
func (s *Session) Render(r render.Renderer) string {
	current, hasCurrent := s.search.Current()
	return s.viewport.Render(s.display, r, func(i int, line source.DisplayLine) render.RowState {
		return render.RowState{
			Selected:     s.selection.Contains(line.LogicalIndex),
			CurrentMatch: hasCurrent && i == current,
		}
	})
}

// SaveText formats the current display lines for saving
func (s *Session) SaveText(lineNumbers bool) string {
	return source.Save(s.display, lineNumbers)
}

// SaveFile writes the current display lines to path
func (s *Session) SaveFile(path string, lineNumbers bool) error {
	if err := lviewio.WriteText(path, s.SaveText(lineNumbers)); err != nil {
		log.Printf("save failed: %v", err)
		return fmt.Errorf("save: %w", err)
	}
	log.Printf("saved %d rows to %s", len(s.display), path)
	return nil
}
