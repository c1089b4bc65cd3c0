package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/lview/internal/config"
	"github.com/TimelordUK/lview/internal/filter"
	"github.com/TimelordUK/lview/internal/highlight"
	"github.com/TimelordUK/lview/internal/layout"
	"github.com/TimelordUK/lview/internal/session"
	"github.com/TimelordUK/lview/pkg/logformat"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeSearchBackward
	ModeGoto
	ModeInclude
	ModeExclude
	ModeHighlight
	ModeOpen
	ModeSave
	ModeRules
	ModeEditRule
	ModeLevel
	ModeMarkSet
	ModeMarkJump
)

const (
	// Status bar and help line
	chromeHeight = 2
	tickInterval = 100 * time.Millisecond
	messageLife  = 3 * time.Second
	scrollWheel  = 3
)

var clipboardWrite = clipboard.WriteAll

// tickMsg drives the decay of transient status messages
type tickMsg time.Time

// ModelOptions configures a new model
type ModelOptions struct {
	Filepath string
	Config   *config.Config
	Measurer layout.Measurer
}

// Model is the main application model
type Model struct {
	pane   *Pane
	config *config.Config
	keys   keyMap
	rules  *rulesPanel
	input  textinput.Model

	mode   Mode
	width  int
	height int

	// Highlight prompt state
	highlightKind highlight.Kind
	paletteIndex  int

	// Status
	message    string
	messageTTL time.Duration
	lastTick   time.Time
	ticking    bool

	styles styles
}

type styles struct {
	status  lipgloss.Style
	message lipgloss.Style
	help    lipgloss.Style
	panel   panelStyles
}

func newStyles(theme config.ThemeConfig) styles {
	return styles{
		status: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.StatusBar)).
			Foreground(lipgloss.Color(theme.StatusBarText)),
		message: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.StatusBar)).
			Foreground(lipgloss.Color(theme.Message)).
			Bold(true),
		help: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.LineNumbers)),
		panel: panelStyles{
			title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.SearchMatch)),
			cursor: lipgloss.NewStyle().Background(lipgloss.Color(theme.Selection)),
			dim:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.LineNumbers)),
		},
	}
}

// palette is cycled through for highlights added without a color
var palette = []string{"24", "58", "53", "22", "94", "60"}

// NewModel creates a model from options
func NewModel(opts ModelOptions) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	m := opts.Measurer
	if m == nil {
		m = layout.CellMeasurer{}
	}

	pane, err := NewPane(opts.Filepath, cfg, m)
	if err != nil {
		return nil, err
	}

	ti := textinput.New()
	ti.CharLimit = 1024

	model := &Model{
		pane:   pane,
		config: cfg,
		keys:   newKeyMap(cfg.Keybindings),
		rules:  newRulesPanel(),
		input:  ti,
		mode:   ModeNormal,
		styles: newStyles(cfg.Theme),
	}
	if opts.Measurer == nil && cfg.Display.Measure == config.MeasureFace {
		log.Printf("display.measure = %q ignored in the terminal", cfg.Display.Measure)
		model.setMessage("measure = face only applies to export (-o)")
	}
	return model, nil
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		model, cmd := m.handleKey(msg)
		return model, tea.Batch(cmd, m.startTicking())

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tickMsg:
		return m, m.tick(time.Time(msg))
	}

	return m, nil
}

func (m *Model) resize() {
	h := m.height - chromeHeight
	if h < 0 {
		h = 0
	}
	m.pane.SetSize(m.width, h)
}

// startTicking begins the status decay loop if something needs it
func (m *Model) startTicking() tea.Cmd {
	if m.ticking || !m.hasTransient() {
		return nil
	}
	m.ticking = true
	m.lastTick = time.Now()
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) tick(now time.Time) tea.Cmd {
	elapsed := now.Sub(m.lastTick)
	m.lastTick = now

	m.pane.Session().Tick(elapsed)
	if m.messageTTL > 0 {
		m.messageTTL -= elapsed
		if m.messageTTL <= 0 {
			m.messageTTL = 0
			m.message = ""
		}
	}

	if !m.hasTransient() {
		m.ticking = false
		return nil
	}
	return tickCmd()
}

func (m *Model) hasTransient() bool {
	noMatch, _ := m.pane.Session().NoMatch()
	return noMatch || m.messageTTL > 0
}

func (m *Model) setMessage(format string, args ...any) {
	m.message = fmt.Sprintf(format, args...)
	m.messageTTL = messageLife
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeNormal:
		return m.handleNormalKey(msg)
	case ModeRules:
		return m.handleRulesKey(msg)
	case ModeMarkSet, ModeMarkJump:
		return m.handleMarkKey(msg)
	default:
		return m.handleInputKey(msg)
	}
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.pane.Session()
	s.Update()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Down):
		s.ScrollBy(1)
	case key.Matches(msg, m.keys.Up):
		s.ScrollBy(-1)
	case key.Matches(msg, m.keys.PageDown):
		s.PageDown()
	case key.Matches(msg, m.keys.PageUp):
		s.PageUp()
	case key.Matches(msg, m.keys.Top):
		s.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		s.GotoBottom()

	case key.Matches(msg, m.keys.Search):
		return m, m.prompt(ModeSearch, "")
	case key.Matches(msg, m.keys.SearchBackward):
		return m, m.prompt(ModeSearchBackward, "")
	case key.Matches(msg, m.keys.Goto):
		return m, m.prompt(ModeGoto, "")
	case key.Matches(msg, m.keys.NextMatch):
		s.SearchNext()
	case key.Matches(msg, m.keys.PrevMatch):
		s.SearchPrev()

	case key.Matches(msg, m.keys.ToggleWrap):
		s.SetWrap(!s.Wrap())
	case key.Matches(msg, m.keys.FontUp):
		s.SetFontSize(s.FontSize() + 1)
	case key.Matches(msg, m.keys.FontDown):
		s.SetFontSize(s.FontSize() - 1)
	case key.Matches(msg, m.keys.LineNumbers):
		s.SetShowLineNumbers(!s.ShowLineNumbers())

	case key.Matches(msg, m.keys.AddInclude):
		return m, m.prompt(ModeInclude, "")
	case key.Matches(msg, m.keys.AddExclude):
		return m, m.prompt(ModeExclude, "")
	case key.Matches(msg, m.keys.AddHighlight):
		m.highlightKind = highlight.Background
		return m, m.prompt(ModeHighlight, "")
	case key.Matches(msg, m.keys.Rules):
		m.mode = ModeRules

	case key.Matches(msg, m.keys.Select):
		s.ToggleClick(m.focusRow())
	case key.Matches(msg, m.keys.ClearSelection):
		s.ClearSelection()
	case key.Matches(msg, m.keys.Copy):
		m.copySelection()
	case key.Matches(msg, m.keys.Save):
		return m, m.prompt(ModeSave, m.pane.SourcePath()+".filtered")
	case key.Matches(msg, m.keys.Open):
		return m, m.prompt(ModeOpen, m.pane.SourcePath())

	case key.Matches(msg, m.keys.SetMark):
		m.mode = ModeMarkSet
	case key.Matches(msg, m.keys.JumpMark):
		m.mode = ModeMarkJump
	case key.Matches(msg, m.keys.NextMark):
		if !s.NextMark() {
			m.setMessage("No marks")
		}
	case key.Matches(msg, m.keys.PrevMark):
		if !s.PrevMark() {
			m.setMessage("No marks")
		}
	case key.Matches(msg, m.keys.ClearMarks):
		s.ClearMarks()
		m.setMessage("Marks cleared")
	case key.Matches(msg, m.keys.LevelFilter):
		return m, m.prompt(ModeLevel, "")
	}

	return m, nil
}

// handleMarkKey takes the mark name typed after the set or jump key
func (m *Model) handleMarkKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	mode := m.mode
	m.mode = ModeNormal
	if msg.Type == tea.KeyEsc {
		return m, nil
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 || !session.IsMarkName(msg.Runes[0]) {
		m.setMessage("Marks are named a-z")
		return m, nil
	}

	s := m.pane.Session()
	name := msg.Runes[0]
	if mode == ModeMarkSet {
		if s.SetMark(name) {
			m.setMessage("Mark %c set", name)
		}
		return m, nil
	}
	if _, ok := s.Mark(name); !ok {
		m.setMessage("Mark %c not set", name)
	} else if !s.JumpToMark(name) {
		m.setMessage("Mark %c is filtered out", name)
	}
	return m, nil
}

// focusRow is the current match if it is on screen, else the top row
func (m *Model) focusRow() int {
	s := m.pane.Session()
	vp := s.Viewport()
	top := vp.CurrentLine()
	if cur, ok := s.CurrentMatch(); ok && cur >= top && cur < top+vp.VisibleLines() {
		return cur
	}
	return top
}

func (m *Model) copySelection() {
	s := m.pane.Session()
	if s.Selection().Len() == 0 {
		m.setMessage("Nothing selected")
		return
	}
	if err := clipboardWrite(s.SelectedText()); err != nil {
		log.Printf("clipboard: %v", err)
		m.setMessage("Copy failed: %v", err)
		return
	}
	m.setMessage("Copied %d lines", s.Selection().Len())
}

func (m *Model) prompt(mode Mode, value string) tea.Cmd {
	m.mode = mode
	m.input.Placeholder = placeholder(mode)
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	return textinput.Blink
}

func placeholder(mode Mode) string {
	switch mode {
	case ModeGoto:
		return "Line number, ., $, $-N..."
	case ModeInclude, ModeExclude:
		return "Pattern..."
	case ModeHighlight:
		return "Pattern [@color], tab switches kind"
	case ModeOpen, ModeSave:
		return "Path..."
	case ModeEditRule:
		return "New pattern..."
	case ModeLevel:
		return "warn+, error, info,warn; empty shows all"
	default:
		return "Search..."
	}
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := m.input.Value()
		mode := m.mode
		m.closePrompt(mode)
		m.submit(mode, value)
		return m, nil

	case "esc":
		mode := m.mode
		m.closePrompt(mode)
		if mode == ModeEditRule {
			m.rules.editing = ""
		}
		return m, nil

	case "tab":
		if m.mode == ModeHighlight {
			if m.highlightKind == highlight.Background {
				m.highlightKind = highlight.Letters
			} else {
				m.highlightKind = highlight.Background
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt(mode Mode) {
	m.input.Blur()
	m.mode = ModeNormal
	if mode == ModeEditRule {
		m.mode = ModeRules
	}
}

func (m *Model) submit(mode Mode, value string) {
	s := m.pane.Session()
	s.Update()

	switch mode {
	case ModeSearch:
		s.SearchForward(value)
	case ModeSearchBackward:
		s.SearchBackward(value)

	case ModeGoto:
		if !m.pane.Goto(value) {
			m.setMessage("No line %s", strings.TrimSpace(value))
		}

	case ModeInclude, ModeExclude:
		if value == "" {
			return
		}
		kind := filter.Include
		if mode == ModeExclude {
			kind = filter.Exclude
		}
		s.AddFilter(kind, value)

	case ModeHighlight:
		pattern, color := parseHighlightInput(value)
		if pattern == "" {
			return
		}
		if color == "" {
			color = palette[m.paletteIndex%len(palette)]
			m.paletteIndex++
		}
		s.AddHighlight(m.highlightKind, pattern, color)

	case ModeEditRule:
		m.rules.commitEdit(s, value)

	case ModeLevel:
		if !applyLevelInput(s, value) {
			m.setMessage("Unknown level %s", strings.TrimSpace(value))
		}

	case ModeOpen:
		if value == "" {
			return
		}
		if err := m.pane.Open(value); err != nil {
			m.setMessage("Open failed: %v", err)
			return
		}
		m.setMessage("Opened %s", m.pane.Filename())

	case ModeSave:
		if value == "" {
			return
		}
		if err := s.SaveFile(value, m.config.Display.SaveLineNumbers); err != nil {
			m.setMessage("Save failed: %v", err)
			return
		}
		m.setMessage("Saved %s", value)
	}
}

// applyLevelInput sets the level filter from "warn+" (warn and above),
// "error" (only errors) or a comma list like "info,warn". Empty input shows
// every level. It reports false, changing nothing, on an unknown name.
func applyLevelInput(s *session.Session, input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		s.ClearLevels()
		return true
	}
	if name, ok := strings.CutSuffix(input, "+"); ok {
		level, ok := logformat.ParseLevel(name)
		if !ok {
			return false
		}
		s.SetLevelAndAbove(level)
		return true
	}

	var levels []logformat.Level
	for _, name := range strings.Split(input, ",") {
		level, ok := logformat.ParseLevel(name)
		if !ok {
			return false
		}
		levels = append(levels, level)
	}
	s.SetOnlyLevel(levels[0])
	for _, level := range levels[1:] {
		if !containsLevel(s.Levels(), level) {
			s.ToggleLevel(level)
		}
	}
	return true
}

func containsLevel(levels []logformat.Level, level logformat.Level) bool {
	for _, l := range levels {
		if l == level {
			return true
		}
	}
	return false
}

// parseHighlightInput splits "pattern @color" into its parts. Without a
// trailing "@color" word the whole input is the pattern.
func parseHighlightInput(input string) (pattern, color string) {
	i := strings.LastIndex(input, " @")
	if i < 0 {
		return input, ""
	}
	color = strings.TrimSpace(input[i+2:])
	if color == "" || strings.Contains(color, " ") {
		return input, ""
	}
	return input[:i], color
}

func (m *Model) handleRulesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.pane.Session()
	k := m.rules.keys

	switch {
	case key.Matches(msg, k.Close):
		m.mode = ModeNormal
	case key.Matches(msg, k.Up):
		m.rules.move(-1, s)
	case key.Matches(msg, k.Down):
		m.rules.move(1, s)
	case key.Matches(msg, k.Toggle):
		m.rules.toggle(s)
	case key.Matches(msg, k.Delete):
		m.rules.remove(s)
	case key.Matches(msg, k.Kind):
		m.rules.switchKind(s)
	case key.Matches(msg, k.Edit):
		if pattern, ok := m.rules.beginEdit(s); ok {
			return m, m.prompt(ModeEditRule, pattern)
		}
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	s := m.pane.Session()
	s.Update()

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		s.ScrollBy(-scrollWheel)
		return
	case tea.MouseButtonWheelDown:
		s.ScrollBy(scrollWheel)
		return
	case tea.MouseButtonLeft:
	default:
		return
	}
	if msg.Action != tea.MouseActionPress || m.mode != ModeNormal {
		return
	}

	row := s.Viewport().RowAt(msg.Y)
	if row < 0 {
		return
	}
	switch {
	case msg.Shift:
		s.RangeClick(row)
	case msg.Ctrl:
		s.ToggleClick(row)
	default:
		s.Click(row)
	}
}

// View implements tea.Model
func (m *Model) View() string {
	var builder strings.Builder

	if m.mode == ModeRules || m.mode == ModeEditRule {
		builder.WriteString(m.rulesView())
	} else {
		builder.WriteString(m.pane.Render())
	}
	builder.WriteString("\n")

	builder.WriteString(m.statusView())
	builder.WriteString("\n")

	help := m.keys.shortHelp()
	if m.mode == ModeRules {
		help = "j/k:move  space:toggle  d:delete  e:edit  t:kind  esc:close"
	}
	builder.WriteString(m.styles.help.Render(help))

	return builder.String()
}

func (m *Model) rulesView() string {
	height := m.height - chromeHeight
	view := m.rules.view(m.pane.Session(), m.width, m.styles.panel)
	lines := strings.Split(view, "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) statusView() string {
	style := m.styles.status.Width(m.width)

	switch m.mode {
	case ModeSearch:
		return style.Render("/" + m.input.View())
	case ModeSearchBackward:
		return style.Render("?" + m.input.View())
	case ModeGoto:
		return style.Render(":" + m.input.View())
	case ModeInclude:
		return style.Render("include: " + m.input.View())
	case ModeExclude:
		return style.Render("exclude: " + m.input.View())
	case ModeHighlight:
		return style.Render(m.highlightKind.String() + ": " + m.input.View())
	case ModeEditRule:
		return style.Render("edit: " + m.input.View())
	case ModeOpen:
		return style.Render("open: " + m.input.View())
	case ModeSave:
		return style.Render("save: " + m.input.View())
	case ModeLevel:
		return style.Render("levels: " + m.input.View())
	case ModeMarkSet:
		return style.Render("mark: ")
	case ModeMarkJump:
		return style.Render("jump to mark: ")
	}

	s := m.pane.Session()
	if noMatch, _ := s.NoMatch(); noMatch {
		return m.styles.message.Width(m.width).Render(" Pattern not found: " + s.SearchTerm())
	}
	if m.message != "" {
		return m.styles.message.Width(m.width).Render(" " + m.message)
	}

	filename := m.pane.Filename()
	if filename == "" {
		filename = "[no file]"
	}
	vp := s.Viewport()
	lineInfo := "L0/0"
	if lines := s.DisplayLines(); len(lines) > 0 {
		top := vp.CurrentLine()
		if top >= len(lines) {
			top = len(lines) - 1
		}
		lineInfo = fmt.Sprintf("L%d/%d", lines[top].LogicalIndex+1, s.TotalLines())
	}
	percent := fmt.Sprintf("%.0f%%", vp.PercentScrolled())

	var flags []string
	if s.IsFiltered() {
		flags = append(flags, fmt.Sprintf("[filtered %d]", s.FilteredCount()))
	}
	if levels := s.Levels(); len(levels) > 0 {
		names := make([]string, len(levels))
		for i, l := range levels {
			names[i] = l.String()
		}
		flags = append(flags, "["+strings.Join(names, ",")+"]")
	}
	if s.Wrap() {
		flags = append(flags, "[wrap]")
	}
	if n := s.Selection().Len(); n > 0 {
		flags = append(flags, fmt.Sprintf("[%d selected]", n))
	}
	if term := s.SearchTerm(); term != "" {
		flags = append(flags, fmt.Sprintf("[/%s]", term))
	}
	flags = append(flags, fmt.Sprintf("%.0fpt", s.FontSize()))

	status := fmt.Sprintf(" %s  %s  %s  %s", filename, lineInfo, percent, strings.Join(flags, " "))
	return style.Render(status)
}

// Pane returns the model's pane
func (m *Model) Pane() *Pane {
	return m.pane
}

// Mode returns the current UI mode
func (m *Model) Mode() Mode {
	return m.mode
}
