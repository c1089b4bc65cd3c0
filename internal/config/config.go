package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration
type Config struct {
	Theme       ThemeConfig       `toml:"theme"`
	LogLevels   LogLevelConfig    `toml:"log_levels"`
	Keybindings KeybindingConfig  `toml:"keybindings"`
	Display     DisplayConfig     `toml:"display"`
	Filters     []FilterConfig    `toml:"filters"`
	Highlights  []HighlightConfig `toml:"highlights"`
}

// ThemeConfig defines color schemes
type ThemeConfig struct {
	Name          string         `toml:"name"`
	LineNumbers   string         `toml:"line_numbers"`
	StatusBar     string         `toml:"status_bar"`
	StatusBarText string         `toml:"status_bar_text"`
	SearchMatch   string         `toml:"search_match"`
	Selection     string         `toml:"selection"`
	Message       string         `toml:"message"`
	Levels        LogLevelColors `toml:"levels"`
}

// LogLevelColors defines colors for each log level
type LogLevelColors struct {
	Trace string `toml:"trace"`
	Debug string `toml:"debug"`
	Info  string `toml:"info"`
	Warn  string `toml:"warn"`
	Error string `toml:"error"`
	Fatal string `toml:"fatal"`
}

// LogLevelConfig defines log level detection patterns
type LogLevelConfig struct {
	TracePatterns []string `toml:"trace_patterns"`
	DebugPatterns []string `toml:"debug_patterns"`
	InfoPatterns  []string `toml:"info_patterns"`
	WarnPatterns  []string `toml:"warn_patterns"`
	ErrorPatterns []string `toml:"error_patterns"`
	FatalPatterns []string `toml:"fatal_patterns"`
}

// KeybindingConfig allows customizing keybindings
type KeybindingConfig struct {
	Quit           []string `toml:"quit"`
	ScrollUp       []string `toml:"scroll_up"`
	ScrollDown     []string `toml:"scroll_down"`
	PageUp         []string `toml:"page_up"`
	PageDown       []string `toml:"page_down"`
	Top            []string `toml:"top"`
	Bottom         []string `toml:"bottom"`
	Search         []string `toml:"search"`
	SearchBackward []string `toml:"search_backward"`
	NextMatch      []string `toml:"next_match"`
	PrevMatch      []string `toml:"prev_match"`
	Goto           []string `toml:"goto"`
	ToggleWrap     []string `toml:"toggle_wrap"`
	FontUp         []string `toml:"font_up"`
	FontDown       []string `toml:"font_down"`
	AddInclude     []string `toml:"add_include"`
	AddExclude     []string `toml:"add_exclude"`
	AddHighlight   []string `toml:"add_highlight"`
	Rules          []string `toml:"rules"`
	Select         []string `toml:"select"`
	ClearSelection []string `toml:"clear_selection"`
	Copy           []string `toml:"copy"`
	Save           []string `toml:"save"`
	Open           []string `toml:"open"`
	LineNumbers    []string `toml:"line_numbers"`
	SetMark        []string `toml:"set_mark"`
	JumpMark       []string `toml:"jump_mark"`
	NextMark       []string `toml:"next_mark"`
	PrevMark       []string `toml:"prev_mark"`
	ClearMarks     []string `toml:"clear_marks"`
	LevelFilter    []string `toml:"level_filter"`
}

// Measure values. The terminal UI always measures in cells, so MeasureFace
// only changes headless export (-o), which then wraps by Go Regular glyph
// widths instead of terminal cells.
const (
	MeasureCell = "cell"
	MeasureFace = "face"
)

// DisplayConfig holds display options
type DisplayConfig struct {
	ShowLineNumbers bool    `toml:"show_line_numbers"`
	WrapLines       bool    `toml:"wrap_lines"`
	FontSize        float64 `toml:"font_size"`
	Measure         string  `toml:"measure"` // "cell" or "face"; see MeasureFace
	Syntax          bool    `toml:"syntax"`
	SyntaxTheme     string  `toml:"syntax_theme"`
	LevelColors     bool    `toml:"level_colors"`
	SaveLineNumbers bool    `toml:"save_line_numbers"`
}

// FilterConfig is a preset filter rule
type FilterConfig struct {
	Kind    string `toml:"kind"` // "include" or "exclude"
	Pattern string `toml:"pattern"`
	Enabled *bool  `toml:"enabled"`
}

// HighlightConfig is a preset highlight rule
type HighlightConfig struct {
	Kind    string `toml:"kind"` // "background" or "letters"
	Pattern string `toml:"pattern"`
	Color   string `toml:"color"`
	Enabled *bool  `toml:"enabled"`
}

// IsEnabled reports whether the preset starts enabled (default true)
func (f FilterConfig) IsEnabled() bool {
	return f.Enabled == nil || *f.Enabled
}

// IsEnabled reports whether the preset starts enabled (default true)
func (h HighlightConfig) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Theme: ThemeConfig{
			Name:          "subtle",
			LineNumbers:   "240", // Dark gray
			StatusBar:     "236", // Darker gray background
			StatusBarText: "252", // Light gray text
			SearchMatch:   "226", // Yellow
			Selection:     "24",  // Deep blue
			Message:       "203", // Salmon
			Levels: LogLevelColors{
				Trace: "240", // Dark gray
				Debug: "244", // Medium gray
				Info:  "250", // Light gray (default)
				Warn:  "214", // Orange
				Error: "167", // Soft red
				Fatal: "196", // Bright red
			},
		},
		LogLevels: LogLevelConfig{
			TracePatterns: []string{"[TRC]", "[TRACE]", "TRACE", "TRC"},
			DebugPatterns: []string{"[DBG]", "[DEBUG]", "DEBUG", "DBG"},
			InfoPatterns:  []string{"[INF]", "[INFO]", "INFO", "INF"},
			WarnPatterns:  []string{"[WRN]", "[WARN]", "[WARNING]", "WARN", "WRN", "WARNING"},
			ErrorPatterns: []string{"[ERR]", "[ERROR]", "ERROR", "ERR"},
			FatalPatterns: []string{"[FTL]", "[FATAL]", "FATAL", "FTL", "[CRIT]", "CRITICAL"},
		},
		Keybindings: KeybindingConfig{
			Quit:           []string{"q", "ctrl+c"},
			ScrollUp:       []string{"k", "up"},
			ScrollDown:     []string{"j", "down"},
			PageUp:         []string{"b", "pgup", "ctrl+u"},
			PageDown:       []string{"f", "pgdown", "ctrl+d", " "},
			Top:            []string{"g", "home"},
			Bottom:         []string{"G", "end"},
			Search:         []string{"/"},
			SearchBackward: []string{"?"},
			NextMatch:      []string{"n"},
			PrevMatch:      []string{"N"},
			Goto:           []string{":"},
			ToggleWrap:     []string{"w"},
			FontUp:         []string{"+", "="},
			FontDown:       []string{"-"},
			AddInclude:     []string{"i"},
			AddExclude:     []string{"x"},
			AddHighlight:   []string{"h"},
			Rules:          []string{"r"},
			Select:         []string{"v"},
			ClearSelection: []string{"esc"},
			Copy:           []string{"y"},
			Save:           []string{"s"},
			Open:           []string{"o"},
			LineNumbers:    []string{"l"},
			SetMark:        []string{"m"},
			JumpMark:       []string{"'"},
			NextMark:       []string{"]"},
			PrevMark:       []string{"["},
			ClearMarks:     []string{"M"},
			LevelFilter:    []string{"L"},
		},
		Display: DisplayConfig{
			ShowLineNumbers: true,
			WrapLines:       false,
			FontSize:        14,
			Measure:         MeasureCell,
			SyntaxTheme:     "monokai",
			LevelColors:     true,
		},
	}
}

// Load loads config from path, or from the default location when path is
// empty, falling back to defaults when the file does not exist
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = getConfigPath()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	switch cfg.Display.Measure {
	case "", MeasureCell, MeasureFace:
	default:
		return nil, fmt.Errorf("config %s: display.measure must be %q or %q, got %q",
			path, MeasureCell, MeasureFace, cfg.Display.Measure)
	}

	return cfg, nil
}

// getConfigPath returns the config file path
func getConfigPath() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lview", "config.toml")
	}

	// Fall back to ~/.config
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "lview", "config.toml")
}

// GetConfigPath exports the config path for user reference
func GetConfigPath() string {
	return getConfigPath()
}
