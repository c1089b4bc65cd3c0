// Package logformat turns the configured log level patterns into highlight
// rules, so severity coloring goes through the same engine as user rules,
// and detects the level of a line for level filtering.
package logformat

import (
	"strings"

	"github.com/TimelordUK/lview/internal/config"
	"github.com/TimelordUK/lview/internal/highlight"
)

// Level represents a log severity level
type Level int

const (
	LevelUnknown Level = iota
	LevelTrace
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// String returns the level name
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Levels lists the known levels, least severe first
var Levels = []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal}

// ParseLevel maps a level name to its Level. Short forms such as "wrn" and
// "err" are accepted.
func ParseLevel(name string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace", "trc":
		return LevelTrace, true
	case "debug", "dbg":
		return LevelDebug, true
	case "info", "inf":
		return LevelInfo, true
	case "warn", "wrn", "warning":
		return LevelWarn, true
	case "error", "err":
		return LevelError, true
	case "fatal", "ftl", "crit", "critical":
		return LevelFatal, true
	}
	return LevelUnknown, false
}

// Detector finds the level of a line from the configured patterns
type Detector struct {
	patterns map[Level][]string
}

// NewDetector creates a detector for cfg
func NewDetector(cfg *config.LogLevelConfig) *Detector {
	d := &Detector{patterns: make(map[Level][]string)}
	for _, level := range severityOrder {
		for _, p := range patternsFor(cfg, level) {
			if p != "" {
				d.patterns[level] = append(d.patterns[level], p)
			}
		}
	}
	return d
}

// Detect returns the most severe level whose pattern occurs in text
func (d *Detector) Detect(text string) Level {
	for _, level := range severityOrder {
		for _, p := range d.patterns[level] {
			if strings.Contains(text, p) {
				return level
			}
		}
	}
	return LevelUnknown
}

// severityOrder lists levels most severe first. Since the first matching
// highlight rule wins, a line containing both "ERROR" and "INFO" is colored
// as an error.
var severityOrder = []Level{LevelFatal, LevelError, LevelWarn, LevelInfo, LevelDebug, LevelTrace}

func patternsFor(cfg *config.LogLevelConfig, level Level) []string {
	switch level {
	case LevelTrace:
		return cfg.TracePatterns
	case LevelDebug:
		return cfg.DebugPatterns
	case LevelInfo:
		return cfg.InfoPatterns
	case LevelWarn:
		return cfg.WarnPatterns
	case LevelError:
		return cfg.ErrorPatterns
	case LevelFatal:
		return cfg.FatalPatterns
	}
	return nil
}

func colorFor(colors config.LogLevelColors, level Level) string {
	switch level {
	case LevelTrace:
		return colors.Trace
	case LevelDebug:
		return colors.Debug
	case LevelInfo:
		return colors.Info
	case LevelWarn:
		return colors.Warn
	case LevelError:
		return colors.Error
	case LevelFatal:
		return colors.Fatal
	}
	return ""
}

// HighlightRules returns one letter-color rule per level pattern, most severe
// level first. Levels without a color are skipped.
func HighlightRules(levels *config.LogLevelConfig, colors config.LogLevelColors) []highlight.Rule {
	var rules []highlight.Rule
	for _, level := range severityOrder {
		color := colorFor(colors, level)
		if color == "" {
			continue
		}
		for _, pattern := range patternsFor(levels, level) {
			if pattern == "" {
				continue
			}
			rules = append(rules, highlight.Rule{
				Kind:    highlight.Letters,
				Pattern: pattern,
				Color:   color,
				Enabled: true,
			})
		}
	}
	return rules
}
