package logformat

import (
	"testing"

	"github.com/TimelordUK/lview/internal/config"
	"github.com/TimelordUK/lview/internal/highlight"
)

func TestHighlightRulesSeverityWins(t *testing.T) {
	cfg := config.DefaultConfig()
	rules := HighlightRules(&cfg.LogLevels, cfg.Theme.Levels)
	if len(rules) == 0 {
		t.Fatal("expected rules from default config")
	}

	tests := []struct {
		line string
		want string
	}{
		{"2024-01-15 10:30:45 [ERR] failed after INFO banner", cfg.Theme.Levels.Error},
		{"2024-01-15 10:30:45 [INF] started", cfg.Theme.Levels.Info},
		{"CRITICAL: disk gone", cfg.Theme.Levels.Fatal},
		{"WARNING low memory", cfg.Theme.Levels.Warn},
	}
	for _, tt := range tests {
		got, ok := highlight.Match(tt.line, rules, highlight.Letters)
		if !ok || got != tt.want {
			t.Errorf("Match(%q) = %q, %v, want %q", tt.line, got, ok, tt.want)
		}
	}

	if _, ok := highlight.Match("plain text", rules, highlight.Letters); ok {
		t.Error("plain text should not match")
	}
}

func TestHighlightRulesSkipUncolored(t *testing.T) {
	levels := config.LogLevelConfig{ErrorPatterns: []string{"ERROR"}, InfoPatterns: []string{"INFO"}}
	rules := HighlightRules(&levels, config.LogLevelColors{Error: "1"})
	if len(rules) != 1 || rules[0].Pattern != "ERROR" {
		t.Errorf("rules = %+v", rules)
	}
}

func TestLevelString(t *testing.T) {
	if LevelWarn.String() != "warn" || Level(99).String() != "unknown" {
		t.Error("Level.String() mismatch")
	}
}

func TestDetect(t *testing.T) {
	cfg := config.DefaultConfig()
	d := NewDetector(&cfg.LogLevels)

	tests := []struct {
		line string
		want Level
	}{
		{"2024-01-01 [INF] started", LevelInfo},
		{"2024-01-01 [DBG] cache warm", LevelDebug},
		{"WARNING disk at 90%", LevelWarn},
		{"ERROR connection refused", LevelError},
		{"FATAL out of memory", LevelFatal},
		{"INFO retry after ERROR", LevelError},
		{"plain text", LevelUnknown},
		{"", LevelUnknown},
	}
	for _, tt := range tests {
		if got := d.Detect(tt.line); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want Level
		ok   bool
	}{
		{"warn", LevelWarn, true},
		{" ERR ", LevelError, true},
		{"critical", LevelFatal, true},
		{"trc", LevelTrace, true},
		{"verbose", LevelUnknown, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v, want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}
