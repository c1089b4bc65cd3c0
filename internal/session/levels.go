package session

import (
	"github.com/TimelordUK/lview/pkg/logformat"
)

// ToggleLevel shows or hides lines of one level. An empty level set shows
// every line.
func (s *Session) ToggleLevel(level logformat.Level) {
	if s.levels[level] {
		delete(s.levels, level)
	} else {
		s.levels[level] = true
	}
	s.applyLevels()
}

// SetOnlyLevel shows only lines of level
func (s *Session) SetOnlyLevel(level logformat.Level) {
	s.levels = map[logformat.Level]bool{level: true}
	s.applyLevels()
}

// SetLevelAndAbove shows lines of level and every more severe level
func (s *Session) SetLevelAndAbove(level logformat.Level) {
	s.levels = make(map[logformat.Level]bool)
	for _, l := range logformat.Levels {
		if l >= level {
			s.levels[l] = true
		}
	}
	s.applyLevels()
}

// ClearLevels shows lines of every level
func (s *Session) ClearLevels() {
	s.levels = make(map[logformat.Level]bool)
	s.applyLevels()
}

// Levels returns the shown levels, least severe first. Empty means all.
func (s *Session) Levels() []logformat.Level {
	var out []logformat.Level
	for _, l := range logformat.Levels {
		if s.levels[l] {
			out = append(out, l)
		}
	}
	return out
}

func (s *Session) applyLevels() {
	if len(s.levels) == 0 {
		s.filtered.SetScope(nil)
		return
	}
	shown := make(map[logformat.Level]bool, len(s.levels))
	for l := range s.levels {
		shown[l] = true
	}
	detector := s.detector
	s.filtered.SetScope(func(text string) bool {
		return shown[detector.Detect(text)]
	})
}
