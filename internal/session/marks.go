package session

import "sort"

// IsMarkName reports whether r can name a mark
func IsMarkName(r rune) bool {
	return r >= 'a' && r <= 'z'
}

// topLine returns the logical line of the top visible row
func (s *Session) topLine() (int, bool) {
	s.Update()
	top := s.viewport.CurrentLine()
	if top < 0 || top >= len(s.display) {
		return -1, false
	}
	return s.display[top].LogicalIndex, true
}

// SetMark records the logical line at the top of the viewport under name
func (s *Session) SetMark(name rune) bool {
	if !IsMarkName(name) {
		return false
	}
	line, ok := s.topLine()
	if !ok {
		return false
	}
	s.marks[name] = line
	return true
}

// Mark returns the logical line recorded under name
func (s *Session) Mark(name rune) (int, bool) {
	line, ok := s.marks[name]
	return line, ok
}

// Marks returns a copy of the marks
func (s *Session) Marks() map[rune]int {
	out := make(map[rune]int, len(s.marks))
	for name, line := range s.marks {
		out[name] = line
	}
	return out
}

// ClearMarks removes every mark
func (s *Session) ClearMarks() {
	s.marks = make(map[rune]int)
}

// JumpToMark scrolls to a mark and selects its line. It reports false when
// the mark is unset or its line is filtered out.
func (s *Session) JumpToMark(name rune) bool {
	line, ok := s.marks[name]
	if !ok {
		return false
	}
	return s.gotoVisible(line)
}

// NextMark jumps to the nearest visible mark below the top row, wrapping to
// the first one
func (s *Session) NextMark() bool {
	lines := s.visibleMarks()
	if len(lines) == 0 {
		return false
	}
	current, _ := s.topLine()
	for _, line := range lines {
		if line > current {
			return s.GotoLine(line)
		}
	}
	return s.GotoLine(lines[0])
}

// PrevMark jumps to the nearest visible mark above the top row, wrapping to
// the last one
func (s *Session) PrevMark() bool {
	lines := s.visibleMarks()
	if len(lines) == 0 {
		return false
	}
	current, _ := s.topLine()
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i] < current {
			return s.GotoLine(lines[i])
		}
	}
	return s.GotoLine(lines[len(lines)-1])
}

// visibleMarks returns the sorted, distinct lines of marks that pass the
// filters
func (s *Session) visibleMarks() []int {
	s.Update()
	seen := make(map[int]bool, len(s.marks))
	var lines []int
	for _, line := range s.marks {
		if seen[line] || s.filtered.FilteredIndexFor(line) < 0 {
			continue
		}
		seen[line] = true
		lines = append(lines, line)
	}
	sort.Ints(lines)
	return lines
}

func (s *Session) gotoVisible(line int) bool {
	s.Update()
	if s.filtered.FilteredIndexFor(line) < 0 {
		return false
	}
	return s.GotoLine(line)
}
