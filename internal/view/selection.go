package view

import "sort"

// Selection is a set of logical-line indices plus the last clicked line,
// which anchors range selection
type Selection struct {
	order  []int
	set    map[int]struct{}
	anchor int
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{set: make(map[int]struct{}), anchor: -1}
}

// Click selects only line and makes it the anchor
func (s *Selection) Click(line int) {
	s.Clear()
	s.add(line)
	s.anchor = line
}

// Toggle adds or removes line and makes it the anchor
func (s *Selection) Toggle(line int) {
	s.anchor = line
	if _, ok := s.set[line]; ok {
		delete(s.set, line)
		for i, l := range s.order {
			if l == line {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return
	}
	s.add(line)
}

// RangeTo selects every visible line between the anchor and line inclusive.
// visible lists the logical indices currently on display, in order. Without
// an anchor it behaves like Click. The anchor does not move.
func (s *Selection) RangeTo(line int, visible []int) {
	if s.anchor < 0 {
		s.Click(line)
		return
	}
	lo, hi := s.anchor, line
	if lo > hi {
		lo, hi = hi, lo
	}
	for _, l := range visible {
		if l >= lo && l <= hi {
			s.add(l)
		}
	}
}

func (s *Selection) add(line int) {
	if _, ok := s.set[line]; ok {
		return
	}
	s.set[line] = struct{}{}
	s.order = append(s.order, line)
}

// Clear removes every selected line and the anchor
func (s *Selection) Clear() {
	s.order = nil
	s.set = make(map[int]struct{})
	s.anchor = -1
}

// Contains reports whether line is selected
func (s *Selection) Contains(line int) bool {
	_, ok := s.set[line]
	return ok
}

// Anchor returns the last clicked line
func (s *Selection) Anchor() (int, bool) {
	return s.anchor, s.anchor >= 0
}

// Len returns the number of selected lines
func (s *Selection) Len() int {
	return len(s.order)
}

// Lines returns the selected lines in insertion order
func (s *Selection) Lines() []int {
	out := make([]int, len(s.order))
	copy(out, s.order)
	return out
}

// Sorted returns the selected lines in file order
func (s *Selection) Sorted() []int {
	out := s.Lines()
	sort.Ints(out)
	return out
}
