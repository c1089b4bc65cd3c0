// Package search finds literal text in the display-line buffer, stepping
// forward or backward from the current match and wrapping at either end.
package search

import (
	"math"
	"strings"
	"time"

	"github.com/TimelordUK/lview/internal/source"
)

// NoMatchDuration is how long the no-match signal stays raised
const NoMatchDuration = 3 * time.Second

// State tracks the current match position and the transient no-match signal
type State struct {
	current int // display-line index, -1 when unset
	term    string

	noMatchRemaining time.Duration
}

// NewState creates a state with no current match
func NewState() *State {
	return &State{current: -1}
}

// Current returns the display-line index of the current match
func (s *State) Current() (int, bool) {
	return s.current, s.current >= 0
}

// Term returns the last searched text
func (s *State) Term() string {
	return s.term
}

// Reset clears the current position and the no-match signal
func (s *State) Reset() {
	s.current = -1
	s.term = ""
	s.noMatchRemaining = 0
}

// Forward finds the next display line containing text after the current
// position, wrapping to the start of the buffer. It returns the matched
// index; on failure the position is left alone and the no-match signal is
// raised. Empty text or an empty buffer is a no-op.
func (s *State) Forward(lines []source.DisplayLine, text string) (int, bool) {
	n := len(lines)
	if text == "" || n == 0 {
		return -1, false
	}
	s.term = text

	start := s.current + 1
	if start >= n || start < 0 {
		start = 0
	}

	for i := start; i < n; i++ {
		if strings.Contains(lines[i].Text, text) {
			return s.found(i)
		}
	}
	for i := 0; i < start; i++ {
		if strings.Contains(lines[i].Text, text) {
			return s.found(i)
		}
	}
	return s.missed()
}

// Backward mirrors Forward, scanning toward the start of the buffer and
// wrapping to its end.
func (s *State) Backward(lines []source.DisplayLine, text string) (int, bool) {
	n := len(lines)
	if text == "" || n == 0 {
		return -1, false
	}
	s.term = text

	start := s.current - 1
	if start < 0 || start >= n {
		start = n - 1
	}

	for i := start; i >= 0; i-- {
		if strings.Contains(lines[i].Text, text) {
			return s.found(i)
		}
	}
	for i := n - 1; i > start; i-- {
		if strings.Contains(lines[i].Text, text) {
			return s.found(i)
		}
	}
	return s.missed()
}

func (s *State) found(i int) (int, bool) {
	s.current = i
	s.noMatchRemaining = 0
	return i, true
}

func (s *State) missed() (int, bool) {
	s.noMatchRemaining = NoMatchDuration
	return -1, false
}

// NoMatch reports whether the no-match signal is raised
func (s *State) NoMatch() bool {
	return s.noMatchRemaining > 0
}

// NoMatchRemaining returns how long the signal stays raised
func (s *State) NoMatchRemaining() time.Duration {
	return s.noMatchRemaining
}

// Tick decays the no-match signal by elapsed
func (s *State) Tick(elapsed time.Duration) {
	if s.noMatchRemaining <= 0 {
		return
	}
	s.noMatchRemaining -= elapsed
	if s.noMatchRemaining < 0 {
		s.noMatchRemaining = 0
	}
}

// ScrollTarget returns the scroll offset that centers display line index in
// a viewport of viewportHeight, clamped to [0, total*lineHeight-viewportHeight].
func ScrollTarget(index, total int, lineHeight, viewportHeight float64) float64 {
	if lineHeight <= 0 {
		return 0
	}
	visible := math.Floor(viewportHeight / lineHeight)
	target := (float64(index) - math.Floor(visible/2)) * lineHeight

	maxScroll := float64(total)*lineHeight - viewportHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if target > maxScroll {
		target = maxScroll
	}
	if target < 0 {
		target = 0
	}
	return target
}
