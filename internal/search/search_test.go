package search

import (
	"testing"
	"time"

	"github.com/TimelordUK/lview/internal/source"
)

func buffer(texts ...string) []source.DisplayLine {
	out := make([]source.DisplayLine, len(texts))
	for i, t := range texts {
		out[i] = source.DisplayLine{LogicalIndex: i, IsFirstSegment: true, Text: t}
	}
	return out
}

func TestForwardSteps(t *testing.T) {
	lines := buffer("a x", "b", "c x", "d", "e x")
	s := NewState()

	want := []int{0, 2, 4, 0, 2}
	for step, w := range want {
		got, ok := s.Forward(lines, "x")
		if !ok || got != w {
			t.Fatalf("step %d: Forward() = %d, %v, want %d", step, got, ok, w)
		}
	}
}

func TestBackwardSteps(t *testing.T) {
	lines := buffer("a x", "b", "c x", "d", "e x")
	s := NewState()

	want := []int{4, 2, 0, 4}
	for step, w := range want {
		got, ok := s.Backward(lines, "x")
		if !ok || got != w {
			t.Fatalf("step %d: Backward() = %d, %v, want %d", step, got, ok, w)
		}
	}
}

func TestSingleMatchReachedFromAnyStart(t *testing.T) {
	const m = 7
	for k := 0; k < m; k++ {
		texts := make([]string, m)
		for i := range texts {
			texts[i] = "line"
		}
		texts[k] = "needle"
		lines := buffer(texts...)

		for startPos := -1; startPos < m; startPos++ {
			fwd := &State{current: startPos}
			if got, ok := fwd.Forward(lines, "needle"); !ok || got != k {
				t.Errorf("k=%d start=%d: Forward() = %d, %v", k, startPos, got, ok)
			}
			bwd := &State{current: startPos}
			if got, ok := bwd.Backward(lines, "needle"); !ok || got != k {
				t.Errorf("k=%d start=%d: Backward() = %d, %v", k, startPos, got, ok)
			}
		}
	}
}

func TestNoMatchLeavesPosition(t *testing.T) {
	lines := buffer("alpha", "beta", "gamma")
	s := NewState()
	s.Forward(lines, "beta")

	if _, ok := s.Forward(lines, "zeta"); ok {
		t.Fatal("unexpected match")
	}
	if cur, ok := s.Current(); !ok || cur != 1 {
		t.Errorf("Current() = %d, %v, want 1", cur, ok)
	}
	if !s.NoMatch() || s.NoMatchRemaining() != NoMatchDuration {
		t.Errorf("no-match signal = %v, %v", s.NoMatch(), s.NoMatchRemaining())
	}

	if _, ok := s.Backward(lines, "zeta"); ok {
		t.Fatal("unexpected match")
	}
	if cur, _ := s.Current(); cur != 1 {
		t.Errorf("Current() = %d after backward miss", cur)
	}

	// A hit clears the signal.
	s.Forward(lines, "gamma")
	if s.NoMatch() {
		t.Error("match should clear no-match signal")
	}
}

func TestNoMatchDecays(t *testing.T) {
	s := NewState()
	s.Forward(buffer("a"), "b")

	s.Tick(time.Second)
	if !s.NoMatch() {
		t.Error("signal cleared too early")
	}
	s.Tick(2 * time.Second)
	if s.NoMatch() {
		t.Error("signal should clear after 3s")
	}
	s.Tick(time.Second)
	if s.NoMatchRemaining() != 0 {
		t.Error("remaining should not go negative")
	}
}

func TestEmptyInputsAreNoop(t *testing.T) {
	s := NewState()
	if _, ok := s.Forward(buffer("a"), ""); ok {
		t.Error("empty term should not match")
	}
	if _, ok := s.Backward(nil, "a"); ok {
		t.Error("empty buffer should not match")
	}
	if s.NoMatch() {
		t.Error("no-op must not raise the no-match signal")
	}
	if _, ok := s.Current(); ok {
		t.Error("position should stay unset")
	}
}

func TestStalePositionPastEnd(t *testing.T) {
	lines := buffer("x", "y", "x")
	s := &State{current: 10}
	if got, ok := s.Forward(lines, "x"); !ok || got != 0 {
		t.Errorf("Forward() = %d, %v, want 0", got, ok)
	}
	s = &State{current: 10}
	if got, ok := s.Backward(lines, "x"); !ok || got != 2 {
		t.Errorf("Backward() = %d, %v, want 2", got, ok)
	}
}

func TestScrollTarget(t *testing.T) {
	tests := []struct {
		name           string
		index, total   int
		lineHeight     float64
		viewportHeight float64
		want           float64
	}{
		{"centered", 50, 100, 1, 10, 45},
		{"clamped at top", 2, 100, 1, 10, 0},
		{"clamped at bottom", 98, 100, 1, 10, 90},
		{"short buffer", 3, 5, 1, 10, 0},
		{"pixel rows", 50, 100, 20, 200, 900},
		{"odd height", 10, 100, 1, 5, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScrollTarget(tt.index, tt.total, tt.lineHeight, tt.viewportHeight)
			if got != tt.want {
				t.Errorf("ScrollTarget() = %v, want %v", got, tt.want)
			}
		})
	}
}
