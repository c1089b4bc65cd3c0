package layout

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/TimelordUK/lview/internal/source"
)

// fixedMeasurer gives every rune the same width, scaled by font size.
type fixedMeasurer struct{}

func (fixedMeasurer) Measure(text string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(text)) * fontSize
}

func (fixedMeasurer) LineHeight(fontSize float64) float64 {
	return fontSize
}

// wideMeasurer makes 'W' three units wide and everything else one.
type wideMeasurer struct{}

func (wideMeasurer) Measure(text string, _ float64) float64 {
	var w float64
	for _, r := range text {
		if r == 'W' {
			w += 3
		} else {
			w++
		}
	}
	return w
}

func (wideMeasurer) LineHeight(float64) float64 { return 1 }

func TestWrapLine(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     []string
	}{
		{"fits", "alpha beta", 20, []string{"alpha beta"}},
		{"word boundary", "alpha beta gamma", 11, []string{"alpha beta", "gamma"}},
		{"exact fit", "alpha beta", 10, []string{"alpha beta"}},
		{"one word per row", "aa bb cc", 2, []string{"aa", "bb", "cc"}},
		{"collapses whitespace", "  a   b  ", 10, []string{"a b"}},
		{"empty", "", 10, nil},
		{"whitespace only", "   \t ", 10, nil},
		{"hard break", "abcdefgh", 3, []string{"abc", "def", "gh"}},
		{"hard break remainder shares row", "abcdefg hi", 5, []string{"abcde", "fg hi"}},
		{"flush before long word", "ab cdefgh", 4, []string{"ab", "cdef", "gh"}},
		{"width one", "abc d", 1, []string{"a", "b", "c", "d"}},
		{"first word fills row", "abcde f", 5, []string{"abcde", "f"}},
		{"full-width word after row", "abc defgh", 5, []string{"abc", "defgh"}},
		{"full-width word after hard break", "abcdefg hijkl", 5, []string{"abcde", "fg", "hijkl"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapLine(tt.text, tt.maxWidth, 1, fixedMeasurer{})
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WrapLine(%q, %v) = %q, want %q", tt.text, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestWrapLineFontSizeScalesWidth(t *testing.T) {
	// At font size 2 every rune is two units, so 22 units hold 11 runes.
	got := WrapLine("alpha beta gamma", 22, 2, fixedMeasurer{})
	want := []string{"alpha beta", "gamma"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WrapLine() = %q, want %q", got, want)
	}
}

func TestWrapLineOversizedCharacterKept(t *testing.T) {
	got := WrapLine("aWb", 2, 1, wideMeasurer{})
	want := []string{"a", "W", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WrapLine() = %q, want %q", got, want)
	}
}

func TestWrapLineGraphemeClusters(t *testing.T) {
	// "e" + combining acute is one cluster and must not be split.
	word := "ae\u0301bc"
	got := WrapLine(word, 2, 1, CellMeasurer{})
	want := []string{"ae\u0301", "bc"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WrapLine() = %q, want %q", got, want)
	}
}

func TestWrapLineProperties(t *testing.T) {
	inputs := []string{
		"the quick brown fox jumps over the lazy dog",
		"supercalifragilisticexpialidocious is long",
		"a bb ccc dddd eeeee ffffff ggggggg",
		"x",
		"2024-01-15 10:30:45 ERROR [net] connection reset by peer after 30s",
	}

	for _, text := range inputs {
		for width := 1.0; width <= 20; width++ {
			segs := WrapLine(text, width, 1, fixedMeasurer{})

			for _, seg := range segs {
				w := fixedMeasurer{}.Measure(seg, 1)
				if w > width && utf8.RuneCountInString(seg) > 1 {
					t.Errorf("width %v: segment %q measures %v", width, seg, w)
				}
				if seg == "" {
					t.Errorf("width %v: empty segment for %q", width, text)
				}
			}

			// Removing every space from both sides must give identical text:
			// nothing dropped, nothing duplicated.
			joined := strings.ReplaceAll(strings.Join(segs, ""), " ", "")
			orig := strings.ReplaceAll(text, " ", "")
			if joined != orig {
				t.Errorf("width %v: %q does not reproduce %q", width, segs, text)
			}
		}
	}
}

func TestWrapLineRoundTripAtWordBoundaries(t *testing.T) {
	text := "alpha beta gamma delta epsilon"
	for width := 7.0; width <= 40; width++ {
		segs := WrapLine(text, width, 1, fixedMeasurer{})
		if got := strings.Join(segs, " "); got != text {
			t.Errorf("width %v: joined %q, want %q", width, got, text)
		}
	}
}

func TestLayoutNoWrapIsIdentity(t *testing.T) {
	lines := []source.LogicalLine{
		{Index: 0, Text: "first line that is long"},
		{Index: 4, Text: ""},
		{Index: 7, Text: "  spaced  "},
	}

	got := Layout(lines, Params{MaxWidth: 5, FontSize: 1, Wrap: false}, fixedMeasurer{})
	want := []source.DisplayLine{
		{LogicalIndex: 0, IsFirstSegment: true, Text: "first line that is long"},
		{LogicalIndex: 4, IsFirstSegment: true, Text: ""},
		{LogicalIndex: 7, IsFirstSegment: true, Text: "  spaced  "},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Layout() = %+v, want %+v", got, want)
	}
}

func TestLayoutWrapSegments(t *testing.T) {
	lines := []source.LogicalLine{
		{Index: 3, Text: "alpha beta gamma"},
		{Index: 5, Text: ""},
		{Index: 6, Text: "   "},
		{Index: 9, Text: "ok"},
	}

	got := Layout(lines, Params{MaxWidth: 11, FontSize: 1, Wrap: true}, fixedMeasurer{})
	want := []source.DisplayLine{
		{LogicalIndex: 3, IsFirstSegment: true, Text: "alpha beta"},
		{LogicalIndex: 3, IsFirstSegment: false, Text: "gamma"},
		{LogicalIndex: 5, IsFirstSegment: true, Text: ""},
		{LogicalIndex: 6, IsFirstSegment: true, Text: ""},
		{LogicalIndex: 9, IsFirstSegment: true, Text: "ok"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Layout() = %+v, want %+v", got, want)
	}
}

func TestLayoutSegmentInvariants(t *testing.T) {
	var lines []source.LogicalLine
	for i, text := range []string{"a b c d e f g", "", "hhhhhhhhhhhh", "i j", ""} {
		lines = append(lines, source.LogicalLine{Index: i * 2, Text: text})
	}

	got := Layout(lines, Params{MaxWidth: 3, FontSize: 1, Wrap: true}, fixedMeasurer{})

	firsts := make(map[int]int)
	last := -1
	for i, dl := range got {
		if dl.IsFirstSegment {
			firsts[dl.LogicalIndex]++
			if i > 0 && got[i-1].LogicalIndex == dl.LogicalIndex {
				t.Errorf("row %d: first segment after a continuation", i)
			}
		} else if i == 0 || got[i-1].LogicalIndex != dl.LogicalIndex {
			t.Errorf("row %d: continuation not contiguous", i)
		}
		if dl.LogicalIndex < last {
			t.Errorf("row %d: logical order broken", i)
		}
		last = dl.LogicalIndex
	}
	for _, l := range lines {
		if firsts[l.Index] != 1 {
			t.Errorf("line %d has %d first segments", l.Index, firsts[l.Index])
		}
	}
}

func TestLayoutZeroWidthFallsBackToIdentity(t *testing.T) {
	lines := []source.LogicalLine{{Index: 0, Text: "a b c"}}
	got := Layout(lines, Params{MaxWidth: 0, FontSize: 1, Wrap: true}, fixedMeasurer{})
	if len(got) != 1 || got[0].Text != "a b c" {
		t.Errorf("Layout() = %+v", got)
	}
}
