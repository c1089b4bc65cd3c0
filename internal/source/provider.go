package source

// LogicalLine is one line of the loaded file as split on line terminators.
type LogicalLine struct {
	Index int    // 0-based line number in the original file
	Text  string // content without the terminator
}

// DisplayLine is one rendered row. Wrapping may split a logical line into
// several contiguous display lines, exactly one of which is the first segment.
type DisplayLine struct {
	LogicalIndex   int
	IsFirstSegment bool
	Text           string
}

// LineProvider is the core abstraction for accessing logical lines.
// The store and the filtered working set both implement it.
type LineProvider interface {
	// LineCount returns total number of lines
	LineCount() int

	// GetLine returns line at index (0-based)
	GetLine(index int) (LogicalLine, bool)

	// GetLines returns a range of lines
	GetLines(start, count int) []LogicalLine
}

// Clone returns a value copy of lines.
func Clone(lines []LogicalLine) []LogicalLine {
	if lines == nil {
		return nil
	}
	out := make([]LogicalLine, len(lines))
	copy(out, lines)
	return out
}

func rangeOf(lines []LogicalLine, start, count int) []LogicalLine {
	if start < 0 {
		start = 0
	}
	if count <= 0 || start >= len(lines) {
		return nil
	}
	end := start + count
	if end > len(lines) {
		end = len(lines)
	}
	return Clone(lines[start:end])
}
