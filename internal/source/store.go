package source

import (
	"bytes"
	"fmt"

	"github.com/TimelordUK/lview/internal/index"
	lviewio "github.com/TimelordUK/lview/internal/io"
)

// Store owns the logical lines of the loaded file. Lines are never mutated
// after a load; a new load replaces them wholesale.
type Store struct {
	lines []LogicalLine
	path  string
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Load replaces the store content with content split into logical lines
func (s *Store) Load(content string) []LogicalLine {
	// A bytes.Reader never fails a ReadAt inside its own size.
	lines, _ := split(bytes.NewReader([]byte(content)))
	s.lines = lines
	s.path = ""
	return Clone(lines)
}

// LoadFile reads path and replaces the store content. On failure the store
// keeps whatever it held before.
func (s *Store) LoadFile(path string) error {
	file, err := lviewio.OpenMapped(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	lines, err := split(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	s.lines = lines
	s.path = path
	return nil
}

func split(src index.ByteSource) ([]LogicalLine, error) {
	lineIndex, err := index.BuildLineIndex(src)
	if err != nil {
		return nil, err
	}

	texts, err := lineIndex.Lines(0, lineIndex.LineCount())
	if err != nil {
		return nil, err
	}

	lines := make([]LogicalLine, len(texts))
	for i, text := range texts {
		lines[i] = LogicalLine{Index: i, Text: text}
	}
	return lines, nil
}

// Path returns the path of the last successfully loaded file
func (s *Store) Path() string {
	return s.path
}

// LineCount returns total number of lines
func (s *Store) LineCount() int {
	return len(s.lines)
}

// GetLine returns line at index
func (s *Store) GetLine(idx int) (LogicalLine, bool) {
	if idx < 0 || idx >= len(s.lines) {
		return LogicalLine{}, false
	}
	return s.lines[idx], true
}

// GetLines returns a range of lines
func (s *Store) GetLines(start, count int) []LogicalLine {
	return rangeOf(s.lines, start, count)
}

// Lines returns a copy of every logical line
func (s *Store) Lines() []LogicalLine {
	return Clone(s.lines)
}
