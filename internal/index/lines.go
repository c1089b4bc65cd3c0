package index

import (
	"bytes"
)

// ByteSource is random-access content with a known size. Both a memory-mapped
// file and a *bytes.Reader satisfy it.
type ByteSource interface {
	ReadAt(p []byte, off int64) (int, error)
	Size() int64
}

const chunkSize = 64 * 1024

// LineIndex stores the byte offset where each line starts
type LineIndex struct {
	offsets []int64
	src     ByteSource
}

// BuildLineIndex scans src in chunks and records every line start.
// A source with N newlines always yields N+1 lines, so content ending in a
// newline has a trailing empty line.
func BuildLineIndex(src ByteSource) (*LineIndex, error) {
	size := src.Size()

	// Estimate initial capacity (assume ~100 bytes per line)
	offsets := make([]int64, 1, size/100+1)

	buf := make([]byte, chunkSize)
	for pos := int64(0); pos < size; {
		want := int64(chunkSize)
		if pos+want > size {
			want = size - pos
		}

		n, err := src.ReadAt(buf[:want], pos)
		if int64(n) < want && err != nil {
			return nil, err
		}

		chunk := buf[:n]
		for base := 0; ; {
			i := bytes.IndexByte(chunk[base:], '\n')
			if i < 0 {
				break
			}
			base += i + 1
			offsets = append(offsets, pos+int64(base))
		}
		pos += int64(n)
	}

	return &LineIndex{offsets: offsets, src: src}, nil
}

// LineCount returns the total number of lines
func (idx *LineIndex) LineCount() int {
	return len(idx.offsets)
}

// Line returns line n (0-based) without its terminator. A "\r\n" terminator
// is removed as a whole; a lone "\r" elsewhere is content.
func (idx *LineIndex) Line(n int) (string, error) {
	if n < 0 || n >= len(idx.offsets) {
		return "", nil
	}

	start := idx.offsets[n]
	end := idx.src.Size()
	terminated := n+1 < len(idx.offsets)
	if terminated {
		end = idx.offsets[n+1] - 1
	}
	if start >= end {
		return "", nil
	}

	content := make([]byte, end-start)
	read, err := idx.src.ReadAt(content, start)
	if read < len(content) && err != nil {
		return "", err
	}

	if terminated && content[len(content)-1] == '\r' {
		content = content[:len(content)-1]
	}
	return string(content), nil
}

// Lines returns count lines from start, clamped to the index
func (idx *LineIndex) Lines(start, count int) ([]string, error) {
	if start < 0 {
		start = 0
	}
	if start >= len(idx.offsets) {
		return nil, nil
	}
	if start+count > len(idx.offsets) {
		count = len(idx.offsets) - start
	}

	lines := make([]string, count)
	for i := range lines {
		line, err := idx.Line(start + i)
		if err != nil {
			return nil, err
		}
		lines[i] = line
	}
	return lines, nil
}
