// Package io reads log files through a memory mapping and writes exports
// atomically.
package io

import (
	"golang.org/x/exp/mmap"
)

// MappedFile is a read-only memory mapping of a whole file
type MappedFile struct {
	reader *mmap.ReaderAt
}

// OpenMapped maps the file at path
func OpenMapped(path string) (*MappedFile, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	return &MappedFile{reader: reader}, nil
}

// ReadAt reads len(p) bytes at offset
func (m *MappedFile) ReadAt(p []byte, off int64) (int, error) {
	return m.reader.ReadAt(p, off)
}

// Size returns the mapped length
func (m *MappedFile) Size() int64 {
	return int64(m.reader.Len())
}

// Close unmaps the file
func (m *MappedFile) Close() error {
	return m.reader.Close()
}
