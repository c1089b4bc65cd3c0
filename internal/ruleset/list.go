// Package ruleset provides an ordered collection whose entries are addressed
// by stable identifiers rather than positions.
package ruleset

import "github.com/google/uuid"

// ID identifies an entry for its whole lifetime. IDs are never reused, so a
// handle kept by an editor cannot silently point at a different entry after a
// removal.
type ID string

// NewID returns a fresh identifier
func NewID() ID {
	return ID(uuid.NewString())
}

// Entry pairs a value with its identifier
type Entry[T any] struct {
	ID    ID
	Value T
}

// List is an insertion-ordered collection of identified values
type List[T any] struct {
	entries []Entry[T]
}

// Add appends v and returns its identifier
func (l *List[T]) Add(v T) ID {
	id := NewID()
	l.entries = append(l.entries, Entry[T]{ID: id, Value: v})
	return id
}

// Remove deletes the entry with id. It reports false if no such entry exists.
func (l *List[T]) Remove(id ID) bool {
	i := l.IndexOf(id)
	if i < 0 {
		return false
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	return true
}

// Update applies fn to the entry with id in place
func (l *List[T]) Update(id ID, fn func(*T)) bool {
	i := l.IndexOf(id)
	if i < 0 {
		return false
	}
	fn(&l.entries[i].Value)
	return true
}

// Get returns the value stored under id
func (l *List[T]) Get(id ID) (T, bool) {
	i := l.IndexOf(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	return l.entries[i].Value, true
}

// At returns the entry at position i in iteration order
func (l *List[T]) At(i int) (Entry[T], bool) {
	if i < 0 || i >= len(l.entries) {
		return Entry[T]{}, false
	}
	return l.entries[i], true
}

// IndexOf returns the current position of id, or -1
func (l *List[T]) IndexOf(id ID) int {
	for i, e := range l.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Len returns the number of entries
func (l *List[T]) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the entries in order
func (l *List[T]) Entries() []Entry[T] {
	out := make([]Entry[T], len(l.entries))
	copy(out, l.entries)
	return out
}

// Values returns a copy of the values in order
func (l *List[T]) Values() []T {
	out := make([]T, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Value
	}
	return out
}
