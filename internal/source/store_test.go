package source

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func texts(lines []LogicalLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestStoreLoad(t *testing.T) {
	s := NewStore()
	got := s.Load("ERROR a\nINFO b\n")

	if want := []string{"ERROR a", "INFO b", ""}; !reflect.DeepEqual(texts(got), want) {
		t.Fatalf("Load = %q, want %q", texts(got), want)
	}
	for i, l := range got {
		if l.Index != i {
			t.Errorf("line %d has index %d", i, l.Index)
		}
	}
	if s.LineCount() != 3 {
		t.Errorf("LineCount = %d", s.LineCount())
	}

	got[0].Text = "changed"
	if line, _ := s.GetLine(0); line.Text != "ERROR a" {
		t.Error("returned lines must not alias the store")
	}
}

func TestStoreGetLines(t *testing.T) {
	s := NewStore()
	s.Load("a\nb\nc")

	if got := texts(s.GetLines(1, 5)); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("GetLines(1, 5) = %q", got)
	}
	if s.GetLines(3, 1) != nil {
		t.Error("GetLines past end should be nil")
	}
	if _, ok := s.GetLine(3); ok {
		t.Error("GetLine past end should fail")
	}
}

func TestStoreLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("one\r\ntwo"), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewStore()
	if err := s.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := texts(s.Lines()); !reflect.DeepEqual(got, []string{"one", "two"}) {
		t.Errorf("lines = %q", got)
	}
	if s.Path() != path {
		t.Errorf("Path = %q", s.Path())
	}

	if err := s.LoadFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected an error")
	}
	if s.LineCount() != 2 || s.Path() != path {
		t.Error("failed load must leave the store unchanged")
	}
}

func TestStoreLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.log")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	s := NewStore()
	if err := s.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := texts(s.Lines()); !reflect.DeepEqual(got, []string{""}) {
		t.Errorf("lines = %q", got)
	}
}

func TestSave(t *testing.T) {
	lines := []DisplayLine{
		{LogicalIndex: 0, IsFirstSegment: true, Text: "alpha beta"},
		{LogicalIndex: 0, IsFirstSegment: false, Text: "gamma"},
		{LogicalIndex: 4, IsFirstSegment: true, Text: ""},
	}
	if got, want := Save(lines, false), "alpha beta\ngamma\n\n"; got != want {
		t.Errorf("Save = %q, want %q", got, want)
	}
	if got, want := Save(lines, true), "1 alpha beta\ngamma\n5 \n"; got != want {
		t.Errorf("Save numbered = %q, want %q", got, want)
	}
	if Save(nil, true) != "" {
		t.Error("empty save should be empty")
	}
}
