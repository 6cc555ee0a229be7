package script

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	raw := "Stop scrolling.\n\n  This AI tool is insane.  \n\t\nDone.\n"
	lines, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	expected := []string{"Stop scrolling.", "This AI tool is insane.", "Done."}
	if len(lines) != len(expected) {
		t.Fatalf("Expected %d lines, got %d: %v", len(expected), len(lines), lines)
	}
	for i, want := range expected {
		if lines[i] != want {
			t.Errorf("Line %d: expected %q, got %q", i, want, lines[i])
		}
	}
}

func TestParseEmpty(t *testing.T) {
	for _, raw := range []string{"", "\n\n\n", "   \n\t\n  "} {
		_, err := Parse(raw)
		if !errors.Is(err, ErrEmptyScript) {
			t.Errorf("Parse(%q): expected ErrEmptyScript, got %v", raw, err)
		}
	}
}

func TestStringSource(t *testing.T) {
	src, err := NewStringSource("one\ntwo\nthree")
	if err != nil {
		t.Fatalf("NewStringSource failed: %v", err)
	}
	if src.CutCount() != 3 {
		t.Errorf("Expected 3 cuts, got %d", src.CutCount())
	}
	text, err := src.Cut(1)
	if err != nil || text != "two" {
		t.Errorf("Cut(1): expected %q, got %q (err %v)", "two", text, err)
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.txt")
	if err := os.WriteFile(path, []byte("first cut\nsecond cut\n"), 0644); err != nil {
		t.Fatal(err)
	}

	src, err := NewFileSource(path)
	if err != nil {
		t.Fatalf("NewFileSource failed: %v", err)
	}
	if src.CutCount() != 2 {
		t.Errorf("Expected 2 cuts, got %d", src.CutCount())
	}
	if src.Path() != path {
		t.Errorf("Expected path %q, got %q", path, src.Path())
	}
}
