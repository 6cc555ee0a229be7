package system

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultWorkers(t *testing.T) {
	if n := DefaultWorkers(); n < 1 {
		t.Errorf("Expected at least one worker, got %d", n)
	}
}

func TestFindLatestScript(t *testing.T) {
	dir := t.TempDir()

	old := filepath.Join(dir, "old.txt")
	if err := os.WriteFile(old, []byte("старый"), 0644); err != nil {
		t.Fatal(err)
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}

	fresh := filepath.Join(dir, "fresh.txt")
	if err := os.WriteFile(fresh, []byte("свежий"), 0644); err != nil {
		t.Fatal(err)
	}
	// Не .txt — должен игнорироваться.
	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("мимо"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := FindLatestScript(dir)
	if err != nil {
		t.Fatalf("FindLatestScript failed: %v", err)
	}
	if got != fresh {
		t.Errorf("Expected %s, got %s", fresh, got)
	}
}

func TestFindLatestScriptEmptyDir(t *testing.T) {
	if _, err := FindLatestScript(t.TempDir()); err == nil {
		t.Error("Expected an error for a directory without scripts")
	}
}

func TestUniquePath(t *testing.T) {
	a := UniquePath(os.TempDir(), ".mp4")
	b := UniquePath(os.TempDir(), ".mp4")
	if a == b {
		t.Error("Two generated paths must differ")
	}
	if !strings.HasSuffix(a, ".mp4") {
		t.Errorf("Expected .mp4 suffix, got %s", a)
	}
}
