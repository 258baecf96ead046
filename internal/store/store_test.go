package store

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/toonvert/toonvert/internal/frame"
)

func TestSave_NamesAndExtensions(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	jpg, err := s.Save([]byte("fake-jpeg"), "jpeg")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(jpg.Name, ".jpg") {
		t.Errorf("jpeg name = %q", jpg.Name)
	}
	if _, err := os.Stat(jpg.Path); err != nil {
		t.Errorf("saved file missing: %v", err)
	}

	png, err := s.Save([]byte("fake-png"), "png")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(png.Name, ".png") {
		t.Errorf("png name = %q", png.Name)
	}
	if png.Name == jpg.Name {
		t.Error("two saves produced the same name")
	}
}

func TestSaveThumbnail(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e, err := s.Save([]byte("bytes"), "jpeg")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	f := frame.NewRGB(400, 200)
	if err := s.SaveThumbnail(e, f); err != nil {
		t.Fatalf("SaveThumbnail: %v", err)
	}
	if e.ThumbPath == "" {
		t.Fatal("ThumbPath not set")
	}
	info, err := os.Stat(e.ThumbPath)
	if err != nil {
		t.Fatalf("thumbnail missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("thumbnail is empty")
	}
}

func TestOpen_RejectsTraversal(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, name := range []string{"../etc/passwd", "a/b.jpg", "..", "."} {
		if _, err := s.Open(name); err == nil {
			t.Errorf("Open(%q) accepted", name)
		}
	}
}

func TestCleanup_RemovesOnlyOldFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	old, err := s.Save([]byte("old"), "jpeg")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	fresh, err := s.Save([]byte("fresh"), "jpeg")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	stale := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(old.Path, stale, stale); err != nil {
		t.Fatal(err)
	}

	removed, err := s.Cleanup(24 * time.Hour)
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, err := os.Stat(old.Path); !os.IsNotExist(err) {
		t.Error("old file survived cleanup")
	}
	if _, err := os.Stat(fresh.Path); err != nil {
		t.Error("fresh file removed")
	}
}

func TestStats(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := s.Save([]byte("abcd"), "jpeg"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save([]byte("efghij"), "png"); err != nil {
		t.Fatal(err)
	}

	count, bytes, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if bytes != 10 {
		t.Errorf("bytes = %d, want 10", bytes)
	}
}
