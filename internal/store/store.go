// Package store persists converted images on disk under random names,
// with thumbnails and an age-based cleanup sweep so the output directory
// never grows without bound.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/toonvert/toonvert/internal/frame"
)

const (
	thumbMaxSize = 256
	thumbQuality = 85
	thumbSuffix  = "_thumb.jpg"
)

// Store writes results into a single flat directory. File names are
// freshly generated UUIDs, so concurrent saves never collide.
type Store struct {
	dir string
}

// Entry describes one saved result.
type Entry struct {
	// Name is the file name within the store directory.
	Name string
	// Path is the full on-disk path.
	Path string
	// ThumbPath is the thumbnail path, empty until SaveThumbnail runs.
	ThumbPath string
}

// New opens a store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string { return s.dir }

// Save writes encoded image bytes under a fresh UUID name with the
// extension matching format ("jpeg" or "png").
func (s *Store) Save(data []byte, format string) (*Entry, error) {
	ext := ".jpg"
	if strings.EqualFold(format, "png") {
		ext = ".png"
	}
	name := uuid.New().String() + ext
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("save %s: %w", name, err)
	}
	return &Entry{Name: name, Path: path}, nil
}

// SaveThumbnail renders a bounded JPEG thumbnail of f next to the entry
// and records its path on the entry.
func (s *Store) SaveThumbnail(e *Entry, f *frame.Frame) error {
	thumb := imaging.Fit(f.ToNRGBA(), thumbMaxSize, thumbMaxSize, imaging.Lanczos)
	base := strings.TrimSuffix(e.Name, filepath.Ext(e.Name))
	path := filepath.Join(s.dir, base+thumbSuffix)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("thumbnail %s: %w", e.Name, err)
	}
	defer out.Close()
	if err := imaging.Encode(out, thumb, imaging.JPEG, imaging.JPEGQuality(thumbQuality)); err != nil {
		return fmt.Errorf("thumbnail %s: %w", e.Name, err)
	}
	e.ThumbPath = path
	return nil
}

// Open returns the on-disk path for a stored name, rejecting anything
// that would escape the store directory.
func (s *Store) Open(name string) (string, error) {
	if name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid stored name %q", name)
	}
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}

// Cleanup removes stored files older than maxAge, returning how many
// were deleted. Files that vanish mid-sweep are not errors.
func (s *Store) Cleanup(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("cleanup: %w", err)
	}
	cutoff := time.Now().Add(-maxAge)

	removed := 0
	for _, de := range entries {
		if de.IsDir() {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, de.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}

// Stats reports how many files the store holds and their combined size.
func (s *Store) Stats() (count int, bytes int64, err error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, 0, fmt.Errorf("stats: %w", err)
	}
	for _, de := range entries {
		if de.IsDir() {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		count++
		bytes += info.Size()
	}
	return count, bytes, nil
}
