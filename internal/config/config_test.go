package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/toonvert/toonvert/internal/style"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if cfg.MaxOutputWidth != 1920 || cfg.MaxOutputHeight != 1080 {
		t.Errorf("output box = %dx%d", cfg.MaxOutputWidth, cfg.MaxOutputHeight)
	}
	if cfg.JPEGQuality != 95 {
		t.Errorf("JPEGQuality = %d", cfg.JPEGQuality)
	}
	if cfg.RetentionAge != 24*time.Hour {
		t.Errorf("RetentionAge = %v", cfg.RetentionAge)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TOONVERT_ADDR", ":9999")
	t.Setenv("TOONVERT_MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("TOONVERT_RETENTION", "2h30m")
	t.Setenv("TOONVERT_DEV", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.MaxUploadBytes != 1<<20 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if cfg.RetentionAge != 2*time.Hour+30*time.Minute {
		t.Errorf("RetentionAge = %v", cfg.RetentionAge)
	}
	if !cfg.Development {
		t.Error("Development not set")
	}
}

func TestLoad_MalformedValue(t *testing.T) {
	t.Setenv("TOONVERT_JPEG_QUALITY", "best")
	if _, err := Load(); err == nil {
		t.Fatal("malformed int accepted")
	}

	t.Setenv("TOONVERT_JPEG_QUALITY", "150")
	if _, err := Load(); err == nil {
		t.Fatal("out-of-range quality accepted")
	}
}

func TestApplyTuning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	doc := `
styles:
  classic:
    clusters: 10
    saturation: 1.1
  ultra:
    smoothing_passes: 2
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	reg := style.NewRegistry()
	if err := ApplyTuning(reg, path); err != nil {
		t.Fatalf("ApplyTuning: %v", err)
	}

	classic, _ := reg.Resolve("classic")
	if classic.Quant.K != 10 {
		t.Errorf("classic clusters = %d, want 10", classic.Quant.K)
	}
	if classic.Enhance.SatScale != 1.1 {
		t.Errorf("classic saturation = %v, want 1.1", classic.Enhance.SatScale)
	}
	// Untouched fields keep their built-in values.
	if classic.Smooth.Radius != 4 {
		t.Errorf("classic smooth radius = %d, want 4", classic.Smooth.Radius)
	}

	ultra, _ := reg.Resolve("ultra")
	if ultra.Smooth.Passes != 2 {
		t.Errorf("ultra passes = %d, want 2", ultra.Smooth.Passes)
	}
}

func TestApplyTuning_UnknownStyle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("styles:\n  nosuch:\n    clusters: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := ApplyTuning(style.NewRegistry(), path)
	if !errors.Is(err, style.ErrUnknownStyle) {
		t.Fatalf("err = %v, want ErrUnknownStyle", err)
	}
}
