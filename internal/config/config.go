// Package config loads service settings from the environment, with an
// optional YAML file for per-style parameter tuning.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every tunable of the service. Zero values never appear
// after Load; every field carries its default.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// OutputDir receives converted images and thumbnails.
	OutputDir string

	// ModelPath points at the neural style model, if any.
	ModelPath string

	// MaxUploadBytes caps the encoded size of a single upload.
	MaxUploadBytes int64

	// MaxOutputWidth and MaxOutputHeight bound converted images; larger
	// inputs are scaled down to fit, never up.
	MaxOutputWidth  int
	MaxOutputHeight int

	// JPEGQuality for encoded results.
	JPEGQuality int

	// RetentionAge is how long stored outputs survive before cleanup.
	RetentionAge time.Duration

	// Workers bounds batch conversion concurrency. 0 means one worker
	// per CPU.
	Workers int

	// StyleTuningPath optionally points at a YAML file overriding
	// built-in style parameters.
	StyleTuningPath string

	// Development switches logging to human-readable debug output.
	Development bool

	// LogFile receives rotated JSON logs when non-empty.
	LogFile string
}

// Load reads configuration from the environment. Unset variables take
// defaults; malformed values are errors rather than silent fallbacks.
func Load() (Config, error) {
	cfg := Config{
		Addr:            envStr("TOONVERT_ADDR", ":8080"),
		OutputDir:       envStr("TOONVERT_OUTPUT_DIR", "outputs"),
		ModelPath:       envStr("TOONVERT_MODEL_PATH", ""),
		StyleTuningPath: envStr("TOONVERT_STYLE_TUNING", ""),
		Development:     envStr("TOONVERT_DEV", "") == "true",
		LogFile:         envStr("TOONVERT_LOG_FILE", ""),
	}

	var err error
	if cfg.MaxUploadBytes, err = envInt64("TOONVERT_MAX_UPLOAD_BYTES", 10<<20); err != nil {
		return Config{}, err
	}
	if cfg.MaxOutputWidth, err = envInt("TOONVERT_MAX_OUTPUT_WIDTH", 1920); err != nil {
		return Config{}, err
	}
	if cfg.MaxOutputHeight, err = envInt("TOONVERT_MAX_OUTPUT_HEIGHT", 1080); err != nil {
		return Config{}, err
	}
	if cfg.JPEGQuality, err = envInt("TOONVERT_JPEG_QUALITY", 95); err != nil {
		return Config{}, err
	}
	if cfg.RetentionAge, err = envDuration("TOONVERT_RETENTION", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.Workers, err = envInt("TOONVERT_WORKERS", 0); err != nil {
		return Config{}, err
	}

	if cfg.JPEGQuality < 1 || cfg.JPEGQuality > 100 {
		return Config{}, fmt.Errorf("TOONVERT_JPEG_QUALITY must be in [1,100], got %d", cfg.JPEGQuality)
	}
	return cfg, nil
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envInt64(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
