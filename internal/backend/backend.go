// Package backend hosts the neural-style conversion path and its
// fallback. A Backend turns a frame into one of the model-driven styles;
// when no model runtime is linked into the binary, Select falls back to a
// heuristic backend that approximates the same styles with conventional
// filtering.
package backend

import (
	"errors"

	"go.uber.org/zap"

	"github.com/toonvert/toonvert/internal/frame"
)

var (
	// ErrModelNotFound marks a model path that does not point at a
	// readable model file.
	ErrModelNotFound = errors.New("model not found")

	// ErrBackendUnavailable marks a conversion attempt on a backend whose
	// runtime is not linked into this build.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrUnsupportedStyle marks a style the backend does not serve.
	ErrUnsupportedStyle = errors.New("unsupported backend style")
)

// Backend converts frames into model-driven styles.
type Backend interface {
	// Name identifies the backend in logs and the stats endpoint.
	Name() string
	// Styles lists the style names this backend serves.
	Styles() []string
	// Available reports whether Stylize can actually produce output.
	Available() bool
	// Stylize renders f in the named style.
	Stylize(f *frame.Frame, style string) (*frame.Frame, error)
}

// Select returns the backend to serve model styles with: the neural
// backend when its runtime probes as usable, otherwise the heuristic
// fallback. The fallback serves the same style names, so callers never
// see the difference in the style listing.
func Select(modelPath string, log *zap.Logger) Backend {
	n := NewNeural(modelPath)
	if n.Available() {
		log.Info("neural backend selected", zap.String("model", modelPath))
		return n
	}
	log.Warn("neural runtime not usable, falling back to heuristic backend",
		zap.String("model", modelPath))
	return NewHeuristic()
}
