package backend

import (
	"fmt"
	"os"

	"github.com/toonvert/toonvert/internal/frame"
)

// Neural is the model-driven backend. This file holds the build-independent
// surface; neural_stub.go and neural_runtime.go supply the per-build
// runtime halves.
//
// Build with the inference runtime half: go build -tags neural
// Or simply build without the "neural" tag for the heuristic fallback.
type Neural struct {
	modelPath string
	probed    bool
}

// NewNeural constructs the neural backend over the model at modelPath.
// The model file is probed but never loaded here.
func NewNeural(modelPath string) *Neural {
	return &Neural{modelPath: modelPath, probed: probeModel(modelPath) == nil}
}

// probeModel checks that the path points at a plausible model file: it
// must exist, be a regular file, and be non-empty.
func probeModel(path string) error {
	if path == "" {
		return fmt.Errorf("%w: no model path configured", ErrModelNotFound)
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrModelNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrModelNotFound, path, err)
	}
	if info.IsDir() || info.Size() == 0 {
		return fmt.Errorf("%w: %s is not a model file", ErrModelNotFound, path)
	}
	return nil
}

func (n *Neural) Name() string { return "neural (" + neuralRuntimeInfo() + ")" }

func (n *Neural) Styles() []string {
	return []string{"cartoon", "anime", "watercolor"}
}

// Available reports whether Stylize can actually produce output: the
// model file must probe as usable and the inference runtime must be
// part of this build.
func (n *Neural) Available() bool { return n.probed && neuralRuntimeLinked() }

func (n *Neural) Stylize(f *frame.Frame, style string) (*frame.Frame, error) {
	return neuralStylize(n, f, style)
}
