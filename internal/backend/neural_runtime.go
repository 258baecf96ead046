//go:build neural

// Runtime half of the neural backend.
//
// The ONNX Runtime session bindings are not integrated yet, so a
// "neural"-tagged build still reports the runtime as unusable and
// Select falls back to the heuristic backend. When the bindings land,
// flip neuralRuntimeLinked to true and open the session on
// n.modelPath inside neuralStylize.
//
// TODO: integrate github.com/yalue/onnxruntime_go and load n.modelPath
// into a cached session.

package backend

import (
	"fmt"

	"github.com/toonvert/toonvert/internal/frame"
)

func neuralRuntimeLinked() bool { return false }

func neuralRuntimeInfo() string { return "runtime tag set, inference bindings pending" }

func neuralStylize(_ *Neural, _ *frame.Frame, style string) (*frame.Frame, error) {
	return nil, fmt.Errorf("%w: %q: inference bindings are not integrated in this build",
		ErrBackendUnavailable, style)
}
