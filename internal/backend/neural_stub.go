//go:build !neural

// Stub half of the neural backend for builds without the inference
// runtime. Every call reports the runtime as missing.

package backend

import (
	"fmt"

	"github.com/toonvert/toonvert/internal/frame"
)

func neuralRuntimeLinked() bool { return false }

func neuralRuntimeInfo() string { return "stub, runtime not linked" }

func neuralStylize(_ *Neural, _ *frame.Frame, style string) (*frame.Frame, error) {
	return nil, fmt.Errorf("%w: %q requires the neural runtime, build with the 'neural' tag",
		ErrBackendUnavailable, style)
}
