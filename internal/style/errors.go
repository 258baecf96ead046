package style

import (
	"errors"
	"fmt"
)

// Sentinel errors for the pipeline engine. Validation failures are
// detected before any stage runs; stage failures are wrapped in a
// ProcessingError at the engine boundary.
var (
	// ErrUnknownStyle is returned when a style name is not registered.
	ErrUnknownStyle = errors.New("style: unknown style")

	// ErrBatchTooLarge is returned when a batch exceeds MaxBatchItems.
	// The whole call fails before any item is processed.
	ErrBatchTooLarge = errors.New("style: batch exceeds maximum item count")

	// ErrShapeMismatch is returned when the compositor is handed a color
	// frame and an edge mask of different geometry.
	ErrShapeMismatch = errors.New("style: color frame and edge mask dimensions differ")
)

// ProcessingError reports a failure inside a pipeline stage. The message
// stays generic; the underlying cause is attached for diagnostics and
// reachable through errors.Unwrap, never through the message itself.
type ProcessingError struct {
	Style string
	cause error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("style: processing failed for style %q", e.Style)
}

func (e *ProcessingError) Unwrap() error {
	return e.cause
}

// newProcessingError wraps a stage failure for the named style.
func newProcessingError(styleName string, cause error) *ProcessingError {
	return &ProcessingError{Style: styleName, cause: cause}
}
