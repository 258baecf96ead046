package backend

import (
	"fmt"

	"github.com/toonvert/toonvert/internal/frame"
	"github.com/toonvert/toonvert/internal/style"
)

// Heuristic approximates the model-driven styles with conventional
// filtering. It is the backend every build can serve, and the styles it
// produces are tuned to sit close to what the neural runtime would emit
// for the same names.
type Heuristic struct{}

// NewHeuristic returns the fallback backend.
func NewHeuristic() *Heuristic { return &Heuristic{} }

func (h *Heuristic) Name() string { return "heuristic" }

func (h *Heuristic) Styles() []string {
	return []string{"cartoon", "anime", "watercolor"}
}

func (h *Heuristic) Available() bool { return true }

func (h *Heuristic) Stylize(f *frame.Frame, styleName string) (*frame.Frame, error) {
	switch styleName {
	case "cartoon":
		return h.cartoon(f)
	case "anime":
		return h.anime(f)
	case "watercolor":
		return h.watercolor(f), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedStyle, styleName)
	}
}

// cartoon is a maskless flat-color look: double bilateral pass, a
// saturation lift, posterization, then a gentle kernel sharpen.
func (h *Heuristic) cartoon(f *frame.Frame) (*frame.Frame, error) {
	smooth := style.Smooth(f, style.SmoothParams{
		Radius: 4, ColorSigma: 75, SpaceSigma: 75, Passes: 2,
	})
	enhanced, err := style.Enhance(smooth, style.EnhanceParams{SatScale: 1.3})
	if err != nil {
		return nil, err
	}
	quantized, _ := style.Quantize(enhanced, style.QuantParams{K: 12})

	// No edge methods: the mask passes everything through and only the
	// sharpening step of the compositor runs.
	mask := style.ExtractEdges(f, style.EdgeParams{})
	return style.Compose(quantized, mask, style.SharpenParams{Mode: style.SharpenKernel})
}

// anime leans on heavy smoothing, a strong saturation push and thick
// dark outlines from dilated Canny lines.
func (h *Heuristic) anime(f *frame.Frame) (*frame.Frame, error) {
	smooth := style.Smooth(f, style.SmoothParams{
		Radius: 4, ColorSigma: 60, SpaceSigma: 60, Passes: 3,
	})
	enhanced, err := style.Enhance(smooth, style.EnhanceParams{SatScale: 1.5, ValScale: 1.1})
	if err != nil {
		return nil, err
	}
	quantized, _ := style.Quantize(enhanced, style.QuantParams{K: 16})

	mask := style.ExtractEdges(f, style.EdgeParams{
		Methods: []style.EdgeMethodParams{
			{Method: style.EdgeCanny, Low: 50, High: 150, Dilate: true},
		},
		Fusion: style.FuseAND,
	})
	out, err := style.Compose(quantized, mask, style.SharpenParams{})
	if err != nil {
		return nil, err
	}
	// A light final pass softens the line work against the flat fills.
	return style.Smooth(out, style.SmoothParams{
		Radius: 2, ColorSigma: 50, SpaceSigma: 50, Passes: 1,
	}), nil
}

func (h *Heuristic) watercolor(f *frame.Frame) *frame.Frame {
	return style.Watercolor(f, style.WatercolorParams{
		Smooth:     style.SmoothParams{Radius: 4, ColorSigma: 150, SpaceSigma: 150, Passes: 1},
		OilRadius:  3,
		BlurRadius: 2.0,
		SatBoost:   0.2,
	})
}
