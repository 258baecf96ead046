package style

import (
	"math"

	"github.com/toonvert/toonvert/internal/frame"
)

// SmoothParams configures the edge-preserving smoothing stage.
type SmoothParams struct {
	// Radius is the neighborhood radius in pixels. Clamped to >= 1.
	Radius int

	// ColorSigma controls how strongly differing colors are excluded from
	// the average. Larger values flatten color at the cost of edge
	// fidelity.
	ColorSigma float64

	// SpaceSigma controls the spatial falloff of neighbor influence.
	SpaceSigma float64

	// Passes is the number of sequential filter applications. Clamped
	// to >= 1.
	Passes int
}

// Smooth applies an edge-preserving bilateral blur to a color frame.
// Each output pixel is a weighted average of its neighborhood where the
// weight is the product of a spatial gaussian and a range gaussian over
// color distance, so strong discontinuities keep their influence local
// while homogeneous regions flatten out. The output has the same
// dimensions and channel count as the input.
func Smooth(f *frame.Frame, p SmoothParams) *frame.Frame {
	radius := p.Radius
	if radius < 1 {
		radius = 1
	}
	passes := p.Passes
	if passes < 1 {
		passes = 1
	}
	colorSigma := p.ColorSigma
	if colorSigma <= 0 {
		colorSigma = 25
	}
	spaceSigma := p.SpaceSigma
	if spaceSigma <= 0 {
		spaceSigma = float64(radius)
	}

	out := f
	for i := 0; i < passes; i++ {
		out = bilateralPass(out, radius, colorSigma, spaceSigma)
	}
	return out
}

func bilateralPass(f *frame.Frame, radius int, colorSigma, spaceSigma float64) *frame.Frame {
	w, h, ch := f.Width, f.Height, f.Channels
	out := frame.New(w, h, ch, f.Space)

	// Spatial weights depend only on the offset, so compute them once.
	size := 2*radius + 1
	spatial := make([]float64, size*size)
	twoSpace := 2 * spaceSigma * spaceSigma
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d2 := float64(dx*dx + dy*dy)
			spatial[(dy+radius)*size+(dx+radius)] = math.Exp(-d2 / twoSpace)
		}
	}

	twoColor := 2 * colorSigma * colorSigma
	acc := make([]float64, ch)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			center := f.Offset(x, y)
			for c := range acc {
				acc[c] = 0
			}
			var weightSum float64

			for dy := -radius; dy <= radius; dy++ {
				ny := clampInt(y+dy, 0, h-1)
				for dx := -radius; dx <= radius; dx++ {
					nx := clampInt(x+dx, 0, w-1)
					neighbor := f.Offset(nx, ny)

					var dist2 float64
					for c := 0; c < ch; c++ {
						d := float64(f.Pix[neighbor+c]) - float64(f.Pix[center+c])
						dist2 += d * d
					}

					wgt := spatial[(dy+radius)*size+(dx+radius)] * math.Exp(-dist2/twoColor)
					for c := 0; c < ch; c++ {
						acc[c] += wgt * float64(f.Pix[neighbor+c])
					}
					weightSum += wgt
				}
			}

			for c := 0; c < ch; c++ {
				out.Pix[center+c] = frame.ClampU8(acc[c] / weightSum)
			}
		}
	}
	return out
}

// clampInt constrains v to [lo, hi]. Used for replicated-border sampling
// in the convolution-style stages.
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
