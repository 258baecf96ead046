package style

import (
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"

	"github.com/toonvert/toonvert/internal/frame"
)

// EdgeMethod selects one of the interchangeable edge detectors.
type EdgeMethod int

const (
	// EdgeAdaptiveMean binarizes a median-blurred grayscale against a
	// local mean threshold. Tolerant of uneven lighting; produces thick,
	// connected strokes but over-segments textured regions.
	EdgeAdaptiveMean EdgeMethod = iota

	// EdgeGradient thresholds the Sobel gradient magnitude. Crisp on
	// strong boundaries, blind to soft ones.
	EdgeGradient

	// EdgeCanny runs the multi-stage gradient detector: gaussian
	// smoothing, Sobel gradients, non-maximum suppression, double
	// threshold with hysteresis. Thin, connected lines.
	EdgeCanny
)

// FusionRule combines the masks produced by multiple edge methods.
type FusionRule int

const (
	// FuseAND keeps a pixel only where every method keeps it. Fusing
	// complementary detectors this way suppresses noise-driven false
	// edges while the union of their line work stays closed.
	FuseAND FusionRule = iota

	// FuseOR keeps a pixel where any method keeps it, for styles that
	// want bold, heavy line work.
	FuseOR
)

// EdgeMethodParams parameterizes a single detector instance.
type EdgeMethodParams struct {
	Method EdgeMethod

	// MedianSize is the prefilter window for EdgeAdaptiveMean.
	MedianSize int
	// Block is the local-mean window for EdgeAdaptiveMean.
	Block int
	// C is subtracted from the local mean before comparison.
	C float64

	// Threshold is the magnitude cutoff for EdgeGradient, relative to
	// the maximum gradient in the image (0-255).
	Threshold uint8

	// Low and High are the hysteresis thresholds for EdgeCanny (0-255).
	Low, High uint8
	// Dilate thickens Canny's one-pixel lines before inversion.
	Dilate bool
}

// EdgeParams configures the edge extraction stage.
type EdgeParams struct {
	Methods []EdgeMethodParams
	Fusion  FusionRule

	// CloseRadius is the radius of the morphological close applied to
	// the fused mask to remove speckle. 0 disables it.
	CloseRadius int
}

// ExtractEdges produces a binary edge mask from a color frame. The mask is
// a single-channel frame of the same dimensions whose values are exactly 0
// (line: the compositor forces these pixels black) or 255 (keep color).
// With no methods configured the mask is all 255, which turns the
// compositor into a pass-through.
func ExtractEdges(f *frame.Frame, p EdgeParams) *frame.Frame {
	gray := f.ToGray()

	if len(p.Methods) == 0 {
		mask := frame.NewGray(f.Width, f.Height)
		for i := range mask.Pix {
			mask.Pix[i] = 255
		}
		return mask
	}

	fused := edgeMethodMask(gray, p.Methods[0])
	for _, m := range p.Methods[1:] {
		next := edgeMethodMask(gray, m)
		for i := range fused.Pix {
			if p.Fusion == FuseAND {
				if next.Pix[i] == 0 {
					fused.Pix[i] = 0
				}
			} else {
				if next.Pix[i] == 255 {
					fused.Pix[i] = 255
				}
			}
		}
	}

	if p.CloseRadius > 0 {
		fused = closeMask(fused, p.CloseRadius)
	}
	return fused
}

func edgeMethodMask(gray *frame.Frame, m EdgeMethodParams) *frame.Frame {
	switch m.Method {
	case EdgeGradient:
		return gradientMask(gray, m.Threshold)
	case EdgeCanny:
		return cannyMask(gray, m.Low, m.High, m.Dilate)
	default:
		return adaptiveMeanMask(gray, m.MedianSize, m.Block, m.C)
	}
}

// adaptiveMeanMask median-blurs the grayscale and thresholds each pixel
// against the mean of its local block minus a constant. Pixels darker than
// their neighborhood become lines. The local means come from an integral
// image so the block size does not affect cost.
func adaptiveMeanMask(gray *frame.Frame, medianSize, block int, c float64) *frame.Frame {
	if medianSize > 1 {
		gray = medianBlur(gray, medianSize)
	}
	if block < 3 {
		block = 9
	}

	w, h := gray.Width, gray.Height
	integ := make([]float64, (w+1)*(h+1))
	for y := 1; y <= h; y++ {
		rowSum := 0.0
		for x := 1; x <= w; x++ {
			rowSum += float64(gray.Pix[(y-1)*w+(x-1)])
			integ[y*(w+1)+x] = integ[(y-1)*(w+1)+x] + rowSum
		}
	}

	mask := frame.NewGray(w, h)
	half := block / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0 := clampInt(x-half, 0, w-1)
			x1 := clampInt(x+half, 0, w-1)
			y0 := clampInt(y-half, 0, h-1)
			y1 := clampInt(y+half, 0, h-1)
			area := float64((x1 - x0 + 1) * (y1 - y0 + 1))
			sum := integ[(y1+1)*(w+1)+(x1+1)] - integ[y0*(w+1)+(x1+1)] -
				integ[(y1+1)*(w+1)+x0] + integ[y0*(w+1)+x0]
			if float64(gray.Pix[y*w+x]) > sum/area-c {
				mask.Pix[y*w+x] = 255
			}
		}
	}
	return mask
}

// gradientMask thresholds the Sobel gradient magnitude, normalized so the
// strongest gradient in the image maps to 255. Pixels above the threshold
// become lines (0 in the mask).
func gradientMask(gray *frame.Frame, threshold uint8) *frame.Frame {
	w, h := gray.Width, gray.Height
	mag := sobelMagnitude(gray)

	maxMag := 0.0
	for _, v := range mag {
		if v > maxMag {
			maxMag = v
		}
	}

	mask := frame.NewGray(w, h)
	if maxMag == 0 {
		// Flat image: no gradients, keep everything.
		for i := range mask.Pix {
			mask.Pix[i] = 255
		}
		return mask
	}

	cutoff := float64(threshold) / 255.0 * maxMag
	for i, v := range mag {
		if v < cutoff {
			mask.Pix[i] = 255
		}
	}
	return mask
}

// cannyMask runs the canonical multi-stage detector on the grayscale:
// gaussian blur, Sobel gradients, non-maximum suppression to thin ridges
// to one pixel, then double threshold with hysteresis so weak edges
// survive only when connected to strong ones. The result is optionally
// dilated to thicken the lines, then inverted into mask semantics
// (line = 0).
func cannyMask(gray *frame.Frame, low, high uint8, dilate bool) *frame.Frame {
	w, h := gray.Width, gray.Height

	blurred := frame.FromImage(blur.Gaussian(gray.ToNRGBA(), 1.4)).ToGray()

	gradX := make([]float64, w*h)
	gradY := make([]float64, w*h)
	mag := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx, gy := sobelAt(blurred, x, y)
			i := y*w + x
			gradX[i] = gx
			gradY[i] = gy
			mag[i] = math.Sqrt(gx*gx + gy*gy)
		}
	}

	// Non-maximum suppression: keep only ridge pixels that are local
	// maxima along their gradient direction.
	suppressed := make([]float64, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			angle := math.Atan2(gradY[i], gradX[i])
			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1, n2 = mag[i-1], mag[i+1]
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1, n2 = mag[(y-1)*w+x+1], mag[(y+1)*w+x-1]
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1, n2 = mag[(y-1)*w+x], mag[(y+1)*w+x]
			default:
				n1, n2 = mag[(y-1)*w+x-1], mag[(y+1)*w+x+1]
			}
			if mag[i] >= n1 && mag[i] >= n2 {
				suppressed[i] = mag[i]
			}
		}
	}

	lowT := float64(low)
	highT := float64(high)
	edges := frame.NewGray(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			v := suppressed[i]
			if v >= highT {
				edges.Pix[i] = 255
				continue
			}
			if v < lowT {
				continue
			}
			// Weak edge: kept only next to a strong one.
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					ny := clampInt(y+dy, 0, h-1)
					nx := clampInt(x+dx, 0, w-1)
					if suppressed[ny*w+nx] >= highT {
						edges.Pix[i] = 255
					}
				}
			}
		}
	}

	if dilate {
		edges = dilateMask(edges, 1)
	}

	// Invert into mask semantics: detected edge pixels become lines.
	for i := range edges.Pix {
		edges.Pix[i] = 255 - edges.Pix[i]
	}
	return edges
}

// sobelMagnitude computes the gradient magnitude of every pixel with the
// fixed 3x3 Sobel kernel pair.
func sobelMagnitude(gray *frame.Frame) []float64 {
	w, h := gray.Width, gray.Height
	mag := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx, gy := sobelAt(gray, x, y)
			mag[y*w+x] = math.Sqrt(gx*gx + gy*gy)
		}
	}
	return mag
}

func sobelAt(gray *frame.Frame, x, y int) (gx, gy float64) {
	w, h := gray.Width, gray.Height
	at := func(dx, dy int) float64 {
		nx := clampInt(x+dx, 0, w-1)
		ny := clampInt(y+dy, 0, h-1)
		return float64(gray.Pix[ny*w+nx])
	}
	gx = -at(-1, -1) + at(1, -1) - 2*at(-1, 0) + 2*at(1, 0) - at(-1, 1) + at(1, 1)
	gy = -at(-1, -1) - 2*at(0, -1) - at(1, -1) + at(-1, 1) + 2*at(0, 1) + at(1, 1)
	return gx, gy
}

// medianBlur applies a median filter to a grayscale frame.
func medianBlur(gray *frame.Frame, size int) *frame.Frame {
	return frame.FromImage(effect.Median(gray.ToNRGBA(), float64(size))).ToGray()
}

// dilateMask grows the 255 regions of a binary mask by the given radius.
func dilateMask(mask *frame.Frame, radius int) *frame.Frame {
	return binaryMorph(mask, radius, 255)
}

// erodeMask shrinks the 255 regions of a binary mask by the given radius.
func erodeMask(mask *frame.Frame, radius int) *frame.Frame {
	return binaryMorph(mask, radius, 0)
}

// closeMask dilates then erodes, filling pinholes and joining speckled
// line fragments without changing region sizes overall.
func closeMask(mask *frame.Frame, radius int) *frame.Frame {
	return erodeMask(dilateMask(mask, radius), radius)
}

// binaryMorph sets a pixel to hit whenever any neighbor within the square
// structuring element equals hit, which yields dilation for hit=255 and
// erosion for hit=0 on a 0/255 mask.
func binaryMorph(mask *frame.Frame, radius int, hit uint8) *frame.Frame {
	w, h := mask.Width, mask.Height
	out := frame.NewGray(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := mask.Pix[y*w+x]
			for dy := -radius; dy <= radius && v != hit; dy++ {
				for dx := -radius; dx <= radius && v != hit; dx++ {
					ny := clampInt(y+dy, 0, h-1)
					nx := clampInt(x+dx, 0, w-1)
					if mask.Pix[ny*w+nx] == hit {
						v = hit
					}
				}
			}
			out.Pix[y*w+x] = v
		}
	}
	return out
}
