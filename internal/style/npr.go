package style

import (
	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"

	"github.com/toonvert/toonvert/internal/frame"
)

// SketchParams configures the pencil sketch stylizer.
type SketchParams struct {
	// Color selects the colorized variant. Grayscale mode returns a
	// single-channel frame; color mode a three-channel one. The channel
	// count difference is part of the contract, not an implementation
	// detail.
	Color bool

	// BlurRadius is the gaussian radius of the inverted-blur pass that
	// drives the dodge. Larger values produce softer strokes.
	BlurRadius float64

	// Smooth is the detail-preserving pass applied before sketching.
	Smooth SmoothParams
}

// PencilSketch renders the frame as a pencil drawing. A light
// edge-preserving smoothing pass strips sensor noise, then the sketch is
// generated in the gradient domain by color-dodging the grayscale against
// a blurred copy of its inverse: flat regions divide out to near-white
// while intensity ramps survive as strokes. Color mode re-blends the
// sketch luminance with the original hue and saturation.
func PencilSketch(f *frame.Frame, p SketchParams) (*frame.Frame, error) {
	radius := p.BlurRadius
	if radius <= 0 {
		radius = 8
	}

	smoothed := Smooth(f, p.Smooth)
	gray := smoothed.ToGray()

	inverted := frame.NewGray(gray.Width, gray.Height)
	for i, v := range gray.Pix {
		inverted.Pix[i] = 255 - v
	}
	blurred := frame.FromImage(blur.Gaussian(inverted.ToNRGBA(), radius)).ToGray()

	sketch := frame.NewGray(gray.Width, gray.Height)
	for i := range gray.Pix {
		sketch.Pix[i] = dodge(gray.Pix[i], blurred.Pix[i])
	}

	if !p.Color {
		return sketch, nil
	}

	// Colorized variant: keep the original hue/saturation, replace the
	// value channel with the sketch luminance.
	hsv, err := f.ToHSV()
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(hsv.Pix); i += 3 {
		hsv.Pix[i+2] = sketch.Pix[i/3]
	}
	return hsv.FromHSV()
}

// dodge brightens base by the inverse of mask, saturating at white.
func dodge(base, mask uint8) uint8 {
	if mask == 255 {
		return 255
	}
	v := int(base) * 255 / (255 - int(mask))
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// OilParams configures the oil painting stylizer.
type OilParams struct {
	// Radius is the brush-stroke scale of the flattening filter.
	// Clamped to >= 1.
	Radius int
}

// OilPainting applies an anisotropic, edge-aware flattening filter
// directly to the source frame. Each pixel takes the mean color of
// whichever of its four overlapping quadrant windows has the lowest
// luminance variance, so brush-stroke-scale regions homogenize while
// large-scale contours, which always split a quadrant, stay put. There is
// no explicit quantization stage; the variance selection is what produces
// the flat paint regions.
func OilPainting(f *frame.Frame, p OilParams) *frame.Frame {
	radius := p.Radius
	if radius < 1 {
		radius = 3
	}

	w, h := f.Width, f.Height
	gray := f.ToGray()
	out := frame.NewRGB(w, h)

	// The four quadrants around (x,y), each (radius+1)^2 pixels.
	quadrants := [4][2]int{{-radius, -radius}, {0, -radius}, {-radius, 0}, {0, 0}}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			bestVar := -1.0
			var bestR, bestG, bestB float64

			for _, q := range quadrants {
				var sum, sumSq float64
				var r, g, b float64
				count := 0
				for dy := q[1]; dy <= q[1]+radius; dy++ {
					ny := clampInt(y+dy, 0, h-1)
					for dx := q[0]; dx <= q[0]+radius; dx++ {
						nx := clampInt(x+dx, 0, w-1)
						lum := float64(gray.Pix[ny*w+nx])
						sum += lum
						sumSq += lum * lum
						off := f.Offset(nx, ny)
						r += float64(f.Pix[off+0])
						g += float64(f.Pix[off+1])
						b += float64(f.Pix[off+2])
						count++
					}
				}
				n := float64(count)
				variance := sumSq/n - (sum/n)*(sum/n)
				if bestVar < 0 || variance < bestVar {
					bestVar = variance
					bestR = r / n
					bestG = g / n
					bestB = b / n
				}
			}

			off := out.Offset(x, y)
			out.Pix[off+0] = frame.ClampU8(bestR)
			out.Pix[off+1] = frame.ClampU8(bestG)
			out.Pix[off+2] = frame.ClampU8(bestB)
		}
	}
	return out
}

// WatercolorParams configures the watercolor stylizer.
type WatercolorParams struct {
	// Smooth is the large-radius edge-preserving pass that bleeds
	// neighboring colors together.
	Smooth SmoothParams

	// OilRadius is the brush scale of the shared flattening filter.
	OilRadius int

	// BlurRadius is the small symmetric blur that softens the flattened
	// regions into washes.
	BlurRadius float64

	// SatBoost is the fractional saturation increase applied last
	// (0.2 = +20%).
	SatBoost float64
}

// Watercolor stacks large-radius smoothing, the oil-painting flattening
// filter, a small symmetric blur and a saturation boost. It shares the
// flattening stage with OilPainting; the blur-then-saturate tail is what
// turns hard paint regions into the soft washed look.
func Watercolor(f *frame.Frame, p WatercolorParams) *frame.Frame {
	blurRadius := p.BlurRadius
	if blurRadius <= 0 {
		blurRadius = 2.0
	}
	satBoost := p.SatBoost
	if satBoost <= 0 {
		satBoost = 0.2
	}

	out := Smooth(f, p.Smooth)
	out = OilPainting(out, OilParams{Radius: p.OilRadius})

	img := blur.Gaussian(out.ToNRGBA(), blurRadius)
	img = adjust.Saturation(img, satBoost)
	return frame.FromImage(img)
}
