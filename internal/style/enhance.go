package style

import (
	"github.com/toonvert/toonvert/internal/frame"
)

// EnhanceParams configures the color space enhancement stage. A scale of
// 0 or 1 leaves that channel untouched.
type EnhanceParams struct {
	// SatScale multiplies the HSV saturation channel.
	SatScale float64

	// ValScale multiplies the HSV value channel.
	ValScale float64

	// LightScale multiplies the Lab lightness channel.
	LightScale float64
}

// Enhance applies per-channel multiplicative scaling in HSV and Lab with
// hard clamping to the legal channel range. The Lab scaling runs first so
// a lightness boost feeds into the saturation pass the same way the
// reference pipeline ordered them. Factors of 1 (or 0) are exact no-ops:
// a fully neutral parameter set returns the input unchanged rather than
// paying the round trip through the other spaces.
func Enhance(f *frame.Frame, p EnhanceParams) (*frame.Frame, error) {
	scaleLight := effective(p.LightScale)
	scaleSat := effective(p.SatScale)
	scaleVal := effective(p.ValScale)

	if scaleLight == 1 && scaleSat == 1 && scaleVal == 1 {
		return f.Clone(), nil
	}

	out := f
	if scaleLight != 1 {
		lab, err := out.ToLab()
		if err != nil {
			return nil, err
		}
		for i := 0; i < len(lab.Pix); i += 3 {
			lab.Pix[i] = frame.ClampU8(float64(lab.Pix[i]) * scaleLight)
		}
		out, err = lab.FromLab()
		if err != nil {
			return nil, err
		}
	}

	if scaleSat != 1 || scaleVal != 1 {
		hsv, err := out.ToHSV()
		if err != nil {
			return nil, err
		}
		for i := 0; i < len(hsv.Pix); i += 3 {
			hsv.Pix[i+1] = frame.ClampU8(float64(hsv.Pix[i+1]) * scaleSat)
			hsv.Pix[i+2] = frame.ClampU8(float64(hsv.Pix[i+2]) * scaleVal)
		}
		out, err = hsv.FromHSV()
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

func effective(scale float64) float64 {
	if scale <= 0 {
		return 1
	}
	return scale
}

// LocalContrast applies adaptive-histogram-equalization style
// normalization to the luminance channel only: the lightness plane is
// split into a tile grid, each tile gets a clip-limited equalization
// mapping, and every pixel blends the mappings of its four surrounding
// tiles bilinearly so tile seams stay invisible. Chroma is untouched.
// Used by the ultra-grade styles as a final contrast pass.
func LocalContrast(f *frame.Frame, clipLimit float64, tiles int) (*frame.Frame, error) {
	if tiles < 1 {
		tiles = 8
	}
	if clipLimit <= 0 {
		clipLimit = 2.0
	}

	lab, err := f.ToLab()
	if err != nil {
		return nil, err
	}
	w, h := lab.Width, lab.Height

	tileW := (w + tiles - 1) / tiles
	tileH := (h + tiles - 1) / tiles

	// One equalization mapping per tile.
	maps := make([][256]uint8, tiles*tiles)
	for ty := 0; ty < tiles; ty++ {
		for tx := 0; tx < tiles; tx++ {
			x0 := tx * tileW
			y0 := ty * tileH
			x1 := clampInt(x0+tileW, 0, w)
			y1 := clampInt(y0+tileH, 0, h)
			if x0 >= w || y0 >= h {
				// Degenerate tile on tiny images: identity mapping.
				for v := 0; v < 256; v++ {
					maps[ty*tiles+tx][v] = uint8(v)
				}
				continue
			}
			maps[ty*tiles+tx] = tileMapping(lab, x0, y0, x1, y1, clipLimit)
		}
	}

	out := lab.Clone()
	for y := 0; y < h; y++ {
		// Position relative to tile centers, for interpolation.
		fy := (float64(y)-float64(tileH)/2 + 0.5) / float64(tileH)
		ty0 := clampInt(int(fy), 0, tiles-1)
		ty1 := clampInt(ty0+1, 0, tiles-1)
		wy := fy - float64(ty0)
		if wy < 0 {
			wy = 0
		} else if wy > 1 {
			wy = 1
		}

		for x := 0; x < w; x++ {
			fx := (float64(x)-float64(tileW)/2 + 0.5) / float64(tileW)
			tx0 := clampInt(int(fx), 0, tiles-1)
			tx1 := clampInt(tx0+1, 0, tiles-1)
			wx := fx - float64(tx0)
			if wx < 0 {
				wx = 0
			} else if wx > 1 {
				wx = 1
			}

			v := lab.Pix[(y*w+x)*3]
			m00 := float64(maps[ty0*tiles+tx0][v])
			m10 := float64(maps[ty0*tiles+tx1][v])
			m01 := float64(maps[ty1*tiles+tx0][v])
			m11 := float64(maps[ty1*tiles+tx1][v])
			top := m00*(1-wx) + m10*wx
			bottom := m01*(1-wx) + m11*wx
			out.Pix[(y*w+x)*3] = frame.ClampU8(top*(1-wy) + bottom*wy)
		}
	}

	return out.FromLab()
}

// tileMapping builds the clip-limited equalization lookup for one tile of
// the lightness plane. Histogram mass above the clip ceiling is
// redistributed evenly across all bins before the CDF is taken, which
// caps how much a mostly-flat tile can amplify its noise.
func tileMapping(lab *frame.Frame, x0, y0, x1, y1 int, clipLimit float64) [256]uint8 {
	var hist [256]int
	count := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			hist[lab.Pix[(y*lab.Width+x)*3]]++
			count++
		}
	}

	ceiling := int(clipLimit * float64(count) / 256.0)
	if ceiling < 1 {
		ceiling = 1
	}
	excess := 0
	for i := range hist {
		if hist[i] > ceiling {
			excess += hist[i] - ceiling
			hist[i] = ceiling
		}
	}
	share := excess / 256
	for i := range hist {
		hist[i] += share
	}

	var mapping [256]uint8
	cdf := 0
	for i := range hist {
		cdf += hist[i]
		mapping[i] = frame.ClampU8(float64(cdf) / float64(count) * 255.0)
	}
	return mapping
}
