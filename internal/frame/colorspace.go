package frame

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ToHSV converts an RGB frame to HSV. H is stored halved so the full hue
// circle fits the 8-bit channel; S and V are scaled to [0,255].
func (f *Frame) ToHSV() (*Frame, error) {
	if f.Space != RGB || f.Channels != 3 {
		return nil, fmt.Errorf("frame: ToHSV requires a 3-channel RGB frame, have %s/%d", f.Space, f.Channels)
	}
	out := New(f.Width, f.Height, 3, HSV)
	for i := 0; i < len(f.Pix); i += 3 {
		c := colorful.Color{
			R: float64(f.Pix[i+0]) / 255.0,
			G: float64(f.Pix[i+1]) / 255.0,
			B: float64(f.Pix[i+2]) / 255.0,
		}
		h, s, v := c.Hsv()
		out.Pix[i+0] = ClampU8(h / 2.0)
		out.Pix[i+1] = ClampU8(s * 255.0)
		out.Pix[i+2] = ClampU8(v * 255.0)
	}
	return out, nil
}

// FromHSV converts an HSV frame back to RGB.
func (f *Frame) FromHSV() (*Frame, error) {
	if f.Space != HSV || f.Channels != 3 {
		return nil, fmt.Errorf("frame: FromHSV requires a 3-channel HSV frame, have %s/%d", f.Space, f.Channels)
	}
	out := New(f.Width, f.Height, 3, RGB)
	for i := 0; i < len(f.Pix); i += 3 {
		h := float64(f.Pix[i+0]) * 2.0
		s := float64(f.Pix[i+1]) / 255.0
		v := float64(f.Pix[i+2]) / 255.0
		c := colorful.Hsv(h, s, v).Clamped()
		out.Pix[i+0] = ClampU8(c.R * 255.0)
		out.Pix[i+1] = ClampU8(c.G * 255.0)
		out.Pix[i+2] = ClampU8(c.B * 255.0)
	}
	return out, nil
}

// ToLab converts an RGB frame to Lab. L maps to [0,255]; the a and b axes
// are offset by +128 so negative values survive the 8-bit encoding.
func (f *Frame) ToLab() (*Frame, error) {
	if f.Space != RGB || f.Channels != 3 {
		return nil, fmt.Errorf("frame: ToLab requires a 3-channel RGB frame, have %s/%d", f.Space, f.Channels)
	}
	out := New(f.Width, f.Height, 3, Lab)
	for i := 0; i < len(f.Pix); i += 3 {
		c := colorful.Color{
			R: float64(f.Pix[i+0]) / 255.0,
			G: float64(f.Pix[i+1]) / 255.0,
			B: float64(f.Pix[i+2]) / 255.0,
		}
		l, a, b := c.Lab()
		out.Pix[i+0] = ClampU8(l * 255.0)
		out.Pix[i+1] = ClampU8(a*128.0 + 128.0)
		out.Pix[i+2] = ClampU8(b*128.0 + 128.0)
	}
	return out, nil
}

// FromLab converts a Lab frame back to RGB. Out-of-gamut results from
// boosted lightness are clamped to the RGB cube.
func (f *Frame) FromLab() (*Frame, error) {
	if f.Space != Lab || f.Channels != 3 {
		return nil, fmt.Errorf("frame: FromLab requires a 3-channel Lab frame, have %s/%d", f.Space, f.Channels)
	}
	out := New(f.Width, f.Height, 3, RGB)
	for i := 0; i < len(f.Pix); i += 3 {
		l := float64(f.Pix[i+0]) / 255.0
		a := (float64(f.Pix[i+1]) - 128.0) / 128.0
		b := (float64(f.Pix[i+2]) - 128.0) / 128.0
		c := colorful.Lab(l, a, b).Clamped()
		out.Pix[i+0] = ClampU8(c.R * 255.0)
		out.Pix[i+1] = ClampU8(c.G * 255.0)
		out.Pix[i+2] = ClampU8(c.B * 255.0)
	}
	return out, nil
}
