package frame

import (
	"fmt"
	"image"
)

// ColorSpace identifies how a Frame's channel values are interpreted.
// A Frame is always in exactly one space at a time; conversions between
// spaces are explicit (see colorspace.go).
type ColorSpace int

const (
	// RGB is 3-channel linear 8-bit color, the space frames are decoded
	// into and the space the quantizer and smoothing stages operate in.
	RGB ColorSpace = iota

	// HSV is 3-channel hue/saturation/value. H is stored halved ([0,179])
	// so a full hue circle fits in 8 bits.
	HSV

	// Lab is 3-channel lightness plus two opponent axes, a and b stored
	// offset by +128.
	Lab

	// Gray is single-channel BT.601 luma.
	Gray
)

func (s ColorSpace) String() string {
	switch s {
	case RGB:
		return "rgb"
	case HSV:
		return "hsv"
	case Lab:
		return "lab"
	case Gray:
		return "gray"
	}
	return fmt.Sprintf("colorspace(%d)", int(s))
}

// Frame is an 8-bit-per-channel pixel grid. Stages treat Frames as
// immutable inputs and allocate a new Frame for their output; nothing in
// this package or in the style pipelines mutates a Frame after it has been
// handed to a stage.
type Frame struct {
	Width    int
	Height   int
	Channels int // 1 or 3
	Space    ColorSpace

	// Pix holds the pixel data, row-major, channel-interleaved.
	// len(Pix) == Width*Height*Channels.
	Pix []uint8
}

// New allocates a zeroed Frame of the given shape. It panics on a
// non-positive dimension or a channel count other than 1 or 3; shapes are
// fixed by the caller, not by request data, so this is a programming error
// rather than a runtime condition.
func New(width, height, channels int, space ColorSpace) *Frame {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("frame: invalid dimensions %dx%d", width, height))
	}
	if channels != 1 && channels != 3 {
		panic(fmt.Sprintf("frame: invalid channel count %d", channels))
	}
	return &Frame{
		Width:    width,
		Height:   height,
		Channels: channels,
		Space:    space,
		Pix:      make([]uint8, width*height*channels),
	}
}

// NewRGB allocates a zeroed 3-channel RGB frame.
func NewRGB(width, height int) *Frame {
	return New(width, height, 3, RGB)
}

// NewGray allocates a zeroed single-channel grayscale frame. Edge masks
// use this shape with values constrained to 0 or 255.
func NewGray(width, height int) *Frame {
	return New(width, height, 1, Gray)
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	out := &Frame{
		Width:    f.Width,
		Height:   f.Height,
		Channels: f.Channels,
		Space:    f.Space,
		Pix:      make([]uint8, len(f.Pix)),
	}
	copy(out.Pix, f.Pix)
	return out
}

// Offset returns the index of pixel (x,y) in Pix. The caller is
// responsible for keeping x and y in bounds.
func (f *Frame) Offset(x, y int) int {
	return (y*f.Width + x) * f.Channels
}

// SameShape reports whether two frames have identical width, height and
// channel count. Color space is deliberately ignored: the compositor masks
// an RGB frame against a Gray mask of the same geometry.
func (f *Frame) SameShape(other *Frame) bool {
	return f.Width == other.Width && f.Height == other.Height && f.Channels == other.Channels
}

// FromImage converts a decoded image into a 3-channel RGB frame. Any alpha
// channel is discarded: the pipelines operate on opaque color only, and the
// decoder contract requires alpha-bearing inputs to be flattened before
// they reach a stage.
func FromImage(img image.Image) *Frame {
	bounds := img.Bounds()
	f := NewRGB(bounds.Dx(), bounds.Dy())
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			f.Pix[i+0] = uint8(r >> 8)
			f.Pix[i+1] = uint8(g >> 8)
			f.Pix[i+2] = uint8(b >> 8)
			i += 3
		}
	}
	return f
}

// ToNRGBA converts the frame to a standard library image for encoding or
// for handing to third-party filters. Gray frames broadcast their single
// channel; the alpha channel is fully opaque.
func (f *Frame) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			src := f.Offset(x, y)
			dst := img.PixOffset(x, y)
			if f.Channels == 1 {
				v := f.Pix[src]
				img.Pix[dst+0] = v
				img.Pix[dst+1] = v
				img.Pix[dst+2] = v
			} else {
				img.Pix[dst+0] = f.Pix[src+0]
				img.Pix[dst+1] = f.Pix[src+1]
				img.Pix[dst+2] = f.Pix[src+2]
			}
			img.Pix[dst+3] = 255
		}
	}
	return img
}

// ToGray collapses a color frame to single-channel BT.601 luma. Calling it
// on a frame that is already grayscale returns a copy.
func (f *Frame) ToGray() *Frame {
	if f.Channels == 1 {
		return f.Clone()
	}
	out := NewGray(f.Width, f.Height)
	for i, j := 0, 0; j < len(out.Pix); i, j = i+3, j+1 {
		r := float64(f.Pix[i+0])
		g := float64(f.Pix[i+1])
		b := float64(f.Pix[i+2])
		out.Pix[j] = uint8(0.299*r + 0.587*g + 0.114*b + 0.5)
	}
	return out
}

// ClampU8 converts a float to a uint8 with saturation at both ends.
func ClampU8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
