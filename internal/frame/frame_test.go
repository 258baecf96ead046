package frame

import (
	"image"
	"image/color"
	"testing"
)

func solidRGB(w, h int, r, g, b uint8) *Frame {
	f := NewRGB(w, h)
	for i := 0; i < len(f.Pix); i += 3 {
		f.Pix[i+0] = r
		f.Pix[i+1] = g
		f.Pix[i+2] = b
	}
	return f
}

func TestFromImage_DropsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: 128})
		}
	}

	f := FromImage(img)
	if f.Width != 4 || f.Height != 4 || f.Channels != 3 {
		t.Fatalf("shape: got %dx%dx%d, want 4x4x3", f.Width, f.Height, f.Channels)
	}
	if f.Space != RGB {
		t.Errorf("space: got %s, want rgb", f.Space)
	}
}

func TestToNRGBA_RoundTrip(t *testing.T) {
	f := solidRGB(8, 6, 200, 100, 50)
	img := f.ToNRGBA()
	back := FromImage(img)

	if !f.SameShape(back) {
		t.Fatalf("shape changed in round trip")
	}
	for i := range f.Pix {
		if f.Pix[i] != back.Pix[i] {
			t.Fatalf("pixel %d: got %d, want %d", i, back.Pix[i], f.Pix[i])
		}
	}
}

func TestToGray_Weights(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    uint8
	}{
		{"black", 0, 0, 0, 0},
		{"white", 255, 255, 255, 255},
		{"pure red", 255, 0, 0, 76},
		{"pure green", 0, 255, 0, 150},
		{"pure blue", 0, 0, 255, 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := solidRGB(2, 2, tt.r, tt.g, tt.b)
			gray := f.ToGray()
			if gray.Channels != 1 {
				t.Fatalf("channels: got %d, want 1", gray.Channels)
			}
			if got := gray.Pix[0]; got != tt.want {
				t.Errorf("luma: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClone_Independent(t *testing.T) {
	f := solidRGB(2, 2, 1, 2, 3)
	c := f.Clone()
	c.Pix[0] = 99
	if f.Pix[0] == 99 {
		t.Error("modifying clone mutated the original")
	}
}

func TestClampU8(t *testing.T) {
	if got := ClampU8(-10); got != 0 {
		t.Errorf("ClampU8(-10) = %d, want 0", got)
	}
	if got := ClampU8(300); got != 255 {
		t.Errorf("ClampU8(300) = %d, want 255", got)
	}
	if got := ClampU8(128.4); got != 128 {
		t.Errorf("ClampU8(128.4) = %d, want 128", got)
	}
}
