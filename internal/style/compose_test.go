package style

import (
	"errors"
	"testing"

	"github.com/toonvert/toonvert/internal/frame"
)

func fullMask(w, h int, v uint8) *frame.Frame {
	m := frame.NewGray(w, h)
	for i := range m.Pix {
		m.Pix[i] = v
	}
	return m
}

func TestCompose_FullMaskPassesThrough(t *testing.T) {
	color := twoTone(16, 16)
	out, err := Compose(color, fullMask(16, 16, 255), SharpenParams{})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	for i := range out.Pix {
		if out.Pix[i] != color.Pix[i] {
			t.Fatalf("byte %d: %d -> %d under all-keep mask", i, color.Pix[i], out.Pix[i])
		}
	}
}

func TestCompose_ZeroMaskBlacksOut(t *testing.T) {
	out, err := Compose(twoTone(16, 16), fullMask(16, 16, 0), SharpenParams{})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	for i, v := range out.Pix {
		if v != 0 {
			t.Fatalf("byte %d = %d under all-line mask", i, v)
		}
	}
}

func TestCompose_MixedMask(t *testing.T) {
	color := solid(10, 10, 200, 100, 50)
	mask := fullMask(10, 10, 255)
	for x := 0; x < 10; x++ {
		mask.Pix[mask.Offset(x, 4)] = 0
	}
	out, err := Compose(color, mask, SharpenParams{})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	line := out.Offset(5, 4)
	if out.Pix[line] != 0 || out.Pix[line+1] != 0 || out.Pix[line+2] != 0 {
		t.Errorf("line row not black: %v", out.Pix[line:line+3])
	}
	keep := out.Offset(5, 7)
	if out.Pix[keep] != 200 || out.Pix[keep+1] != 100 || out.Pix[keep+2] != 50 {
		t.Errorf("kept row changed: %v", out.Pix[keep:keep+3])
	}
}

func TestCompose_ShapeMismatch(t *testing.T) {
	_, err := Compose(twoTone(16, 16), fullMask(16, 8, 255), SharpenParams{})
	if !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("err = %v, want ErrShapeMismatch", err)
	}
}

func TestCompose_SharpenModesRun(t *testing.T) {
	color := twoTone(24, 24)
	mask := fullMask(24, 24, 255)
	for _, p := range []SharpenParams{
		{Mode: SharpenKernel},
		{Mode: SharpenUnsharp, Radius: 2.0, Amount: 0.5},
	} {
		out, err := Compose(color, mask, p)
		if err != nil {
			t.Fatalf("Compose(mode %d): %v", p.Mode, err)
		}
		if out.Width != 24 || out.Height != 24 || out.Channels != 3 {
			t.Errorf("mode %d: got %dx%dx%d", p.Mode, out.Width, out.Height, out.Channels)
		}
	}
}
