package style

import "testing"

func TestSmooth_FlatFrameUnchanged(t *testing.T) {
	in := solid(20, 20, 120, 60, 200)
	out := Smooth(in, SmoothParams{Radius: 4, ColorSigma: 300, SpaceSigma: 300, Passes: 2})
	for i := range out.Pix {
		if out.Pix[i] != in.Pix[i] {
			t.Fatalf("flat frame changed at byte %d: %d -> %d", i, in.Pix[i], out.Pix[i])
		}
	}
}

func TestSmooth_PreservesStrongEdge(t *testing.T) {
	in := twoTone(40, 40)
	// Small color sigma: the red/blue boundary is far outside the range
	// kernel, so neither side should bleed into the other.
	out := Smooth(in, SmoothParams{Radius: 3, ColorSigma: 20, SpaceSigma: 20, Passes: 1})

	l := out.Offset(5, 20)
	if out.Pix[l] < 190 || out.Pix[l+2] > 10 {
		t.Errorf("left side bled: %v", out.Pix[l:l+3])
	}
	r := out.Offset(34, 20)
	if out.Pix[r+2] < 190 || out.Pix[r] > 10 {
		t.Errorf("right side bled: %v", out.Pix[r:r+3])
	}
}

func TestSmooth_FlattensNoise(t *testing.T) {
	in := solid(30, 30, 128, 128, 128)
	// Checkerboard perturbation of +/-10 around mid gray.
	for y := 0; y < 30; y++ {
		for x := 0; x < 30; x++ {
			o := in.Offset(x, y)
			d := uint8(118)
			if (x+y)%2 == 0 {
				d = 138
			}
			in.Pix[o], in.Pix[o+1], in.Pix[o+2] = d, d, d
		}
	}
	out := Smooth(in, SmoothParams{Radius: 4, ColorSigma: 100, SpaceSigma: 100, Passes: 2})

	o := out.Offset(15, 15)
	for c := 0; c < 3; c++ {
		v := out.Pix[o+c]
		if v < 124 || v > 132 {
			t.Errorf("channel %d = %d, want near 128 after smoothing", c, v)
		}
	}
}

func TestSmooth_DegenerateParamsStillRun(t *testing.T) {
	in := twoTone(10, 10)
	out := Smooth(in, SmoothParams{})
	if out.Width != 10 || out.Height != 10 || out.Channels != 3 {
		t.Fatalf("got %dx%dx%d", out.Width, out.Height, out.Channels)
	}
}
