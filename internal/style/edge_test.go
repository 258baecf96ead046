package style

import "testing"

func maskStats(pix []uint8) (zeros, full, other int) {
	for _, v := range pix {
		switch v {
		case 0:
			zeros++
		case 255:
			full++
		default:
			other++
		}
	}
	return
}

func TestExtractEdges_NoMethodsPassesThrough(t *testing.T) {
	mask := ExtractEdges(twoTone(16, 16), EdgeParams{})
	zeros, full, other := maskStats(mask.Pix)
	if zeros != 0 || other != 0 || full != 16*16 {
		t.Fatalf("empty method list: zeros=%d full=%d other=%d", zeros, full, other)
	}
}

func TestExtractEdges_FlatFrameHasNoLines(t *testing.T) {
	in := solid(32, 32, 90, 90, 90)
	for _, m := range []EdgeMethodParams{
		{Method: EdgeGradient, Threshold: 50},
		{Method: EdgeCanny, Low: 50, High: 150},
	} {
		mask := ExtractEdges(in, EdgeParams{Methods: []EdgeMethodParams{m}, Fusion: FuseAND})
		if zeros, _, _ := maskStats(mask.Pix); zeros != 0 {
			t.Errorf("method %d marked %d line pixels on a flat frame", m.Method, zeros)
		}
	}
}

func TestExtractEdges_StepEdgeDetected(t *testing.T) {
	in := twoTone(40, 40)
	for _, tc := range []struct {
		name string
		m    EdgeMethodParams
	}{
		{"gradient", EdgeMethodParams{Method: EdgeGradient, Threshold: 50}},
		{"canny", EdgeMethodParams{Method: EdgeCanny, Low: 50, High: 150}},
		{"adaptive", EdgeMethodParams{Method: EdgeAdaptiveMean, MedianSize: 5, Block: 9, C: 2}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			mask := ExtractEdges(in, EdgeParams{Methods: []EdgeMethodParams{tc.m}, Fusion: FuseAND})
			zeros, _, other := maskStats(mask.Pix)
			if other != 0 {
				t.Fatalf("mask has %d values outside {0,255}", other)
			}
			if zeros == 0 {
				t.Fatal("no line pixels on a hard step edge")
			}
			// Lines belong near the boundary; the far left column is flat.
			for y := 2; y < 38; y++ {
				if mask.Pix[mask.Offset(1, y)] == 0 {
					t.Fatalf("line pixel in flat region at (1,%d)", y)
				}
			}
		})
	}
}

func TestExtractEdges_ORWidensANDNarrows(t *testing.T) {
	in := twoTone(40, 40)
	methods := []EdgeMethodParams{
		{Method: EdgeGradient, Threshold: 50},
		{Method: EdgeCanny, Low: 50, High: 150, Dilate: true},
	}

	and := ExtractEdges(in, EdgeParams{Methods: methods, Fusion: FuseAND})
	or := ExtractEdges(in, EdgeParams{Methods: methods, Fusion: FuseOR})

	andZeros, _, _ := maskStats(and.Pix)
	orZeros, _, _ := maskStats(or.Pix)
	if orZeros > andZeros {
		t.Fatalf("OR fusion kept more lines (%d) than AND (%d)", orZeros, andZeros)
	}
}
