package backend

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/toonvert/toonvert/internal/frame"
)

func testFrame(w, h int) *frame.Frame {
	f := frame.NewRGB(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := f.Offset(x, y)
			f.Pix[o] = uint8(x * 4)
			f.Pix[o+1] = uint8(y * 4)
			f.Pix[o+2] = 90
		}
	}
	return f
}

func TestHeuristic_ServesAllStyles(t *testing.T) {
	h := NewHeuristic()
	if !h.Available() {
		t.Fatal("heuristic backend must always be available")
	}
	in := testFrame(48, 48)
	for _, name := range h.Styles() {
		name := name
		t.Run(name, func(t *testing.T) {
			out, err := h.Stylize(in, name)
			if err != nil {
				t.Fatalf("Stylize(%q): %v", name, err)
			}
			if out.Width != 48 || out.Height != 48 || out.Channels != 3 {
				t.Errorf("got %dx%dx%d", out.Width, out.Height, out.Channels)
			}
		})
	}
}

func TestHeuristic_UnsupportedStyle(t *testing.T) {
	_, err := NewHeuristic().Stylize(testFrame(16, 16), "pixel-art")
	if !errors.Is(err, ErrUnsupportedStyle) {
		t.Fatalf("err = %v, want ErrUnsupportedStyle", err)
	}
}

// Exercises only the build-independent surface, so it passes in both
// tag configurations of the runtime half.
func TestNeural_ProbeAndStylize(t *testing.T) {
	if n := NewNeural(filepath.Join(t.TempDir(), "missing.onnx")); n.Available() {
		t.Error("missing model probed as available")
	}

	path := filepath.Join(t.TempDir(), "model.onnx")
	if err := os.WriteFile(path, []byte{0x08, 0x01}, 0o644); err != nil {
		t.Fatal(err)
	}
	n := NewNeural(path)
	if got, want := n.Available(), neuralRuntimeLinked(); got != want {
		t.Errorf("Available() = %v with a valid model, runtime linked = %v", got, want)
	}
	if n.Available() {
		return
	}
	if _, err := n.Stylize(testFrame(16, 16), "anime"); !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("err = %v, want ErrBackendUnavailable", err)
	}
	if n.Name() == "neural ()" {
		t.Error("runtime half reported no build info")
	}
}

func TestProbeModel(t *testing.T) {
	if err := probeModel(""); !errors.Is(err, ErrModelNotFound) {
		t.Errorf("empty path: %v", err)
	}
	if err := probeModel(t.TempDir()); !errors.Is(err, ErrModelNotFound) {
		t.Errorf("directory: %v", err)
	}

	empty := filepath.Join(t.TempDir(), "empty.onnx")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := probeModel(empty); !errors.Is(err, ErrModelNotFound) {
		t.Errorf("empty file: %v", err)
	}
}

func TestSelect_FallsBackToHeuristic(t *testing.T) {
	b := Select("/nonexistent/model.onnx", zap.NewNop())
	if b.Name() != "heuristic" {
		t.Fatalf("selected %q, want heuristic", b.Name())
	}
	for _, s := range []string{"cartoon", "anime", "watercolor"} {
		found := false
		for _, got := range b.Styles() {
			if got == s {
				found = true
			}
		}
		if !found {
			t.Errorf("fallback does not serve %q", s)
		}
	}
}
