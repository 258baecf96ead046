// Package codec converts between on-the-wire image bytes and frames. It
// owns format registration, upload validation and the output bounding
// policy, so the processing packages never see encoded bytes.
package codec

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // Register GIF format decoder
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/toonvert/toonvert/internal/frame"
)

// DefaultJPEGQuality is used when Encode is called with a non-positive
// quality.
const DefaultJPEGQuality = 95

// allowedExtensions is the upload allow-list, matched case-insensitively.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// AllowedExtension reports whether the file name carries an accepted
// image extension.
func AllowedExtension(name string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}

// Limits bounds what Decode accepts.
type Limits struct {
	MaxBytes  int64
	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int
}

// DefaultLimits returns the standard upload limits: 10 MB of encoded
// bytes and dimensions between 50x50 and 10000x10000 inclusive.
func DefaultLimits() Limits {
	return Limits{
		MaxBytes:  10 << 20,
		MinWidth:  50,
		MinHeight: 50,
		MaxWidth:  10000,
		MaxHeight: 10000,
	}
}

// Decode validates and decodes encoded image bytes into an RGB frame.
// The byte cap is checked before any decoding happens, so a hostile
// payload never reaches the decoder. Returns the detected format name
// alongside the frame.
func Decode(data []byte, lim Limits) (*frame.Frame, string, error) {
	if lim.MaxBytes > 0 && int64(len(data)) > lim.MaxBytes {
		return nil, "", fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(data), lim.MaxBytes)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if (lim.MinWidth > 0 && w < lim.MinWidth) || (lim.MinHeight > 0 && h < lim.MinHeight) {
		return nil, "", fmt.Errorf("%w: %dx%d below minimum %dx%d",
			ErrBadDimensions, w, h, lim.MinWidth, lim.MinHeight)
	}
	if (lim.MaxWidth > 0 && w > lim.MaxWidth) || (lim.MaxHeight > 0 && h > lim.MaxHeight) {
		return nil, "", fmt.Errorf("%w: %dx%d above maximum %dx%d",
			ErrBadDimensions, w, h, lim.MaxWidth, lim.MaxHeight)
	}

	return frame.FromImage(img), format, nil
}

// Encode serializes a frame as "jpeg" or "png". A non-positive quality
// selects DefaultJPEGQuality; PNG ignores quality.
func Encode(f *frame.Frame, format string, quality int) ([]byte, error) {
	img := f.ToNRGBA()
	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		if quality <= 0 {
			quality = DefaultJPEGQuality
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported output format %q", ErrInvalidFormat, format)
	}
	return buf.Bytes(), nil
}

// FitWithin shrinks a frame to fit inside maxW x maxH, preserving aspect
// ratio. Frames already inside the box come back untouched; this never
// upscales.
func FitWithin(f *frame.Frame, maxW, maxH int) *frame.Frame {
	if maxW < 1 || maxH < 1 {
		return f
	}
	if f.Width <= maxW && f.Height <= maxH {
		return f
	}
	fitted := imaging.Fit(f.ToNRGBA(), maxW, maxH, imaging.Lanczos)
	return frame.FromImage(fitted)
}
