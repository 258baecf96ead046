// Package frame defines the pixel buffer type that flows through the style
// pipelines, together with the explicit color space conversions the stages
// rely on.
//
// A Frame is an 8-bit-per-channel pixel grid with either one channel
// (grayscale, edge masks) or three channels (color). Every Frame is tagged
// with the color space its channel values are interpreted in; conversions
// between spaces are explicit operations that produce new Frames rather
// than mutating in place. This keeps each pipeline stage a pure function
// from Frame to Frame, which is what makes the stages safe to compose and
// to invoke concurrently for independent requests.
//
// # Coordinate System
//
// Pixel (0,0) is the top-left corner, X increases rightward, Y increases
// downward. Pixels are stored row-major and channel-interleaved: the offset
// of pixel (x,y) is (y*Width+x)*Channels.
//
// # Channel Encodings
//
// The non-RGB spaces use the same 8-bit encodings OpenCV uses for 8-bit
// images, so parameter values tuned against reference output carry over:
//   - HSV: H in [0,179] (degrees halved), S and V in [0,255]
//   - Lab: L in [0,255], a and b offset by +128
//   - Gray: BT.601 luma in [0,255]
package frame
