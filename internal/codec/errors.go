package codec

import "errors"

var (
	// ErrInvalidFormat marks bytes that are not a decodable image, or a
	// request for an output format the encoder does not produce.
	ErrInvalidFormat = errors.New("invalid image format")

	// ErrTooLarge marks an upload over the encoded-byte cap.
	ErrTooLarge = errors.New("image too large")

	// ErrBadDimensions marks decoded dimensions outside the accepted range.
	ErrBadDimensions = errors.New("image dimensions out of range")
)
