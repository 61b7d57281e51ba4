package render

import "errors"

// Pipeline error kinds. Any of these aborts an export as a whole; no
// partial document is ever produced.
var (
	// ErrImageDecode marks corrupt or unsupported source bytes.
	ErrImageDecode = errors.New("image decode failed")

	// ErrImageEncode marks a failed lossless raster export step.
	ErrImageEncode = errors.New("image encode failed")
)
