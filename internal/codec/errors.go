package codec

import "errors"

var (
	// ErrShortBuffer is returned when a destination buffer cannot hold the output.
	ErrShortBuffer = errors.New("codec: destination buffer too small")

	// ErrCorrupt is returned when encoded input is malformed.
	ErrCorrupt = errors.New("codec: corrupt input")
)
