package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a block.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrOverrun indicates a header declares a payload extending past the arena end.
	ErrOverrun = errors.New("format: block overruns arena")
)
