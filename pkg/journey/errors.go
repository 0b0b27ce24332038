package journey

import (
	"errors"
)

// ContentRefusedError indicates the generation provider declined to analyze
// the uploaded image. It carries the raw response for diagnostics and is
// never masked by the fallback path.
type ContentRefusedError struct {
	Raw string
}

func (e *ContentRefusedError) Error() string {
	return "image analysis blocked, please try a different image"
}

// ErrMalformedResponse marks a narrative response that failed to parse or
// validate. It is recovered locally via fallback substitution and never
// surfaced to the caller as a request failure.
var ErrMalformedResponse = errors.New("malformed narrative response")
