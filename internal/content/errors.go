package content

import (
	"errors"
	"fmt"
)

// ErrMalformedContent matches any MalformedContentError via errors.Is.
var ErrMalformedContent = errors.New("malformed content")

// MalformedContentError reports a structured file (meta.json or a transcript
// JSON) that exists on disk but does not decode into the expected shape.
type MalformedContentError struct {
	Path string
	Err  error
}

func (e *MalformedContentError) Error() string {
	return fmt.Sprintf("malformed content in %s: %v", e.Path, e.Err)
}

func (e *MalformedContentError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrMalformedContent) true for every MalformedContentError.
func (e *MalformedContentError) Is(target error) bool {
	return target == ErrMalformedContent
}
