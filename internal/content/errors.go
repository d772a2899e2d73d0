package content

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat indicates a file extension with no extractor.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ExtractionError reports a file that could not be turned into content.
// It is recoverable: callers may fall back to treating the raw input as
// literal text.
type ExtractionError struct {
	Path string
	Ext  string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract content from %q (%s): %v", e.Path, e.Ext, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
