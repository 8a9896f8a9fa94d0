package slideshow

import (
	"errors"
	"fmt"
)

// ErrNoCandidates is returned by the selector when the candidate set is
// empty. The controller treats it as a pause condition, not a crash.
var ErrNoCandidates = errors.New("no images available")

// ConversionError reports a failure to decode, transform, or write a source
// image. The previously valid cache artifact is left untouched.
type ConversionError struct {
	Path string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("converting %s: %v", e.Path, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// ApplyError reports an OS-level rejection while committing the style or the
// wallpaper image. The OS retains the prior background.
type ApplyError struct {
	Op  string // "style" or "wallpaper"
	Err error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("applying %s: %v", e.Op, e.Err)
}

func (e *ApplyError) Unwrap() error { return e.Err }
