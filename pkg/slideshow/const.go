package slideshow

import "time"

// Defaults applied when a settings field is missing or out of range.
const (
	DefaultIntervalSecs = 600
	MinInterval         = time.Second
	DefaultAutoRotate   = true
)

// Selection tuning.
const (
	// MaxRandomRetries bounds the redraws used to avoid showing the same
	// image twice in a row. With a degenerate candidate set a repeat is
	// accepted after the bound.
	MaxRandomRetries = 8
)

// Failure reporting.
const (
	// MaxConsecutiveConvertFailures is how many rotations in a row may fail
	// conversion before the user is notified.
	MaxConsecutiveConvertFailures = 5
	// FailureNoticeInterval throttles repeated failure notices.
	FailureNoticeInterval = 5 * time.Minute
)

// Catalog tuning.
const (
	// scanWorkers bounds the folder scans running concurrently.
	scanWorkers = 4
)

// History tuning.
const (
	historyBucket = "ShownHistory"
	// HistoryCap is the maximum number of retained history entries.
	HistoryCap = 500
)

// supportedExtensions is the fixed allow-list of image file extensions,
// matched case-insensitively.
var supportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".webp": true,
	".gif":  true,
	".tif":  true,
	".tiff": true,
}
