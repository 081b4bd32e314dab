package model

import (
	"time"

	"github.com/google/uuid"
)

// ImageTask represents a single image to be watermarked. Tasks are created
// per discovered file, are immutable, and are discarded after processing.
type ImageTask struct {
	ID         uuid.UUID // task identity, used in logs and failure reports
	SourcePath string    // path of the input image
	OutputPath string    // path the watermarked JPEG will be written to
}

// DateSource describes where a capture date was derived from.
type DateSource string

const (
	SourceEXIF  DateSource = "exif"  // EXIF "date taken" tag
	SourceMtime DateSource = "mtime" // filesystem modification time
)

// CaptureDate is the date attributed to an image, together with its origin.
type CaptureDate struct {
	Time   time.Time
	Source DateSource
}

// Format renders the capture date as watermark text, e.g. "January 15, 2024".
func (d CaptureDate) Format() string {
	return d.Time.Format("January 02, 2006")
}

// Failure records a per-file error encountered during a batch run.
type Failure struct {
	Task ImageTask
	Err  error
}

// Summary is the result of one batch run.
type Summary struct {
	Total     int // files matching the supported extension set
	Processed int // watermarked and saved successfully
	Failed    int // skipped due to an error
	Failures  []Failure
	OutputDir string
}
