package metadata

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/aliskhannn/photo-datemark/internal/model"
)

// exifLayout is the datetime format used by EXIF tags.
const exifLayout = "2006:01:02 15:04:05"

// dateTags are tried in priority order when looking for a capture date.
var dateTags = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
	exif.DateTime,
}

// Extractor derives a capture date for image files.
type Extractor struct{}

// New creates a new Extractor.
func New() *Extractor {
	return &Extractor{}
}

// ExtractDate returns the capture date for the file at path. It prefers an
// embedded EXIF "date taken" tag and falls back to the file's modification
// time. Missing or unparsable EXIF is an expected condition, not an error;
// only an unreadable file fails.
func (e *Extractor) ExtractDate(path string) (model.CaptureDate, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.CaptureDate{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	if t, ok := exifDate(f); ok {
		return model.CaptureDate{Time: t, Source: model.SourceEXIF}, nil
	}

	info, err := f.Stat()
	if err != nil {
		return model.CaptureDate{}, fmt.Errorf("failed to stat file: %w", err)
	}

	return model.CaptureDate{Time: info.ModTime(), Source: model.SourceMtime}, nil
}

// exifDate tries to decode EXIF metadata from r and extract the first
// parsable date tag in priority order.
func exifDate(r io.Reader) (time.Time, bool) {
	x, err := exif.Decode(r)
	if err != nil {
		return time.Time{}, false
	}

	for _, tag := range dateTags {
		field, err := x.Get(tag)
		if err != nil {
			continue
		}
		s, err := field.StringVal()
		if err != nil {
			continue
		}
		if t, err := time.ParseInLocation(exifLayout, s, time.Local); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
