package model

import (
	"fmt"
	"image/color"
)

// Position is the placement of the watermark within the image.
type Position string

const (
	PositionTopLeft     Position = "top-left"
	PositionTopRight    Position = "top-right"
	PositionBottomLeft  Position = "bottom-left"
	PositionBottomRight Position = "bottom-right"
	PositionCenter      Position = "center"
)

// ParsePosition validates a position string against the five supported values.
func ParsePosition(s string) (Position, error) {
	switch p := Position(s); p {
	case PositionTopLeft, PositionTopRight, PositionBottomLeft, PositionBottomRight, PositionCenter:
		return p, nil
	default:
		return "", fmt.Errorf("invalid position %q: must be one of top-left, top-right, bottom-left, bottom-right, center", s)
	}
}

// WatermarkSpec holds the fully validated watermark settings. It is built
// once at startup and shared read-only across all tasks.
type WatermarkSpec struct {
	FontSize int         // text size in points
	FontPath string      // optional TTF path; empty means the embedded default
	Color    color.NRGBA // text color, alpha carries the opacity
	Position Position

	StrokeWidth int         // outline thickness in pixels, 0 disables
	StrokeColor color.NRGBA

	LogoPath    string  // optional image watermark
	LogoScale   int     // percent of the logo's own size
	LogoOpacity float64 // 0..1

	Quality       int // JPEG quality for output files
	ResizePercent int // optional pre-scale of the source image, 0/100 = off
	Suffix        string
}
