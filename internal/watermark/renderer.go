package watermark

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/aliskhannn/photo-datemark/internal/model"
)

// margin is the fixed pixel inset from the image edges for corner positions.
const margin = 10.0

// ErrFont indicates the requested font could not be loaded or parsed.
var ErrFont = errors.New("failed to load font")

// Renderer draws a text (and optionally a logo) watermark onto images.
// The font and logo are loaded once at construction so a broken font path
// fails before any image is touched.
type Renderer struct {
	spec model.WatermarkSpec
	font *truetype.Font
	logo image.Image
}

// New creates a Renderer for the given spec. An empty FontPath selects the
// embedded Go Regular face, so rendering never depends on host fonts.
func New(spec model.WatermarkSpec) (*Renderer, error) {
	fnt, err := loadFont(spec.FontPath)
	if err != nil {
		return nil, err
	}

	r := &Renderer{spec: spec, font: fnt}

	if spec.LogoPath != "" {
		logo, err := imaging.Open(spec.LogoPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open logo image: %w", err)
		}
		if spec.LogoScale > 0 && spec.LogoScale != 100 {
			w := logo.Bounds().Dx() * spec.LogoScale / 100
			logo = imaging.Resize(logo, w, 0, imaging.Lanczos)
		}
		r.logo = logo
	}

	return r, nil
}

// loadFont parses the TTF at path, or the embedded default when path is empty.
func loadFont(path string) (*truetype.Font, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFont, err)
		}
		data = b
	}

	fnt, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFont, err)
	}

	return fnt, nil
}

// Render draws the watermark text onto a copy of src and returns the copy.
// The caller's image is never mutated.
func (r *Renderer) Render(src image.Image, text string) image.Image {
	base := src
	if r.logo != nil {
		lx, ly := origin(r.spec.Position,
			float64(src.Bounds().Dx()), float64(src.Bounds().Dy()),
			float64(r.logo.Bounds().Dx()), float64(r.logo.Bounds().Dy()))
		base = imaging.Overlay(src, r.logo, image.Pt(int(lx), int(ly)), r.spec.LogoOpacity)
	}

	dc := gg.NewContextForImage(base)
	face := truetype.NewFace(r.font, &truetype.Options{
		Size: float64(r.spec.FontSize),
	})
	dc.SetFontFace(face)

	tw, th := dc.MeasureString(text)
	// Grow the text box by the face's descent so glyph tails stay inside
	// the margin on bottom placements.
	th += float64(face.Metrics().Descent.Ceil())
	x, y := origin(r.spec.Position, float64(dc.Width()), float64(dc.Height()), tw, th)

	// Outline: repeat the string offset around the origin before the fill.
	if r.spec.StrokeWidth > 0 {
		dc.SetColor(r.spec.StrokeColor)
		w := float64(r.spec.StrokeWidth)
		for dx := -w; dx <= w; dx++ {
			for dy := -w; dy <= w; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}
				dc.DrawStringAnchored(text, x+dx, y+dy, 0, 1)
			}
		}
	}

	dc.SetColor(r.spec.Color)
	dc.DrawStringAnchored(text, x, y, 0, 1)

	return dc.Image()
}

// origin computes the top-left corner of a w×h box placed at position p
// inside an imgW×imgH image. Corner positions keep a fixed margin from the
// edges; the box is clamped so it stays inside the image.
func origin(p model.Position, imgW, imgH, w, h float64) (float64, float64) {
	var x, y float64

	switch p {
	case model.PositionTopLeft:
		x, y = margin, margin
	case model.PositionTopRight:
		x, y = imgW-w-margin, margin
	case model.PositionBottomLeft:
		x, y = margin, imgH-h-margin
	case model.PositionBottomRight:
		x, y = imgW-w-margin, imgH-h-margin
	case model.PositionCenter:
		x, y = (imgW-w)/2, (imgH-h)/2
	}

	return max(x, 0), max(y, 0)
}
