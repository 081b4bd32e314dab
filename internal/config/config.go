package config

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/spf13/viper"

	"github.com/aliskhannn/photo-datemark/internal/model"
)

// Config holds the main configuration for the tool. Values come from the
// optional YAML config file with CLI flags layered on top through viper.
type Config struct {
	Watermark Watermark `mapstructure:"watermark"`
	Output    Output    `mapstructure:"output"`
}

// Watermark holds text watermark settings.
type Watermark struct {
	Size        int    `mapstructure:"size"`         // font size in points
	Color       string `mapstructure:"color"`        // color name or #hex
	Position    string `mapstructure:"position"`     // one of the five placements
	Opacity     int    `mapstructure:"opacity"`      // 0-255
	Font        string `mapstructure:"font"`         // optional TTF path
	StrokeWidth int    `mapstructure:"stroke_width"` // outline thickness, 0 = off
	StrokeColor string `mapstructure:"stroke_color"`
	Logo        Logo   `mapstructure:"logo"`
}

// Logo holds optional image watermark settings.
type Logo struct {
	Path    string `mapstructure:"path"`
	Scale   int    `mapstructure:"scale"`   // percent of the logo's own size
	Opacity int    `mapstructure:"opacity"` // 0-255
}

// Output holds output file settings.
type Output struct {
	Quality int    `mapstructure:"quality"` // JPEG quality 1-100
	Resize  int    `mapstructure:"resize"`  // pre-scale percent, 0 = off
	Suffix  string `mapstructure:"suffix"`  // appended to dir and file names
}

// setDefaults registers the built-in defaults on the global viper instance.
func setDefaults() {
	viper.SetDefault("watermark.size", 24)
	viper.SetDefault("watermark.color", "white")
	viper.SetDefault("watermark.position", string(model.PositionBottomRight))
	viper.SetDefault("watermark.opacity", 255)
	viper.SetDefault("watermark.stroke_width", 0)
	viper.SetDefault("watermark.stroke_color", "black")
	viper.SetDefault("watermark.logo.scale", 50)
	viper.SetDefault("watermark.logo.opacity", 255)
	viper.SetDefault("output.quality", 95)
	viper.SetDefault("output.resize", 0)
	viper.SetDefault("output.suffix", "_watermark")
}

// Load reads the configuration. If path is empty only defaults and any
// previously bound flags apply; otherwise the YAML file at path is required.
func Load(path string) (*Config, error) {
	setDefaults()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Spec validates the configuration and builds the immutable watermark spec.
// Any violation fails here, before a single file is read.
func (c *Config) Spec() (model.WatermarkSpec, error) {
	pos, err := model.ParsePosition(c.Watermark.Position)
	if err != nil {
		return model.WatermarkSpec{}, err
	}

	if c.Watermark.Size <= 0 {
		return model.WatermarkSpec{}, fmt.Errorf("invalid font size %d: must be positive", c.Watermark.Size)
	}
	if c.Watermark.Opacity < 0 || c.Watermark.Opacity > 255 {
		return model.WatermarkSpec{}, fmt.Errorf("invalid opacity %d: must be in 0..255", c.Watermark.Opacity)
	}
	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return model.WatermarkSpec{}, fmt.Errorf("invalid quality %d: must be in 1..100", c.Output.Quality)
	}
	if c.Output.Resize < 0 {
		return model.WatermarkSpec{}, fmt.Errorf("invalid resize percent %d", c.Output.Resize)
	}
	if c.Watermark.StrokeWidth < 0 {
		return model.WatermarkSpec{}, fmt.Errorf("invalid stroke width %d", c.Watermark.StrokeWidth)
	}

	col, err := ParseColor(c.Watermark.Color)
	if err != nil {
		return model.WatermarkSpec{}, err
	}
	col.A = uint8(c.Watermark.Opacity)

	stroke, err := ParseColor(c.Watermark.StrokeColor)
	if err != nil {
		return model.WatermarkSpec{}, err
	}

	spec := model.WatermarkSpec{
		FontSize:      c.Watermark.Size,
		FontPath:      c.Watermark.Font,
		Color:         col,
		Position:      pos,
		StrokeWidth:   c.Watermark.StrokeWidth,
		StrokeColor:   stroke,
		Quality:       c.Output.Quality,
		ResizePercent: c.Output.Resize,
		Suffix:        c.Output.Suffix,
	}
	if spec.Suffix == "" {
		spec.Suffix = "_watermark"
	}

	if c.Watermark.Logo.Path != "" {
		if c.Watermark.Logo.Scale <= 0 {
			return model.WatermarkSpec{}, fmt.Errorf("invalid logo scale %d: must be positive", c.Watermark.Logo.Scale)
		}
		if c.Watermark.Logo.Opacity < 0 || c.Watermark.Logo.Opacity > 255 {
			return model.WatermarkSpec{}, fmt.Errorf("invalid logo opacity %d: must be in 0..255", c.Watermark.Logo.Opacity)
		}
		spec.LogoPath = c.Watermark.Logo.Path
		spec.LogoScale = c.Watermark.Logo.Scale
		spec.LogoOpacity = float64(c.Watermark.Logo.Opacity) / 255
	}

	return spec, nil
}

// colorNames maps the color names the original tool accepted.
var colorNames = map[string]color.NRGBA{
	"white":   {255, 255, 255, 255},
	"black":   {0, 0, 0, 255},
	"red":     {255, 0, 0, 255},
	"green":   {0, 128, 0, 255},
	"blue":    {0, 0, 255, 255},
	"yellow":  {255, 255, 0, 255},
	"cyan":    {0, 255, 255, 255},
	"magenta": {255, 0, 255, 255},
	"gray":    {128, 128, 128, 255},
	"grey":    {128, 128, 128, 255},
	"orange":  {255, 165, 0, 255},
	"purple":  {128, 0, 128, 255},
}

// ParseColor resolves a color name or a #RGB / #RRGGBB hex spec.
func ParseColor(s string) (color.NRGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := colorNames[name]; ok {
		return c, nil
	}

	if strings.HasPrefix(name, "#") {
		hex := name[1:]
		switch len(hex) {
		case 3:
			var r, g, b uint8
			if _, err := fmt.Sscanf(hex, "%1x%1x%1x", &r, &g, &b); err == nil {
				return color.NRGBA{r * 17, g * 17, b * 17, 255}, nil
			}
		case 6:
			var r, g, b uint8
			if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err == nil {
				return color.NRGBA{r, g, b, 255}, nil
			}
		}
	}

	return color.NRGBA{}, fmt.Errorf("invalid color %q: expected a color name or #RGB/#RRGGBB", s)
}
