package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/photo-datemark/internal/model"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 24, cfg.Watermark.Size)
	assert.Equal(t, "white", cfg.Watermark.Color)
	assert.Equal(t, "bottom-right", cfg.Watermark.Position)
	assert.Equal(t, 255, cfg.Watermark.Opacity)
	assert.Equal(t, 95, cfg.Output.Quality)
	assert.Equal(t, "_watermark", cfg.Output.Suffix)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "config.yml")
	data := []byte("watermark:\n  size: 36\n  position: center\noutput:\n  quality: 80\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 36, cfg.Watermark.Size)
	assert.Equal(t, "center", cfg.Watermark.Position)
	assert.Equal(t, 80, cfg.Output.Quality)
	// untouched keys keep their defaults
	assert.Equal(t, "white", cfg.Watermark.Color)
}

func TestLoadMissingFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestSpecValidation(t *testing.T) {
	base := func() *Config {
		return &Config{
			Watermark: Watermark{
				Size:        24,
				Color:       "white",
				Position:    "bottom-right",
				Opacity:     255,
				StrokeColor: "black",
			},
			Output: Output{Quality: 95, Suffix: "_watermark"},
		}
	}

	t.Run("valid config builds spec", func(t *testing.T) {
		spec, err := base().Spec()
		require.NoError(t, err)
		assert.Equal(t, model.PositionBottomRight, spec.Position)
		assert.Equal(t, color.NRGBA{255, 255, 255, 255}, spec.Color)
		assert.Equal(t, 95, spec.Quality)
	})

	t.Run("invalid position fails", func(t *testing.T) {
		cfg := base()
		cfg.Watermark.Position = "middle"
		_, err := cfg.Spec()
		assert.ErrorContains(t, err, "invalid position")
	})

	t.Run("opacity carried into color alpha", func(t *testing.T) {
		cfg := base()
		cfg.Watermark.Opacity = 128
		spec, err := cfg.Spec()
		require.NoError(t, err)
		assert.Equal(t, uint8(128), spec.Color.A)
	})

	t.Run("non-positive size fails", func(t *testing.T) {
		cfg := base()
		cfg.Watermark.Size = 0
		_, err := cfg.Spec()
		assert.Error(t, err)
	})

	t.Run("quality out of range fails", func(t *testing.T) {
		cfg := base()
		cfg.Output.Quality = 101
		_, err := cfg.Spec()
		assert.Error(t, err)
	})

	t.Run("unknown color fails", func(t *testing.T) {
		cfg := base()
		cfg.Watermark.Color = "blurple"
		_, err := cfg.Spec()
		assert.Error(t, err)
	})

	t.Run("logo opacity normalized", func(t *testing.T) {
		cfg := base()
		cfg.Watermark.Logo = Logo{Path: "logo.png", Scale: 50, Opacity: 255}
		spec, err := cfg.Spec()
		require.NoError(t, err)
		assert.Equal(t, 1.0, spec.LogoOpacity)
		assert.Equal(t, 50, spec.LogoScale)
	})

	t.Run("logo scale zero fails when logo set", func(t *testing.T) {
		cfg := base()
		cfg.Watermark.Logo = Logo{Path: "logo.png", Scale: 0, Opacity: 255}
		_, err := cfg.Spec()
		assert.Error(t, err)
	})
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "white", want: color.NRGBA{255, 255, 255, 255}},
		{in: "Black", want: color.NRGBA{0, 0, 0, 255}},
		{in: " red ", want: color.NRGBA{255, 0, 0, 255}},
		{in: "#ff8800", want: color.NRGBA{255, 136, 0, 255}},
		{in: "#FFF", want: color.NRGBA{255, 255, 255, 255}},
		{in: "#f80", want: color.NRGBA{255, 136, 0, 255}},
		{in: "notacolor", wantErr: true},
		{in: "#12345", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
