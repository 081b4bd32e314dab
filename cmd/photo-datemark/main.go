package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/photo-datemark/internal/config"
	"github.com/aliskhannn/photo-datemark/internal/metadata"
	"github.com/aliskhannn/photo-datemark/internal/processor"
	"github.com/aliskhannn/photo-datemark/internal/storage/file"
	"github.com/aliskhannn/photo-datemark/internal/watermark"
)

const version = "0.1.0"

func main() {
	// Context & signals: stop cleanly between files on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	rootCmd := &cobra.Command{
		Use:     "photo-datemark <path>",
		Short:   "Stamp photos with their capture date",
		Long:    "photo-datemark reads image files, extracts the capture date from EXIF metadata (falling back to file modification time) and burns it into the image as a text watermark, writing the results as JPEG into a sibling <dir>_watermark directory.",
		Version: version,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			// All validation happens here, before any file is read.
			spec, err := cfg.Spec()
			if err != nil {
				return err
			}

			renderer, err := watermark.New(spec)
			if err != nil {
				return err
			}

			proc := processor.New(file.NewStorage(), metadata.New(), renderer, spec)

			summary, err := proc.Process(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			cmd.Printf("processed %d of %d file(s), %d failed\n",
				summary.Processed, summary.Total, summary.Failed)
			if summary.Processed > 0 {
				cmd.Printf("output directory: %s\n", summary.OutputDir)
			}
			for _, f := range summary.Failures {
				cmd.PrintErrf("failed: %s: %v\n", f.Task.SourcePath, f.Err)
			}

			if summary.Total > 0 && summary.Processed == 0 {
				return fmt.Errorf("all %d file(s) failed", summary.Failed)
			}

			return nil
		},
	}

	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)
	rootCmd.SilenceUsage = true

	flags := rootCmd.Flags()
	flags.StringVar(&cfgPath, "config", "", "path to an optional YAML config file")
	flags.IntP("size", "s", 24, "font size in points")
	flags.StringP("color", "c", "white", "watermark color (name or #RRGGBB)")
	flags.StringP("position", "p", "bottom-right", "watermark position: top-left, top-right, bottom-left, bottom-right, center")
	flags.String("font", "", "path to a .ttf font file (default: embedded Go Regular)")
	flags.Int("opacity", 255, "text opacity, 0-255")
	flags.Int("stroke-width", 0, "outline thickness in pixels, 0 disables")
	flags.String("stroke-color", "black", "outline color (name or #RRGGBB)")
	flags.String("logo", "", "path to an image watermark to overlay")
	flags.Int("logo-scale", 50, "logo scale as percent of its own size")
	flags.Int("logo-opacity", 255, "logo opacity, 0-255")
	flags.Int("quality", 95, "JPEG quality for output files, 1-100")
	flags.Int("resize", 0, "pre-scale the source image by percent, 0 disables")

	// Flags layer on top of the config file; only explicitly set flags win.
	bindings := map[string]string{
		"watermark.size":         "size",
		"watermark.color":        "color",
		"watermark.position":     "position",
		"watermark.font":         "font",
		"watermark.opacity":      "opacity",
		"watermark.stroke_width": "stroke-width",
		"watermark.stroke_color": "stroke-color",
		"watermark.logo.path":    "logo",
		"watermark.logo.scale":   "logo-scale",
		"watermark.logo.opacity": "logo-opacity",
		"output.quality":         "quality",
		"output.resize":          "resize",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			zlog.Logger.Panic().Err(err).Msgf("failed to bind flag %s", flag)
		}
	}

	return rootCmd
}
