package processor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/photo-datemark/internal/model"
)

// supportedExts is the set of input extensions the batch picks up when
// enumerating a directory. Matching is case-insensitive.
var supportedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
}

// fileStorage defines the interface for file storage.
// It allows saving and loading files from a backend (local FS in this tool).
type fileStorage interface {
	Save(ctx context.Context, dir, filename string, src io.Reader) (string, error)
	Load(ctx context.Context, path string) (io.ReadCloser, error)
}

// dateExtractor derives a capture date for an image file.
type dateExtractor interface {
	ExtractDate(path string) (model.CaptureDate, error)
}

// renderer draws the watermark text onto a copy of the image.
type renderer interface {
	Render(img image.Image, text string) image.Image
}

// Processor runs the per-file watermark pipeline over a file or directory:
// open, extract date, render, encode JPEG, save.
type Processor struct {
	fileStorage fileStorage
	extractor   dateExtractor
	renderer    renderer
	spec        model.WatermarkSpec
}

// New creates a new Processor.
func New(fs fileStorage, ex dateExtractor, r renderer, spec model.WatermarkSpec) *Processor {
	return &Processor{
		fileStorage: fs,
		extractor:   ex,
		renderer:    r,
		spec:        spec,
	}
}

// Process watermarks the file at path, or every supported image directly
// inside the directory at path. Per-file failures are recorded in the
// summary and do not stop the remaining batch; only an unusable input path
// or a cancelled context aborts the run.
func (p *Processor) Process(ctx context.Context, path string) (model.Summary, error) {
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		return model.Summary{}, fmt.Errorf("failed to stat input path: %w", err)
	}

	var (
		sources []string
		srcDir  string
	)

	if info.IsDir() {
		srcDir = path
		sources, err = discover(path)
		if err != nil {
			return model.Summary{}, err
		}
	} else {
		srcDir = filepath.Dir(path)
		sources = []string{path}
	}

	// Output directory is a sibling of the source directory, named after it.
	outDir := filepath.Join(filepath.Dir(srcDir), filepath.Base(srcDir)+p.spec.Suffix)

	summary := model.Summary{Total: len(sources), OutputDir: outDir}

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		task := model.ImageTask{
			ID:         uuid.New(),
			SourcePath: src,
			OutputPath: filepath.Join(outDir, stem+p.spec.Suffix+".jpg"),
		}

		if err := p.processOne(ctx, task); err != nil {
			zlog.Logger.Warn().
				Err(err).
				Str("task_id", task.ID.String()).
				Str("file", task.SourcePath).
				Msg("skipping file")
			summary.Failed++
			summary.Failures = append(summary.Failures, model.Failure{Task: task, Err: err})
			continue
		}

		summary.Processed++
		zlog.Logger.Info().
			Str("task_id", task.ID.String()).
			Str("file", task.SourcePath).
			Str("output", task.OutputPath).
			Msg("watermarked")
	}

	return summary, nil
}

// processOne runs the pipeline for a single task:
// Open -> Extract -> Render -> Encode -> Save.
func (p *Processor) processOne(ctx context.Context, task model.ImageTask) error {
	src, err := p.fileStorage.Load(ctx, task.SourcePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src)
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	date, err := p.extractor.ExtractDate(task.SourcePath)
	if err != nil {
		return fmt.Errorf("failed to extract capture date: %w", err)
	}

	if pct := p.spec.ResizePercent; pct > 0 && pct != 100 {
		img = imaging.Resize(img, img.Bounds().Dx()*pct/100, 0, imaging.Lanczos)
	}

	stamped := p.renderer.Render(img, date.Format())

	// JPEG has no alpha channel, so encoding flattens transparent sources.
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, stamped, imaging.JPEG, imaging.JPEGQuality(p.spec.Quality)); err != nil {
		return fmt.Errorf("failed to encode watermarked image: %w", err)
	}

	dir, filename := filepath.Split(task.OutputPath)
	if _, err := p.fileStorage.Save(ctx, dir, filename, buf); err != nil {
		return fmt.Errorf("failed to save watermarked image: %w", err)
	}

	return nil
}

// discover lists the immediate files in dir whose extension is in the
// supported set. Non-matching entries and subdirectories are skipped.
func discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if supportedExts[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	return files, nil
}
