package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Storage provides a local filesystem storage backend. Output files are
// written under a directory chosen per call, which is created on demand.
type Storage struct{}

// NewStorage creates a new local disk Storage.
func NewStorage() *Storage {
	return &Storage{}
}

// Save writes the provided reader to dir/filename, creating dir if needed.
// Returns the full path of the written file.
func (s *Storage) Save(ctx context.Context, dir, filename string, src io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		// don't leave a truncated output behind
		_ = s.Delete(ctx, path)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = s.Delete(ctx, path)
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return path, nil
}

// Load opens the file at path and returns a reader for it.
func (s *Storage) Load(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load file: %w", err)
	}

	return f, nil
}

// Delete removes the file at path.
func (s *Storage) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.Remove(path)
}
