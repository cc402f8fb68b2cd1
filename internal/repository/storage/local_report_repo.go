package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// LocalReportRepository implements domain.ReportStorage on the local filesystem
type LocalReportRepository struct {
	dir string
}

// NewLocalReportRepository creates a repository rooted at dir
func NewLocalReportRepository(dir string) (*LocalReportRepository, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve report dir: %w", err)
	}
	return &LocalReportRepository{dir: abs}, nil
}

// Upload writes the report below the root directory
func (r *LocalReportRepository) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) error {
	target := filepath.Join(r.dir, filepath.FromSlash(objectPath))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create report dir: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, data)
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if written != size {
		return fmt.Errorf("short write: %d of %d bytes", written, size)
	}
	return f.Close()
}

// GeneratePresignedURL returns a file URL. Local files do not expire.
func (r *LocalReportRepository) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	target := filepath.Join(r.dir, filepath.FromSlash(objectPath))
	if _, err := os.Stat(target); err != nil {
		return "", fmt.Errorf("report %s: %w", objectPath, err)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(target)}).String(), nil
}
