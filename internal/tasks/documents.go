package tasks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/better/internal/models"
	"github.com/desertthunder/better/internal/repositories"
)

var (
	ErrDownloadFailed = errors.New("failed to download the PDF")
	ErrOpenFailed     = errors.New("could not share/open the PDF")
)

// Downloader fetches a remote file.
type Downloader interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// DownloadRecorder keeps bookkeeping rows for cached files.
type DownloadRecorder interface {
	Record(ctx context.Context, d repositories.Download) error
}

// URLOpener hands a path or URL to the system handler.
type URLOpener interface {
	Open(ctx context.Context, url string) error
}

// DocumentCache stores meal-plan PDFs under a documents directory keyed by filename.
type DocumentCache struct {
	dir      string
	fetcher  Downloader
	recorder DownloadRecorder
	opener   URLOpener
	logger   *log.Logger
	Progress chan<- ProgressUpdate
}

// NewDocumentCache creates a cache rooted at dir. recorder may be nil.
func NewDocumentCache(dir string, fetcher Downloader, recorder DownloadRecorder, opener URLOpener, logger *log.Logger) *DocumentCache {
	return &DocumentCache{dir: dir, fetcher: fetcher, recorder: recorder, opener: opener, logger: logger}
}

// Path is the deterministic location for plan's file.
func (c *DocumentCache) Path(plan models.MealPlan) string {
	return filepath.Join(c.dir, filepath.Base(plan.Filename))
}

// Ensure downloads plan when it is not cached yet and returns its path.
func (c *DocumentCache) Ensure(ctx context.Context, plan models.MealPlan) (string, error) {
	path := c.Path(plan)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	sendProgress(c.Progress, downloadUpdate(plan.Filename, false))

	data, err := c.fetcher.Fetch(ctx, plan.URL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return "", fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}

	tmp, err := os.CreateTemp(c.dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("%w: PDF file not found after download: %w", ErrDownloadFailed, err)
	}

	if c.recorder != nil {
		d := repositories.Download{Filename: filepath.Base(path), SourceURL: plan.URL, Size: int64(len(data))}
		if err := c.recorder.Record(ctx, d); err != nil {
			c.logger.Warn("could not record download", "file", d.Filename, "error", err)
		}
	}

	sendProgress(c.Progress, downloadUpdate(plan.Filename, true))
	return path, nil
}

// Open ensures plan is cached and opens it with the system viewer.
func (c *DocumentCache) Open(ctx context.Context, plan models.MealPlan) (string, error) {
	path, err := c.Ensure(ctx, plan)
	if err != nil {
		return "", err
	}
	if err := c.opener.Open(ctx, path); err != nil {
		return path, fmt.Errorf("%w: %s: %w", ErrOpenFailed, path, err)
	}
	return path, nil
}
