package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Download records a document cached under the documents directory.
type Download struct {
	Filename     string
	SourceURL    string
	Size         int64
	DownloadedAt time.Time
}

// DownloadRepository tracks cached documents.
type DownloadRepository struct {
	db *sql.DB
}

func NewDownloadRepository(db *sql.DB) *DownloadRepository {
	return &DownloadRepository{db: db}
}

// Record upserts the bookkeeping row for filename.
func (r *DownloadRepository) Record(ctx context.Context, d Download) error {
	if d.DownloadedAt.IsZero() {
		d.DownloadedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO downloads (filename, source_url, size, downloaded_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(filename) DO UPDATE SET
			source_url = excluded.source_url, size = excluded.size, downloaded_at = excluded.downloaded_at
	`
	if _, err := r.db.ExecContext(ctx, query, d.Filename, d.SourceURL, d.Size, d.DownloadedAt); err != nil {
		return fmt.Errorf("failed to record download: %w", err)
	}
	return nil
}

// Get returns the row for filename or ok=false.
func (r *DownloadRepository) Get(ctx context.Context, filename string) (*Download, bool, error) {
	var d Download
	err := r.db.QueryRowContext(ctx,
		"SELECT filename, source_url, size, downloaded_at FROM downloads WHERE filename = ?", filename,
	).Scan(&d.Filename, &d.SourceURL, &d.Size, &d.DownloadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query download: %w", err)
	}
	return &d, true, nil
}

// List returns all recorded downloads ordered by filename.
func (r *DownloadRepository) List(ctx context.Context) ([]Download, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT filename, source_url, size, downloaded_at FROM downloads ORDER BY filename")
	if err != nil {
		return nil, fmt.Errorf("failed to list downloads: %w", err)
	}
	defer rows.Close()

	var out []Download
	for rows.Next() {
		var d Download
		if err := rows.Scan(&d.Filename, &d.SourceURL, &d.Size, &d.DownloadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan download: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Forget drops the row for filename.
func (r *DownloadRepository) Forget(ctx context.Context, filename string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM downloads WHERE filename = ?", filename); err != nil {
		return fmt.Errorf("failed to forget download: %w", err)
	}
	return nil
}
