package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"strings"

	"golang.org/x/time/rate"
)

// ContentEntry is one descriptor from the contents listing.
type ContentEntry struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
	Path        string `json:"path"`
	Size        int64  `json:"size"`
}

// IsFile reports whether the entry is a downloadable file.
func (e ContentEntry) IsFile() bool {
	return e.Type == "file" && e.DownloadURL != ""
}

// HasExt reports whether the entry name ends in ext (case-insensitive, with leading dot).
func (e ContentEntry) HasExt(ext string) bool {
	return strings.EqualFold(path.Ext(e.Name), ext)
}

// ContentsClient reads a repository-contents listing and the files it points to.
type ContentsClient struct {
	listURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewContentsClient creates a client for listURL. A non-positive rps disables pacing.
func NewContentsClient(listURL string, client *http.Client, rps float64) *ContentsClient {
	if client == nil {
		client = http.DefaultClient
	}

	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}

	return &ContentsClient{
		listURL:    listURL,
		httpClient: client,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// ListURL returns the listing endpoint.
func (c *ContentsClient) ListURL() string { return c.listURL }

// List fetches the directory listing.
func (c *ContentsClient) List(ctx context.Context) ([]ContentEntry, error) {
	body, err := c.Fetch(ctx, c.listURL)
	if err != nil {
		return nil, err
	}

	var entries []ContentEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode listing: %w", err)
	}
	return entries, nil
}

// Fetch returns the decoded body at url.
func (c *ContentsClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return get(ctx, c.httpClient, url)
}

// FetchJSON fetches url and decodes it into v.
func (c *ContentsClient) FetchJSON(ctx context.Context, url string, v any) error {
	body, err := c.Fetch(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", url, err)
	}
	return nil
}
