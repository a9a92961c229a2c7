package tasks

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/desertthunder/better/internal/models"
	"github.com/desertthunder/better/internal/repositories"
	"github.com/desertthunder/better/internal/shared"
	tu "github.com/desertthunder/better/internal/testing"
)

type fakeDownloader struct {
	body  string
	err   error
	calls int
}

func (f *fakeDownloader) Fetch(context.Context, string) ([]byte, error) {
	f.calls++
	return []byte(f.body), f.err
}

type recorder struct{ rows []repositories.Download }

func (r *recorder) Record(_ context.Context, d repositories.Download) error {
	r.rows = append(r.rows, d)
	return nil
}

func TestDocumentCache(t *testing.T) {
	ctx := context.Background()
	logger := shared.DiscardLogger()
	plan := models.NewMealPlan("High_protein_snack_ideas.pdf", "https://x/High_protein_snack_ideas.pdf", 0)

	t.Run("Downloads once", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "documents")
		dl := &fakeDownloader{body: "%PDF-1.4"}
		rec := &recorder{}
		cache := NewDocumentCache(dir, dl, rec, &tu.FakeOpener{}, logger)

		path, err := cache.Ensure(ctx, plan)
		if err != nil {
			t.Fatalf("ensure failed: %v", err)
		}
		if path != filepath.Join(dir, "High_protein_snack_ideas.pdf") {
			t.Errorf("unexpected path %s", path)
		}
		if tu.MustReadFile(t, path) != "%PDF-1.4" {
			t.Error("unexpected file contents")
		}

		if _, err := cache.Ensure(ctx, plan); err != nil {
			t.Fatalf("second ensure failed: %v", err)
		}
		if dl.calls != 1 {
			t.Errorf("cached file should not be downloaded again, got %d calls", dl.calls)
		}
		if len(rec.rows) != 1 || rec.rows[0].Size != 8 {
			t.Errorf("unexpected bookkeeping %+v", rec.rows)
		}
	})

	t.Run("Download failure", func(t *testing.T) {
		cache := NewDocumentCache(t.TempDir(), &fakeDownloader{err: errors.New("offline")}, nil, &tu.FakeOpener{}, logger)
		if _, err := cache.Ensure(ctx, plan); !errors.Is(err, ErrDownloadFailed) {
			t.Errorf("expected ErrDownloadFailed, got %v", err)
		}
	})

	t.Run("Open", func(t *testing.T) {
		opener := &tu.FakeOpener{}
		cache := NewDocumentCache(t.TempDir(), &fakeDownloader{body: "pdf"}, nil, opener, logger)
		path, err := cache.Open(ctx, plan)
		if err != nil {
			t.Fatalf("open failed: %v", err)
		}
		tu.AssertFileExists(t, path)
		if len(opener.Opened) != 1 || opener.Opened[0] != path {
			t.Errorf("expected %s to be opened, got %v", path, opener.Opened)
		}
	})

	t.Run("Open failure", func(t *testing.T) {
		dir := t.TempDir()
		opener := &tu.FakeOpener{Fail: []string{dir}}
		cache := NewDocumentCache(dir, &fakeDownloader{body: "pdf"}, nil, opener, logger)
		if _, err := cache.Open(ctx, plan); !errors.Is(err, ErrOpenFailed) {
			t.Errorf("expected ErrOpenFailed, got %v", err)
		}
	})

	t.Run("Filename cannot escape the directory", func(t *testing.T) {
		dir := t.TempDir()
		cache := NewDocumentCache(dir, &fakeDownloader{}, nil, &tu.FakeOpener{}, logger)
		p := models.MealPlan{Filename: "../../etc/passwd.pdf", URL: "https://x"}
		if got := cache.Path(p); got != filepath.Join(dir, "passwd.pdf") {
			t.Errorf("unexpected path %s", got)
		}
	})
}
