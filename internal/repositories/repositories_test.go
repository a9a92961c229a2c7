package repositories

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/desertthunder/better/internal/models"
	"github.com/desertthunder/better/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// brokenKV fails every operation.
type brokenKV struct{}

func (brokenKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk unavailable")
}
func (brokenKV) Set(context.Context, string, string) error { return errors.New("disk unavailable") }
func (brokenKV) Delete(context.Context, string) error      { return errors.New("disk unavailable") }

// flakyKV fails the next Get once, then delegates.
type flakyKV struct {
	KeyValue
	failGet bool
}

func (f *flakyKV) Get(ctx context.Context, key string) (string, bool, error) {
	if f.failGet {
		f.failGet = false
		return "", false, errors.New("database is locked")
	}
	return f.KeyValue.Get(ctx, key)
}

func TestKVStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing key", func(t *testing.T) {
		kv := NewKVStore(setupTestDB(t))
		v, ok, err := kv.Get(ctx, "nope")
		if err != nil || ok || v != "" {
			t.Errorf("expected empty miss, got %q %v %v", v, ok, err)
		}
	})

	t.Run("Set then get", func(t *testing.T) {
		kv := NewKVStore(setupTestDB(t))
		if err := kv.Set(ctx, "a", "1"); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		if err := kv.Set(ctx, "a", "2"); err != nil {
			t.Fatalf("overwrite failed: %v", err)
		}

		v, ok, err := kv.Get(ctx, "a")
		if err != nil || !ok || v != "2" {
			t.Errorf("expected 2, got %q %v %v", v, ok, err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		kv := NewKVStore(setupTestDB(t))
		_ = kv.Set(ctx, "a", "1")
		if err := kv.Delete(ctx, "a"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if err := kv.Delete(ctx, "a"); err != nil {
			t.Errorf("deleting missing key should not fail: %v", err)
		}
		if _, ok, _ := kv.Get(ctx, "a"); ok {
			t.Error("key should be gone")
		}
	})
}

func TestTokenStore(t *testing.T) {
	ctx := context.Background()
	kv := NewKVStore(setupTestDB(t))
	store := NewTokenStore(kv)

	t.Run("Empty", func(t *testing.T) {
		tok, err := store.Token(ctx)
		if err != nil || tok != "" {
			t.Errorf("expected no token, got %q %v", tok, err)
		}
	})

	t.Run("Set trims", func(t *testing.T) {
		if err := store.SetToken(ctx, "  abc123 \n"); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		tok, _ := store.Token(ctx)
		if tok != "abc123" {
			t.Errorf("expected abc123, got %q", tok)
		}

		raw, _, _ := kv.Get(ctx, TokenKey)
		if raw != "abc123" {
			t.Errorf("expected token under %s, got %q", TokenKey, raw)
		}
	})

	t.Run("Blank clears", func(t *testing.T) {
		_ = store.SetToken(ctx, "abc")
		if err := store.SetToken(ctx, "   "); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		if tok, _ := store.Token(ctx); tok != "" {
			t.Errorf("expected cleared token, got %q", tok)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		_ = store.SetToken(ctx, "abc")
		if err := store.Clear(ctx); err != nil {
			t.Fatalf("clear failed: %v", err)
		}
		if tok, _ := store.Token(ctx); tok != "" {
			t.Errorf("expected cleared token, got %q", tok)
		}
	})
}

func TestCalendarRepository(t *testing.T) {
	ctx := context.Background()
	logger := shared.NewLogger(io.Discard)

	event := func(id string, day int) models.CalendarEvent {
		return models.CalendarEvent{
			ID:    id,
			Title: "Event " + id,
			Date:  time.Date(2024, time.July, day, 0, 0, 0, 0, time.UTC),
			Time:  "10:00 AM",
		}
	}

	t.Run("Empty load", func(t *testing.T) {
		repo := NewCalendarRepository(NewKVStore(setupTestDB(t)), logger)
		if got := repo.Load(ctx); len(got) != 0 {
			t.Errorf("expected empty calendar, got %d", len(got))
		}
	})

	t.Run("Add preserves dates and sorts", func(t *testing.T) {
		repo := NewCalendarRepository(NewKVStore(setupTestDB(t)), logger)
		for _, e := range []models.CalendarEvent{event("b", 20), event("a", 3)} {
			if ok, err := repo.Add(ctx, e); err != nil || !ok {
				t.Fatalf("add %s failed: %v %v", e.ID, ok, err)
			}
		}

		got := repo.Load(ctx)
		if len(got) != 2 {
			t.Fatalf("expected 2 events, got %d", len(got))
		}
		if got[0].ID != "a" || got[1].ID != "b" {
			t.Errorf("expected date order, got %s, %s", got[0].ID, got[1].ID)
		}
		if !got[0].Date.Equal(event("a", 3).Date) {
			t.Errorf("date did not round-trip: %v", got[0].Date)
		}
	})

	t.Run("Duplicate id rejected", func(t *testing.T) {
		repo := NewCalendarRepository(NewKVStore(setupTestDB(t)), logger)
		_, _ = repo.Add(ctx, event("a", 3))
		ok, err := repo.Add(ctx, event("a", 9))
		if err != nil || ok {
			t.Errorf("expected duplicate to be skipped, got %v %v", ok, err)
		}
		if got := repo.Load(ctx); len(got) != 1 {
			t.Errorf("expected 1 event, got %d", len(got))
		}
	})

	t.Run("Invalid event", func(t *testing.T) {
		repo := NewCalendarRepository(NewKVStore(setupTestDB(t)), logger)
		if _, err := repo.Add(ctx, models.CalendarEvent{ID: "x"}); !errors.Is(err, models.ErrInvalidRecord) {
			t.Errorf("expected ErrInvalidRecord, got %v", err)
		}
	})

	t.Run("Seed is idempotent", func(t *testing.T) {
		repo := NewCalendarRepository(NewKVStore(setupTestDB(t)), logger)
		first, err := repo.SeedPromotional(ctx)
		if err != nil || !first {
			t.Fatalf("first seed should insert: %v %v", first, err)
		}
		second, err := repo.SeedPromotional(ctx)
		if err != nil || second {
			t.Fatalf("second seed should be a no-op: %v %v", second, err)
		}

		events := repo.Load(ctx)
		if len(events) != 1 || events[0].ID != PromotionalEventID {
			t.Fatalf("expected only the promotional event, got %+v", events)
		}

		day := time.Date(2024, time.June, 28, 12, 0, 0, 0, time.Local)
		if on := repo.EventsOn(ctx, day); len(on) != 1 {
			t.Errorf("expected event on 28 June, got %d", len(on))
		}
	})

	t.Run("Remove", func(t *testing.T) {
		repo := NewCalendarRepository(NewKVStore(setupTestDB(t)), logger)
		_, _ = repo.Add(ctx, event("a", 3))
		_, _ = repo.Add(ctx, event("b", 4))

		if ok, err := repo.Remove(ctx, "a"); err != nil || !ok {
			t.Fatalf("remove failed: %v %v", ok, err)
		}
		if ok, _ := repo.Remove(ctx, "a"); ok {
			t.Error("second remove should report nothing removed")
		}
		if got := repo.Load(ctx); len(got) != 1 || got[0].ID != "b" {
			t.Errorf("unexpected events %+v", got)
		}
	})

	t.Run("Corrupt value loads empty", func(t *testing.T) {
		kv := NewKVStore(setupTestDB(t))
		_ = kv.Set(ctx, CalendarKey, "{not json")
		repo := NewCalendarRepository(kv, logger)
		if got := repo.Load(ctx); len(got) != 0 {
			t.Errorf("expected empty list, got %d", len(got))
		}
	})

	t.Run("Read failure does not overwrite stored events", func(t *testing.T) {
		kv := &flakyKV{KeyValue: NewKVStore(setupTestDB(t))}
		repo := NewCalendarRepository(kv, logger)
		for i, id := range []string{"a", "b", "c"} {
			if _, err := repo.Add(ctx, event(id, i+1)); err != nil {
				t.Fatalf("add %s failed: %v", id, err)
			}
		}

		kv.failGet = true
		if ok, err := repo.Add(ctx, event("d", 4)); err == nil || ok {
			t.Errorf("expected add to fail on read error, got %v %v", ok, err)
		}
		kv.failGet = true
		if ok, err := repo.Remove(ctx, "a"); err == nil || ok {
			t.Errorf("expected remove to fail on read error, got %v %v", ok, err)
		}
		kv.failGet = true
		if _, err := repo.SeedPromotional(ctx); err == nil {
			t.Error("expected seed to fail on read error")
		}

		if got := repo.Load(ctx); len(got) != 3 {
			t.Errorf("stored events lost: want 3, got %d", len(got))
		}
	})

	t.Run("Storage failure", func(t *testing.T) {
		repo := NewCalendarRepository(brokenKV{}, logger)
		if got := repo.Load(ctx); len(got) != 0 {
			t.Errorf("expected empty list, got %d", len(got))
		}
		if err := repo.Save(ctx, []models.CalendarEvent{event("a", 1)}); err == nil {
			t.Error("expected save error")
		}
	})
}

func TestDownloadRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Record and get", func(t *testing.T) {
		repo := NewDownloadRepository(setupTestDB(t))
		d := Download{Filename: "plan.pdf", SourceURL: "https://example.com/plan.pdf", Size: 42}
		if err := repo.Record(ctx, d); err != nil {
			t.Fatalf("record failed: %v", err)
		}

		got, ok, err := repo.Get(ctx, "plan.pdf")
		if err != nil || !ok {
			t.Fatalf("get failed: %v %v", ok, err)
		}
		if got.Size != 42 || got.SourceURL != d.SourceURL {
			t.Errorf("unexpected row %+v", got)
		}
		if got.DownloadedAt.IsZero() {
			t.Error("downloaded_at should be set")
		}
	})

	t.Run("Upsert", func(t *testing.T) {
		repo := NewDownloadRepository(setupTestDB(t))
		_ = repo.Record(ctx, Download{Filename: "a.pdf", SourceURL: "u1", Size: 1})
		_ = repo.Record(ctx, Download{Filename: "a.pdf", SourceURL: "u2", Size: 2})

		list, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(list) != 1 || list[0].Size != 2 {
			t.Errorf("expected single updated row, got %+v", list)
		}
	})

	t.Run("Missing and forget", func(t *testing.T) {
		repo := NewDownloadRepository(setupTestDB(t))
		if _, ok, err := repo.Get(ctx, "none.pdf"); ok || err != nil {
			t.Errorf("expected miss, got %v %v", ok, err)
		}

		_ = repo.Record(ctx, Download{Filename: "a.pdf", SourceURL: "u"})
		if err := repo.Forget(ctx, "a.pdf"); err != nil {
			t.Fatalf("forget failed: %v", err)
		}
		if _, ok, _ := repo.Get(ctx, "a.pdf"); ok {
			t.Error("row should be gone")
		}
	})
}
