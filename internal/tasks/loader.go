package tasks

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/better/internal/catalog"
	"github.com/desertthunder/better/internal/models"
	"github.com/desertthunder/better/internal/services"
)

const manifestName = "manifest.json"

const (
	CoursesBanner   = "Couldn't load the latest courses. Showing saved lessons."
	MealPlansBanner = "Couldn't load the latest meal plans. Showing saved plans."
)

var (
	errNoManifest = errors.New("listing has no manifest.json")
	errNoItems    = errors.New("no valid items")
)

// ContentSource lists a remote directory and fetches JSON files from it.
type ContentSource interface {
	List(ctx context.Context) ([]services.ContentEntry, error)
	FetchJSON(ctx context.Context, url string, v any) error
}

// Item is a record the loader can validate and deduplicate.
type Item interface {
	models.Keyed
	models.Validator
}

// Result is what a screen renders: the items and an optional non-blocking banner.
type Result[T any] struct {
	Items    []T
	Banner   string
	Fallback bool
	Step     string
}

// Loader fetches a remote list and substitutes a bundled list when that fails.
type Loader[T Item] struct {
	Source ContentSource
	// Ext selects listing entries for the per-item pass, e.g. ".json".
	Ext string
	// FromEntry turns one listing entry into an item.
	FromEntry func(ctx context.Context, src ContentSource, e services.ContentEntry) (T, error)
	Compare   func(a, b T) int
	Fallback  func() []T
	Banner    string
	Logger    *log.Logger
	Progress  chan<- ProgressUpdate
}

// NewCourseLoader loads lessons from JSON files, ordered by dotted id.
func NewCourseLoader(src ContentSource, logger *log.Logger) *Loader[models.Course] {
	return &Loader[models.Course]{
		Source: src,
		Ext:    ".json",
		FromEntry: func(ctx context.Context, src ContentSource, e services.ContentEntry) (models.Course, error) {
			var c models.Course
			err := src.FetchJSON(ctx, e.DownloadURL, &c)
			return c, err
		},
		Compare:  func(a, b models.Course) int { return models.CompareIDs(a.ID, b.ID) },
		Fallback: catalog.FallbackCourses,
		Banner:   CoursesBanner,
		Logger:   logger,
	}
}

// NewMealPlanLoader builds meal plans from PDF entries, ordered by title.
func NewMealPlanLoader(src ContentSource, logger *log.Logger) *Loader[models.MealPlan] {
	return &Loader[models.MealPlan]{
		Source: src,
		Ext:    ".pdf",
		FromEntry: func(_ context.Context, _ ContentSource, e services.ContentEntry) (models.MealPlan, error) {
			return models.NewMealPlan(e.Name, e.DownloadURL, e.Size), nil
		},
		Compare: func(a, b models.MealPlan) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		},
		Fallback: catalog.FallbackMealPlans,
		Banner:   MealPlansBanner,
		Logger:   logger,
	}
}

// Load runs listing → manifest or per-item → bundled fallback. It never fails.
func (l *Loader[T]) Load(ctx context.Context) Result[T] {
	lister := &onceLister{src: l.Source}

	chain := Chain[[]T]{
		Attempts: []Attempt[[]T]{
			{Name: "manifest", Phase: FetchManifest, Run: func(ctx context.Context) ([]T, error) {
				return l.fromManifest(ctx, lister)
			}},
			{Name: "items", Phase: FetchItems, Run: func(ctx context.Context) ([]T, error) {
				return l.fromItems(ctx, lister)
			}},
		},
		Terminal: &Attempt[[]T]{Name: "fallback", Phase: LoadFallback, Run: func(context.Context) ([]T, error) {
			return l.Fallback(), nil
		}},
		Logger:   l.Logger,
		Progress: l.Progress,
	}

	out, err := chain.Run(ctx)
	if err != nil {
		// only a cancelled context reaches here
		l.logger().Error("content load aborted", "error", err)
		return Result[T]{Items: l.Fallback(), Banner: l.Banner, Fallback: true, Step: "fallback"}
	}

	if out.Terminal {
		return Result[T]{Items: out.Value, Banner: l.Banner, Fallback: true, Step: out.Step}
	}
	return Result[T]{Items: out.Value, Step: out.Step}
}

// Refresh re-runs [Loader.Load]; a success clears any previous banner.
func (l *Loader[T]) Refresh(ctx context.Context) Result[T] {
	return l.Load(ctx)
}

func (l *Loader[T]) fromManifest(ctx context.Context, lister *onceLister) ([]T, error) {
	entries, err := lister.list(ctx)
	if err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(entries, func(e services.ContentEntry) bool {
		return e.IsFile() && strings.EqualFold(e.Name, manifestName)
	})
	if idx < 0 {
		return nil, errNoManifest
	}

	var items []T
	if err := l.Source.FetchJSON(ctx, entries[idx].DownloadURL, &items); err != nil {
		return nil, err
	}
	return l.finalize(items)
}

func (l *Loader[T]) fromItems(ctx context.Context, lister *onceLister) ([]T, error) {
	entries, err := lister.list(ctx)
	if err != nil {
		return nil, err
	}

	var items []T
	for _, e := range entries {
		if !e.IsFile() || !e.HasExt(l.Ext) || strings.EqualFold(e.Name, manifestName) {
			continue
		}

		item, err := l.FromEntry(ctx, l.Source, e)
		if err != nil {
			l.logger().Warn("skipping item", "name", e.Name, "error", err)
			continue
		}
		items = append(items, item)
	}
	return l.finalize(items)
}

// finalize drops invalid items and duplicate keys (first wins) then sorts.
func (l *Loader[T]) finalize(items []T) ([]T, error) {
	seen := make(map[string]bool, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			l.logger().Warn("skipping invalid item", "error", err)
			continue
		}
		if seen[item.Key()] {
			continue
		}
		seen[item.Key()] = true
		out = append(out, item)
	}

	if len(out) == 0 {
		return nil, errNoItems
	}

	slices.SortStableFunc(out, l.Compare)
	return out, nil
}

func (l *Loader[T]) logger() *log.Logger {
	if l.Logger == nil {
		return log.Default()
	}
	return l.Logger
}

// onceLister lists the directory at most once per load.
type onceLister struct {
	src     ContentSource
	done    bool
	entries []services.ContentEntry
	err     error
}

func (o *onceLister) list(ctx context.Context) ([]services.ContentEntry, error) {
	if !o.done {
		o.entries, o.err = o.src.List(ctx)
		if o.err != nil {
			o.err = fmt.Errorf("listing failed: %w", o.err)
		}
		o.done = true
	}
	return o.entries, o.err
}
