package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/better/internal/models"
	"github.com/desertthunder/better/internal/shared"
	"github.com/desertthunder/better/internal/tasks"
	"github.com/urfave/cli/v3"
)

// CoursesList prints the lesson list, noting when the bundled list was used.
func (r *Runner) CoursesList(ctx context.Context, cmd *cli.Command) error {
	res := r.courseLoader().Load(ctx)
	r.logger.Debug("courses loaded", "step", res.Step, "count", len(res.Items))

	if cmd.Bool("json") {
		return r.writeJSON(res, cmd.Bool("pretty"))
	}

	r.writeBanner(res.Banner)
	r.writePlainHeader("Courses")
	for _, c := range res.Items {
		r.writePlain("%-6s %s\n", c.ID, c.Title)
	}
	return nil
}

// CoursesOpen opens a lesson's external page or video.
func (r *Runner) CoursesOpen(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: course id", shared.ErrMissingArgument)
	}

	res := r.courseLoader().Load(ctx)
	for _, c := range res.Items {
		if c.ID != id {
			continue
		}
		link := c.Link()
		if link == "" {
			return fmt.Errorf("%w: course %s has no link", shared.ErrNotFound, id)
		}
		if err := r.opener.Open(ctx, link); err != nil {
			return fmt.Errorf("failed to open course %s: %w", id, err)
		}
		r.writePlain("✓ Opened %s %s\n", c.ID, c.Title)
		return nil
	}
	return fmt.Errorf("%w: course %s", shared.ErrNotFound, id)
}

// NutritionList prints meal plans and marks those already downloaded.
func (r *Runner) NutritionList(ctx context.Context, cmd *cli.Command) error {
	res := r.mealPlanLoader().Load(ctx)
	r.logger.Debug("meal plans loaded", "step", res.Step, "count", len(res.Items))

	if cmd.Bool("json") {
		return r.writeJSON(res, cmd.Bool("pretty"))
	}

	downloaded := map[string]bool{}
	if repo, err := r.downloads(); err == nil {
		if rows, err := repo.List(ctx); err == nil {
			for _, d := range rows {
				downloaded[d.Filename] = true
			}
		}
	} else {
		r.logger.Warn("download history unavailable", "error", err)
	}

	r.writeBanner(res.Banner)
	r.writePlainHeader("Nutrition")
	for _, p := range res.Items {
		mark := " "
		if downloaded[p.Filename] {
			mark = "✓"
		}
		r.writePlain("%s %-32s %s\n", mark, p.Title, p.Filename)
	}
	return nil
}

// NutritionOpen downloads a plan when missing and hands the file to the system viewer.
func (r *Runner) NutritionOpen(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("plan")
	if query == "" {
		return fmt.Errorf("%w: meal plan title or filename", shared.ErrMissingArgument)
	}

	plan, err := findMealPlan(r.mealPlanLoader().Load(ctx).Items, query)
	if err != nil {
		return err
	}

	docs, err := r.documents()
	if err != nil {
		return err
	}

	if cmd.Bool("download-only") {
		path, err := docs.Ensure(ctx, plan)
		if err != nil {
			return err
		}
		r.writePlain("✓ Saved %s\n", path)
		return nil
	}

	path, err := docs.Open(ctx, plan)
	if err != nil {
		if errors.Is(err, tasks.ErrOpenFailed) && path != "" {
			r.writePlain("PDF saved to %s\n", path)
		}
		return err
	}
	r.writePlain("✓ Opened %s\n", path)
	return nil
}

func findMealPlan(plans []models.MealPlan, query string) (models.MealPlan, error) {
	for _, p := range plans {
		if strings.EqualFold(p.Filename, query) || strings.EqualFold(p.Title, query) {
			return p, nil
		}
	}
	return models.MealPlan{}, fmt.Errorf("%w: meal plan %q", shared.ErrNotFound, query)
}

// NutritionDownloads prints the download history.
func (r *Runner) NutritionDownloads(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.downloads()
	if err != nil {
		return err
	}

	rows, err := repo.List(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(rows, cmd.Bool("pretty"))
	}

	if len(rows) == 0 {
		r.writePlain("No meal plans downloaded yet\n")
		return nil
	}
	for _, d := range rows {
		r.writePlain("%-40s %8d bytes  %s\n", d.Filename, d.Size, d.DownloadedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// NutritionForget deletes a downloaded file and its history row.
func (r *Runner) NutritionForget(ctx context.Context, cmd *cli.Command) error {
	filename := cmd.StringArg("filename")
	if filename == "" {
		return fmt.Errorf("%w: filename", shared.ErrMissingArgument)
	}

	dir, err := r.config.DocumentsDir()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	repo, err := r.downloads()
	if err != nil {
		return err
	}
	if err := repo.Forget(ctx, filepath.Base(filename)); err != nil {
		return err
	}

	r.writePlain("✓ Removed %s\n", filepath.Base(filename))
	return nil
}

// CheckInList prints the check-in forms.
func (r *Runner) CheckInList(ctx context.Context, cmd *cli.Command) error {
	forms := r.catalog.CheckInForms
	if cmd.Bool("json") {
		return r.writeJSON(forms, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Weekly Check In")
	for _, f := range forms {
		r.writePlain("%s\n  %s\n", f.Name, f.URL)
	}
	return nil
}

// CheckInOpen opens a form by name, or the first form.
func (r *Runner) CheckInOpen(ctx context.Context, cmd *cli.Command) error {
	forms := r.catalog.CheckInForms
	if len(forms) == 0 {
		return fmt.Errorf("%w: no check-in forms", shared.ErrNotFound)
	}

	form := forms[0]
	if name := cmd.StringArg("name"); name != "" {
		f, ok := r.catalog.CheckInForm(name)
		if !ok {
			return fmt.Errorf("%w: check-in form %q", shared.ErrNotFound, name)
		}
		form = f
	}
	return r.openLink(ctx, form.Name, form.URL)
}

// PodcastsList prints the podcasts.
func (r *Runner) PodcastsList(ctx context.Context, cmd *cli.Command) error {
	podcasts := r.catalog.Podcasts
	if cmd.Bool("json") {
		return r.writeJSON(podcasts, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Podcasts")
	for _, p := range podcasts {
		r.writePlain("%s\n  %s\n", p.Title, p.Description)
	}
	return nil
}

// PodcastsOpen opens a podcast by title, or the first one.
func (r *Runner) PodcastsOpen(ctx context.Context, cmd *cli.Command) error {
	podcasts := r.catalog.Podcasts
	if len(podcasts) == 0 {
		return fmt.Errorf("%w: no podcasts", shared.ErrNotFound)
	}

	title := cmd.StringArg("title")
	if title == "" {
		return r.openLink(ctx, podcasts[0].Title, podcasts[0].URL)
	}
	for _, p := range podcasts {
		if strings.EqualFold(p.Title, title) {
			return r.openLink(ctx, p.Title, p.URL)
		}
	}
	return fmt.Errorf("%w: podcast %q", shared.ErrNotFound, title)
}

// LinksList prints external platforms.
func (r *Runner) LinksList(ctx context.Context, cmd *cli.Command) error {
	links := r.catalog.Links
	if cmd.Bool("json") {
		return r.writeJSON(links, cmd.Bool("pretty"))
	}

	r.writePlainHeader("External Links")
	for _, l := range links {
		r.writePlain("%-20s %s\n", l.Name, l.URL)
	}
	return nil
}

// LinksOpen opens an external platform by name.
func (r *Runner) LinksOpen(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: link name", shared.ErrMissingArgument)
	}

	link, ok := r.catalog.Link(name)
	if !ok {
		return fmt.Errorf("%w: link %q", shared.ErrNotFound, name)
	}
	return r.openLink(ctx, link.Name, link.URL)
}

func (r *Runner) openLink(ctx context.Context, label, url string) error {
	if err := r.opener.Open(ctx, url); err != nil {
		return fmt.Errorf("failed to open %s: %w", label, err)
	}
	r.writePlain("✓ Opened %s\n", label)
	return nil
}

func (r *Runner) writeBanner(banner string) {
	if banner == "" {
		return
	}
	r.logger.Warn(banner)
	r.writePlain("! %s\n\n", banner)
}
