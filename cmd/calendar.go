package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/better/internal/formatter"
	"github.com/desertthunder/better/internal/models"
	"github.com/desertthunder/better/internal/repositories"
	"github.com/desertthunder/better/internal/shared"
	"github.com/desertthunder/better/internal/tasks"
	"github.com/urfave/cli/v3"
)

// CalendarList prints or exports saved events, optionally for one day.
func (r *Runner) CalendarList(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.calendarRepo()
	if err != nil {
		return err
	}

	events := repo.Load(ctx)
	if s := cmd.String("day"); s != "" {
		day, err := parseDate(s, r.now().Location())
		if err != nil {
			return err
		}
		events = repositories.EventsOn(events, day)
	}

	if cmd.Bool("json") {
		return r.writeJSON(events, cmd.Bool("pretty"))
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	data, err := formatter.FormatEvents(format, events)
	if err != nil {
		return err
	}

	if out := cmd.String("output"); out != "" {
		path, err := formatter.WriteExport(format, data, out, "")
		if err != nil {
			return err
		}
		r.writePlain("✓ Events written to %s\n", path)
		return nil
	}

	if len(events) == 0 {
		r.writePlain("No events\n")
		return nil
	}
	return r.writePlain("%s", data)
}

// CalendarMonth prints a Sunday-first month grid; days with events are marked with *.
func (r *Runner) CalendarMonth(ctx context.Context, cmd *cli.Command) error {
	month := r.now()
	if s := cmd.String("month"); s != "" {
		m, err := time.ParseInLocation("2006-01", s, r.now().Location())
		if err != nil {
			return fmt.Errorf("%w: month %q must be YYYY-MM", shared.ErrInvalidArgument, s)
		}
		month = m
	}

	repo, err := r.calendarRepo()
	if err != nil {
		return err
	}
	events := repo.Load(ctx)

	r.writePlain("%s\n", month.Format("January 2006"))
	r.writePlain(" Su  Mo  Tu  We  Th  Fr  Sa\n")
	for _, week := range tasks.MonthGrid(month) {
		var b strings.Builder
		for _, d := range week {
			mark := " "
			if len(repositories.EventsOn(events, d)) > 0 {
				mark = "*"
			}
			if d.Month() != month.Month() {
				b.WriteString("    ")
				continue
			}
			b.WriteString(fmt.Sprintf("%3d%s", d.Day(), mark))
		}
		r.writePlain("%s\n", strings.TrimRight(b.String(), " "))
	}
	return nil
}

// CalendarSeed adds the promotional event when missing.
func (r *Runner) CalendarSeed(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.calendarRepo()
	if err != nil {
		return err
	}

	added, err := repo.SeedPromotional(ctx)
	if err != nil {
		return err
	}
	if added {
		r.writePlain("✓ Added %s\n", repositories.PromotionalEvent().Title)
	} else {
		r.writePlain("Promotional event already present\n")
	}
	return nil
}

// CalendarAdd saves a new event with a generated id.
func (r *Runner) CalendarAdd(ctx context.Context, cmd *cli.Command) error {
	date, err := parseDate(cmd.String("date"), r.now().Location())
	if err != nil {
		return err
	}

	event := models.CalendarEvent{
		ID:          shared.GenerateID(),
		Title:       strings.TrimSpace(cmd.String("title")),
		Date:        date,
		Time:        cmd.String("time"),
		Description: cmd.String("description"),
		Location:    cmd.String("location"),
	}

	repo, err := r.calendarRepo()
	if err != nil {
		return err
	}
	if _, err := repo.Add(ctx, event); err != nil {
		return err
	}

	r.writePlain("✓ Added %s on %s (id %s)\n", event.Title, date.Format(time.DateOnly), event.ID)
	return nil
}

// CalendarRemove deletes an event by id.
func (r *Runner) CalendarRemove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: event id", shared.ErrMissingArgument)
	}

	repo, err := r.calendarRepo()
	if err != nil {
		return err
	}

	removed, err := repo.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: event %s", shared.ErrNotFound, id)
	}

	r.writePlain("✓ Removed %s\n", id)
	return nil
}
