package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/better/internal/shared"
	"github.com/desertthunder/better/internal/tasks"
	"github.com/urfave/cli/v3"
)

// TrueCoachOpen runs the partner-app fallback chain, logging each step as it runs.
func (r *Runner) TrueCoachOpen(ctx context.Context, cmd *cli.Command) error {
	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	resolver := r.resolver().WithProgress(progress)

	go func() {
		defer close(done)
		for u := range progress {
			r.logger.Info(u.Message, "phase", u.Phase, "step", fmt.Sprintf("%d/%d", u.Step, u.Total))
		}
	}()

	res, err := resolver.Open(ctx)
	close(progress)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("✓ Opened %s (via %s)\n", res.URL, res.Step)
	return nil
}

// TokenSet saves the partner API token.
func (r *Runner) TokenSet(ctx context.Context, cmd *cli.Command) error {
	token := strings.TrimSpace(cmd.StringArg("token"))
	if token == "" {
		return fmt.Errorf("%w: token", shared.ErrMissingArgument)
	}

	client, err := r.trueCoach(ctx)
	if err != nil {
		return err
	}
	if err := client.SetAPIKey(ctx, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	r.writePlain("✓ TrueCoach token saved\n")
	return nil
}

// TokenShow prints the saved token, masked unless --reveal is set.
func (r *Runner) TokenShow(ctx context.Context, cmd *cli.Command) error {
	client, err := r.trueCoach(ctx)
	if err != nil {
		return err
	}

	token, err := client.APIKey(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		r.writePlain("No TrueCoach token saved\n")
		return nil
	}

	if cmd.Bool("reveal") {
		r.writePlain("%s\n", token)
	} else {
		r.writePlain("%s\n", maskToken(token))
	}
	return nil
}

// TokenClear removes the saved token.
func (r *Runner) TokenClear(ctx context.Context, cmd *cli.Command) error {
	client, err := r.trueCoach(ctx)
	if err != nil {
		return err
	}
	if err := client.SetAPIKey(ctx, ""); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}

	r.writePlain("✓ TrueCoach token cleared\n")
	return nil
}

func maskToken(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}

// TrueCoachWorkouts prints the partner's workouts for a date range.
func (r *Runner) TrueCoachWorkouts(ctx context.Context, cmd *cli.Command) error {
	client, err := r.trueCoach(ctx)
	if err != nil {
		return err
	}
	if !client.Active(ctx) {
		return fmt.Errorf("%w: run 'better truecoach token set <token>' first", shared.ErrNotAuthenticated)
	}

	start := tasks.WeekStart(r.now())
	end := start.AddDate(0, 0, 6)
	if s := cmd.String("start"); s != "" {
		if start, err = parseDate(s, r.now().Location()); err != nil {
			return err
		}
	}
	if s := cmd.String("end"); s != "" {
		if end, err = parseDate(s, r.now().Location()); err != nil {
			return err
		}
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end %s is before start %s", shared.ErrInvalidArgument, end.Format(time.DateOnly), start.Format(time.DateOnly))
	}

	workouts := client.GetWorkouts(ctx, start, end)
	if cmd.Bool("json") {
		return r.writeJSON(workouts, cmd.Bool("pretty"))
	}

	if len(workouts) == 0 {
		r.writePlain("No workouts scheduled between %s and %s\n", start.Format(time.DateOnly), end.Format(time.DateOnly))
		return nil
	}
	for _, w := range workouts {
		r.writePlain("%-10s %-12s %s (%d exercises)\n", w.ScheduledFor, w.ID, w.Title, len(w.Exercises))
	}
	return nil
}

// TrueCoachNotes pushes workout notes to the partner.
func (r *Runner) TrueCoachNotes(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("workout-id")
	if id == "" {
		return fmt.Errorf("%w: workout id", shared.ErrMissingArgument)
	}

	client, err := r.trueCoach(ctx)
	if err != nil {
		return err
	}
	if !client.Active(ctx) {
		return fmt.Errorf("%w: no TrueCoach token saved", shared.ErrNotAuthenticated)
	}

	if !client.UpdateWorkoutNotes(ctx, id, cmd.String("notes")) {
		return fmt.Errorf("%w: failed to update notes for workout %s", shared.ErrAPIRequest, id)
	}

	r.writePlain("✓ Notes updated for workout %s\n", id)
	return nil
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", shared.ErrInvalidArgument, s)
	}
	return t, nil
}
