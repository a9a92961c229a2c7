package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/better/internal/formatter"
	"github.com/desertthunder/better/internal/models"
	"github.com/desertthunder/better/internal/shared"
	"github.com/desertthunder/better/internal/tasks"
	"github.com/urfave/cli/v3"
)

// TrainingShow prints or exports the current week's plan.
func (r *Runner) TrainingShow(ctx context.Context, cmd *cli.Command) error {
	plans, err := r.planService(ctx)
	if err != nil {
		return err
	}

	plan := plans.Load(ctx)
	if cmd.Bool("json") {
		return r.writeJSON(plan, cmd.Bool("pretty"))
	}

	if !plan.FromPartner {
		r.logger.Info("showing weekly template")
	}
	return r.writePlan(cmd, plan)
}

func (r *Runner) writePlan(cmd *cli.Command, plan *tasks.Plan) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	data, err := formatter.FormatPlan(format, plan.WeekStart, plan.Days)
	if err != nil {
		return err
	}

	if out := cmd.String("output"); out != "" {
		path, err := formatter.WriteExport(format, data, out, "")
		if err != nil {
			return err
		}
		r.writePlain("✓ Plan written to %s\n", path)
		return nil
	}

	return r.writePlain("%s", data)
}

// TrainingMove moves a workout within the current week and prints the updated plan.
//
// Edits are local to this run.
func (r *Runner) TrainingMove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("workout-id")
	if id == "" {
		return fmt.Errorf("%w: workout id", shared.ErrMissingArgument)
	}

	plans, err := r.planService(ctx)
	if err != nil {
		return err
	}
	plan := plans.Load(ctx)

	to, err := parseTargetDay(cmd.String("to"), plan.WeekStart)
	if err != nil {
		return err
	}

	newID, err := plans.MoveWorkout(plan, id, to)
	if err != nil {
		return err
	}

	r.writePlain("✓ Moved %s to %s (new id %s)\n\n", id, to.Format("Monday, Jan 2"), newID)
	return r.writePlain("%s", formatter.PlanToText(plan.WeekStart, plan.Days))
}

// TrainingNote edits workout or exercise notes. Workout notes are mirrored to TrueCoach for partner plans.
func (r *Runner) TrainingNote(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("workout-id")
	if id == "" {
		return fmt.Errorf("%w: workout id", shared.ErrMissingArgument)
	}

	plans, err := r.planService(ctx)
	if err != nil {
		return err
	}
	plan := plans.Load(ctx)
	notes := cmd.String("notes")

	if idx := int(cmd.Int("exercise")); idx >= 0 {
		if err := plans.UpdateExerciseNote(plan, id, idx, notes); err != nil {
			return err
		}
		r.writePlain("✓ Exercise %d notes updated\n", idx)
		return nil
	}

	mirrored, err := plans.UpdateWorkoutNote(ctx, plan, id, notes)
	if err != nil {
		return err
	}

	switch {
	case mirrored:
		r.writePlain("✓ Notes saved and synced to TrueCoach\n")
	case plan.FromPartner:
		r.logger.Warn("notes were not synced to TrueCoach", "workout", id)
		r.writePlain("✓ Notes saved locally (sync failed)\n")
	default:
		r.writePlain("✓ Notes saved locally\n")
	}
	return nil
}

// parseTargetDay accepts a weekday name (resolved within the week) or a date.
func parseTargetDay(s string, weekStart time.Time) (time.Time, error) {
	for i, day := range models.Weekdays {
		if strings.EqualFold(s, day) || strings.EqualFold(s, day[:3]) {
			return weekStart.AddDate(0, 0, i), nil
		}
	}

	t, err := parseDate(s, weekStart.Location())
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
