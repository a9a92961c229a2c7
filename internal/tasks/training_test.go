package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/better/internal/services"
	"github.com/desertthunder/better/internal/shared"
)

type fakePartner struct {
	active   bool
	workouts []services.TrueCoachWorkout
	calls    int
	updated  map[string]string
	updateOK bool
}

func (f *fakePartner) Active(context.Context) bool { return f.active }

func (f *fakePartner) GetWorkouts(context.Context, time.Time, time.Time) []services.TrueCoachWorkout {
	f.calls++
	return f.workouts
}

func (f *fakePartner) UpdateWorkoutNotes(_ context.Context, id, notes string) bool {
	if f.updated == nil {
		f.updated = map[string]string{}
	}
	f.updated[id] = notes
	return f.updateOK
}

// wednesday is 2024-06-26, inside the week starting Monday 2024-06-24.
var wednesday = time.Date(2024, time.June, 26, 15, 30, 0, 0, time.UTC)

func clock() time.Time { return wednesday }

func TestWeek(t *testing.T) {
	t.Run("WeekStart", func(t *testing.T) {
		want := time.Date(2024, time.June, 24, 0, 0, 0, 0, time.UTC)
		if got := WeekStart(wednesday); !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
		sunday := time.Date(2024, time.June, 30, 23, 0, 0, 0, time.UTC)
		if got := WeekStart(sunday); !got.Equal(want) {
			t.Errorf("Sunday belongs to the preceding Monday's week, got %v", got)
		}
	})

	t.Run("WeekDays", func(t *testing.T) {
		days := WeekDays(wednesday)
		if days[0].Weekday() != time.Monday || days[6].Weekday() != time.Sunday {
			t.Errorf("unexpected week %v .. %v", days[0], days[6])
		}
	})
}

func TestWeeklyTemplate(t *testing.T) {
	plan := WeeklyTemplate(wednesday)
	if len(plan) != 6 {
		t.Errorf("expected six training days, got %d", len(plan))
	}
	if len(plan.Day("Sunday")) != 0 {
		t.Error("Sunday should be a rest day")
	}
	if w := plan.Day("Monday")[0]; w.Title != "Upper Body" || len(w.Exercises) != 2 {
		t.Errorf("unexpected Monday %+v", w)
	}
	if w := plan.Day("Friday")[0]; w.Date.Weekday() != time.Friday {
		t.Errorf("Friday workout dated %v", w.Date)
	}
}

func TestPlanService(t *testing.T) {
	ctx := context.Background()
	logger := shared.DiscardLogger()

	t.Run("No token uses template", func(t *testing.T) {
		partner := &fakePartner{active: false}
		plan := NewPlanService(partner, logger).WithClock(clock).Load(ctx)
		if plan.FromPartner {
			t.Error("expected the template")
		}
		if partner.calls != 0 {
			t.Errorf("partner API should not be called, got %d calls", partner.calls)
		}
		if plan.Days.Day("Tuesday")[0].Title != "Lower Body" {
			t.Error("template not rendered")
		}
	})

	t.Run("Partner plan replaces template", func(t *testing.T) {
		partner := &fakePartner{active: true, workouts: []services.TrueCoachWorkout{
			{ID: "11", Title: "Partner Push", ScheduledFor: "2024-06-25"},
			{ID: "12", Title: "Broken", ScheduledFor: "someday"},
		}}
		plan := NewPlanService(partner, logger).WithClock(clock).Load(ctx)
		if !plan.FromPartner {
			t.Fatal("expected partner plan")
		}
		if len(plan.Days) != 1 || plan.Days.Day("Tuesday")[0].Title != "Partner Push" {
			t.Errorf("unexpected plan %+v", plan.Days)
		}
	})

	t.Run("Empty partner response keeps template", func(t *testing.T) {
		partner := &fakePartner{active: true}
		plan := NewPlanService(partner, logger).WithClock(clock).Load(ctx)
		if plan.FromPartner || partner.calls != 1 {
			t.Errorf("expected template after one call, got %+v calls=%d", plan.FromPartner, partner.calls)
		}
	})

	t.Run("Nil partner", func(t *testing.T) {
		if plan := NewPlanService(nil, logger).WithClock(clock).Load(ctx); plan.FromPartner {
			t.Error("expected template")
		}
	})

	t.Run("Workout note mirrored for partner plans", func(t *testing.T) {
		partner := &fakePartner{active: true, updateOK: true, workouts: []services.TrueCoachWorkout{
			{ID: "11", Title: "Partner Push", ScheduledFor: "2024-06-25"},
		}}
		svc := NewPlanService(partner, logger).WithClock(clock)
		plan := svc.Load(ctx)

		mirrored, err := svc.UpdateWorkoutNote(ctx, plan, "11", "felt good")
		if err != nil || !mirrored {
			t.Fatalf("expected mirrored update, got %v %v", mirrored, err)
		}
		if partner.updated["11"] != "felt good" || plan.Days.Day("Tuesday")[0].Notes != "felt good" {
			t.Error("note not applied")
		}
	})

	t.Run("Template note stays local", func(t *testing.T) {
		partner := &fakePartner{active: false}
		svc := NewPlanService(partner, logger).WithClock(clock)
		plan := svc.Load(ctx)

		mirrored, err := svc.UpdateWorkoutNote(ctx, plan, "1", "heavy")
		if err != nil || mirrored {
			t.Errorf("expected local-only edit, got %v %v", mirrored, err)
		}
		if len(partner.updated) != 0 {
			t.Error("partner should not be called")
		}
	})

	t.Run("Exercise note", func(t *testing.T) {
		svc := NewPlanService(nil, logger).WithClock(clock)
		plan := svc.Load(ctx)
		if err := svc.UpdateExerciseNote(plan, "2", 0, "depth"); err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if plan.Days.Day("Tuesday")[0].Exercises[0].Notes != "depth" {
			t.Error("exercise note not applied")
		}
		if err := svc.UpdateExerciseNote(plan, "2", 5, "x"); err == nil {
			t.Error("expected out of range error")
		}
		if err := svc.UpdateExerciseNote(plan, "nope", 0, "x"); !errors.Is(err, ErrWorkoutNotFound) {
			t.Errorf("expected ErrWorkoutNotFound, got %v", err)
		}
	})

	t.Run("Move within week", func(t *testing.T) {
		svc := NewPlanService(nil, logger).WithClock(clock)
		plan := svc.Load(ctx)
		sunday := time.Date(2024, time.June, 30, 9, 0, 0, 0, time.UTC)

		newID, err := svc.MoveWorkout(plan, "1", sunday)
		if err != nil {
			t.Fatalf("move failed: %v", err)
		}
		if newID == "1" || !strings.HasPrefix(newID, "1-") {
			t.Errorf("moved workout should get a new id, got %s", newID)
		}
		if len(plan.Days.Day("Monday")) != 0 {
			t.Error("workout still on Monday")
		}
		moved := plan.Days.Day("Sunday")
		if len(moved) != 1 || moved[0].ID != newID || !moved[0].Date.Equal(sunday) {
			t.Errorf("unexpected Sunday %+v", moved)
		}
	})

	t.Run("Move outside week rejected", func(t *testing.T) {
		svc := NewPlanService(nil, logger).WithClock(clock)
		plan := svc.Load(ctx)

		nextMonday := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
		if _, err := svc.MoveWorkout(plan, "1", nextMonday); !errors.Is(err, ErrOutsideWeek) {
			t.Errorf("expected ErrOutsideWeek, got %v", err)
		}
		lastWeek := time.Date(2024, time.June, 23, 12, 0, 0, 0, time.UTC)
		if _, err := svc.MoveWorkout(plan, "1", lastWeek); !errors.Is(err, ErrOutsideWeek) {
			t.Errorf("expected ErrOutsideWeek, got %v", err)
		}
		if len(plan.Days.Day("Monday")) != 1 {
			t.Error("rejected move should leave the plan untouched")
		}
	})
}
