package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/better/internal/models"
	"github.com/desertthunder/better/internal/services"
)

var (
	ErrOutsideWeek     = errors.New("you can only move workouts within the current week")
	ErrWorkoutNotFound = errors.New("workout not found")
)

const benchVideo = "https://www.youtube.com/watch?v=SCVCLChPQFY"

// WorkoutSource is the partner API surface the training plan needs.
type WorkoutSource interface {
	Active(ctx context.Context) bool
	GetWorkouts(ctx context.Context, start, end time.Time) []services.TrueCoachWorkout
	UpdateWorkoutNotes(ctx context.Context, workoutID, notes string) bool
}

// WeekStart returns midnight on the Monday of t's week.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekDays returns the seven dates of t's week, Monday first.
func WeekDays(t time.Time) []time.Time {
	start := WeekStart(t)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

func upperBody(id string, date time.Time) models.Workout {
	return models.Workout{
		ID:    id,
		Title: "Upper Body",
		Date:  date,
		Exercises: []models.Exercise{
			{Name: "Bench Press", Sets: 4, Reps: 8, Weight: "80kg", Video: benchVideo},
			{Name: "Pull-Up", Sets: 3, Reps: 10, Weight: "Bodyweight"},
		},
	}
}

// WeeklyTemplate is the built-in plan shown when the partner integration is inactive.
// Sunday is a rest day.
func WeeklyTemplate(now time.Time) models.WeekPlan {
	d := WeekDays(now)
	return models.WeekPlan{
		"Monday": {upperBody("1", d[0])},
		"Tuesday": {{
			ID: "2", Title: "Lower Body", Date: d[1],
			Exercises: []models.Exercise{
				{Name: "Squat", Sets: 4, Reps: 6, Weight: "100kg", Video: "https://www.youtube.com/watch?v=U3HlEF_E9fo"},
			},
		}},
		"Wednesday": {{
			ID: "3", Title: "Tempo Run", Date: d[2],
			Exercises: []models.Exercise{
				{Name: "Tempo Run", Notes: "5 KM RUN 5:00km/Min Pace"},
			},
		}},
		"Thursday": {upperBody("4", d[3])},
		"Friday": {{
			ID: "5", Title: "HyRox Session", Date: d[4],
			Exercises: []models.Exercise{
				{Name: "Sled Push", Sets: 4, Reps: 8, Weight: "80kg", Video: benchVideo},
				{Name: "SKI Erg", Sets: 3, Reps: 10},
			},
		}},
		"Saturday": {{
			ID: "6", Title: "Weekly Review", Date: d[5],
			Exercises: []models.Exercise{
				{Name: "Rapid Fire", Video: "https://kmfitnesscoaching.typeform.com/Rapidfire"},
				{Name: "Progress Pit Stop", Video: "https://kmfitnesscoaching.typeform.com/pitstopsessions"},
			},
		}},
	}
}

// NormalizeWorkouts groups partner workouts by weekday name. Unparseable workouts are skipped.
func NormalizeWorkouts(workouts []services.TrueCoachWorkout, logger *log.Logger) models.WeekPlan {
	plan := models.WeekPlan{}
	for _, tw := range workouts {
		w, err := tw.ToWorkout()
		if err != nil {
			logger.Warn("skipping partner workout", "error", err)
			continue
		}
		day := w.Date.Weekday().String()
		plan[day] = append(plan[day], w)
	}
	return plan
}

// Plan is the training screen's state for one week.
type Plan struct {
	WeekStart   time.Time
	Days        models.WeekPlan
	FromPartner bool
}

// PlanService loads and edits the weekly training plan.
type PlanService struct {
	partner WorkoutSource
	logger  *log.Logger
	now     func() time.Time
}

// NewPlanService creates a service; a nil partner always yields the template.
func NewPlanService(partner WorkoutSource, logger *log.Logger) *PlanService {
	return &PlanService{partner: partner, logger: logger, now: time.Now}
}

// WithClock overrides the service's notion of now.
func (s *PlanService) WithClock(now func() time.Time) *PlanService {
	s.now = now
	return s
}

// Load returns the partner plan for the current week when the integration is active and the
// partner returned at least one workout; otherwise the weekly template.
func (s *PlanService) Load(ctx context.Context) *Plan {
	now := s.now()
	start := WeekStart(now)
	plan := &Plan{WeekStart: start, Days: WeeklyTemplate(now)}

	if s.partner == nil || !s.partner.Active(ctx) {
		return plan
	}

	workouts := s.partner.GetWorkouts(ctx, start, start.AddDate(0, 0, 6))
	if len(workouts) == 0 {
		return plan
	}

	days := NormalizeWorkouts(workouts, s.logger)
	if len(days) == 0 {
		return plan
	}

	plan.Days = days
	plan.FromPartner = true
	return plan
}

// UpdateWorkoutNote applies notes locally and mirrors them to the partner for partner plans.
// The local edit stands even when mirroring fails; the return reports whether it was mirrored.
func (s *PlanService) UpdateWorkoutNote(ctx context.Context, p *Plan, workoutID, notes string) (bool, error) {
	day, i, ok := p.Days.Find(workoutID)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrWorkoutNotFound, workoutID)
	}
	p.Days[day][i].Notes = notes

	if !p.FromPartner || s.partner == nil || !s.partner.Active(ctx) {
		return false, nil
	}
	return s.partner.UpdateWorkoutNotes(ctx, workoutID, notes), nil
}

// UpdateExerciseNote edits one exercise's notes locally.
func (s *PlanService) UpdateExerciseNote(p *Plan, workoutID string, index int, notes string) error {
	day, i, ok := p.Days.Find(workoutID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrWorkoutNotFound, workoutID)
	}

	exercises := p.Days[day][i].Exercises
	if index < 0 || index >= len(exercises) {
		return fmt.Errorf("exercise %d out of range for workout %s", index, workoutID)
	}
	exercises[index].Notes = notes
	return nil
}

// MoveWorkout moves a workout to another day of the same Monday-based week.
// The moved workout gets a new id, which is returned.
func (s *PlanService) MoveWorkout(p *Plan, workoutID string, to time.Time) (string, error) {
	next := p.WeekStart.AddDate(0, 0, 7)
	if to.Before(p.WeekStart) || !to.Before(next) {
		return "", ErrOutsideWeek
	}

	day, i, ok := p.Days.Find(workoutID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrWorkoutNotFound, workoutID)
	}

	w := p.Days[day][i]
	p.Days[day] = append(p.Days[day][:i:i], p.Days[day][i+1:]...)
	if len(p.Days[day]) == 0 {
		delete(p.Days, day)
	}

	w.Date = to
	w.ID = fmt.Sprintf("%s-%d", workoutID, s.now().UnixMilli())

	newDay := to.Weekday().String()
	p.Days[newDay] = append(p.Days[newDay], w)
	return w.ID, nil
}
