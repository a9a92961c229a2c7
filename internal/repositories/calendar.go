package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/better/internal/models"
)

// PromotionalEventID identifies the seeded summer meet-up.
const PromotionalEventID = "mensdaysummer2024"

// PromotionalEvent is the fixed announcement seeded into every calendar.
func PromotionalEvent() models.CalendarEvent {
	return models.CalendarEvent{
		ID:    PromotionalEventID,
		Title: "Men's Day SUMMER MEET UP",
		Date:  time.Date(2024, time.June, 28, 0, 0, 0, 0, time.Local),
		Time:  "9:15 AM",
		Description: `9:15 am - Meet in Lahinch Car Park near enough to the gym
9:30 am - Group warm up and stretch
10 am - Team Building Training Session
11 am - walk and a dip on Lahinch beach / shower and change
12:30 - 2 pm - break bread together at Pot Duggans (5 min drive from Lahinch)

Bring a +1 (friend, brother, or someone who is interested in improving themselves)
Lahinch gym - Lahinch, County Clare
Free for clients`,
		Location: "Lahinch, County Clare",
	}
}

// CalendarRepository stores calendar events as a JSON array under [CalendarKey].
type CalendarRepository struct {
	kv     KeyValue
	logger *log.Logger
}

func NewCalendarRepository(kv KeyValue, logger *log.Logger) *CalendarRepository {
	return &CalendarRepository{kv: kv, logger: logger}
}

// Load returns the stored events ordered by date.
//
// Read or decode failures are logged and yield an empty list.
func (r *CalendarRepository) Load(ctx context.Context) []models.CalendarEvent {
	events, err := r.load(ctx)
	if err != nil {
		r.logger.Error("error loading events", "error", err)
		return nil
	}
	return events
}

// load is the strict read used before writes. Storage errors are returned; an undecodable value reads as empty.
func (r *CalendarRepository) load(ctx context.Context) ([]models.CalendarEvent, error) {
	raw, ok, err := r.kv.Get(ctx, CalendarKey)
	if err != nil {
		return nil, fmt.Errorf("error reading events: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var events []models.CalendarEvent
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		r.logger.Error("error decoding events", "error", err)
		return nil, nil
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events, nil
}

// Save replaces the stored list.
func (r *CalendarRepository) Save(ctx context.Context, events []models.CalendarEvent) error {
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}
	if err := r.kv.Set(ctx, CalendarKey, string(data)); err != nil {
		return fmt.Errorf("error saving events: %w", err)
	}
	return nil
}

// Add appends event unless one with the same id exists. It reports whether the event was inserted.
func (r *CalendarRepository) Add(ctx context.Context, event models.CalendarEvent) (bool, error) {
	if err := event.Validate(); err != nil {
		return false, err
	}

	events, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	for _, e := range events {
		if e.ID == event.ID {
			return false, nil
		}
	}

	if err := r.Save(ctx, append(events, event)); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes the event with id. Reports whether anything was removed.
func (r *CalendarRepository) Remove(ctx context.Context, id string) (bool, error) {
	events, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	kept := events[:0]
	for _, e := range events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(events) {
		return false, nil
	}
	return true, r.Save(ctx, kept)
}

// SeedPromotional inserts [PromotionalEvent] once; repeated calls are no-ops.
func (r *CalendarRepository) SeedPromotional(ctx context.Context) (bool, error) {
	return r.Add(ctx, PromotionalEvent())
}

// EventsOn returns the events falling on day.
func (r *CalendarRepository) EventsOn(ctx context.Context, day time.Time) []models.CalendarEvent {
	return EventsOn(r.Load(ctx), day)
}

// EventsOn filters events to those on day.
func EventsOn(events []models.CalendarEvent, day time.Time) []models.CalendarEvent {
	var out []models.CalendarEvent
	for _, e := range events {
		if e.SameDay(day) {
			out = append(out, e)
		}
	}
	return out
}
