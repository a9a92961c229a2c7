package models

import (
	"fmt"
	"strings"
	"time"
)

// CalendarEvent is a dated entry on the member calendar.
type CalendarEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
}

func (e CalendarEvent) Key() string { return e.ID }

func (e CalendarEvent) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: event id is required", ErrInvalidRecord)
	}
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: event %s has no title", ErrInvalidRecord, e.ID)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: event %s has no date", ErrInvalidRecord, e.ID)
	}
	return nil
}

// SameDay reports whether t falls on the event's calendar day in t's location.
func (e CalendarEvent) SameDay(t time.Time) bool {
	d := e.Date.In(t.Location())
	return d.Year() == t.Year() && d.YearDay() == t.YearDay()
}
