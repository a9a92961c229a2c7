package models

import (
	"encoding/json"
	"time"
)

// Weekdays lists day names in plan order (Monday first).
var Weekdays = []string{
	time.Monday.String(), time.Tuesday.String(), time.Wednesday.String(), time.Thursday.String(),
	time.Friday.String(), time.Saturday.String(), time.Sunday.String(),
}

// Exercise is one movement inside a workout.
type Exercise struct {
	Name   string `json:"name"`
	Sets   int    `json:"sets"`
	Reps   int    `json:"reps"`
	Weight string `json:"weight,omitempty"`
	Notes  string `json:"notes,omitempty"`
	Video  string `json:"video,omitempty"`
}

// HasVolume reports whether sets or reps should be displayed.
func (e Exercise) HasVolume() bool { return e.Sets > 0 || e.Reps > 0 }

// Workout is a session scheduled on a day.
type Workout struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Date      time.Time  `json:"date"`
	Notes     string     `json:"notes,omitempty"`
	Exercises []Exercise `json:"exercises"`
}

// WeekPlan maps weekday names to the workouts scheduled on them.
type WeekPlan map[string][]Workout

// Day returns the workouts for a weekday; an empty result is a rest day.
func (p WeekPlan) Day(name string) []Workout { return p[name] }

// Find locates a workout by id.
func (p WeekPlan) Find(id string) (day string, index int, ok bool) {
	for d, workouts := range p {
		for i, w := range workouts {
			if w.ID == id {
				return d, i, true
			}
		}
	}
	return "", 0, false
}

// FlexString decodes a JSON string or number into a string.
//
// Partner payloads are inconsistent about id types.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }
