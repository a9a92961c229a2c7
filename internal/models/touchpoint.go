package models

import "math"

// MaxRating is the top of the TouchPoint scale.
const MaxRating = 10

// Category is a TouchPoint dimension the member rates.
type Category struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Rating      int    `json:"rating" yaml:"-"`
}

// Assessment is the set of rated categories.
type Assessment struct {
	Categories []Category
}

// AllRated reports whether every category has a rating above zero.
func (a Assessment) AllRated() bool {
	if len(a.Categories) == 0 {
		return false
	}
	for _, c := range a.Categories {
		if c.Rating <= 0 {
			return false
		}
	}
	return true
}

// Percentage is sum/max*100, rounded to the nearest integer.
func (a Assessment) Percentage() int {
	if len(a.Categories) == 0 {
		return 0
	}
	total := 0
	for _, c := range a.Categories {
		total += c.Rating
	}
	return int(math.Round(float64(total) / float64(len(a.Categories)*MaxRating) * 100))
}
