package models

import (
	"fmt"
	"path"
	"strings"
)

// knownAcronyms keeps their casing when titles are derived from filenames.
var knownAcronyms = map[string]string{
	"babm": "BABM",
	"bmi":  "BMI",
	"hiit": "HIIT",
	"pdf":  "PDF",
}

// MealPlan is a downloadable nutrition document.
type MealPlan struct {
	Title    string `json:"title"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size,omitempty"`
}

func (m MealPlan) Key() string { return m.Filename }

// Validate requires a filename ending in .pdf and a download URL.
func (m MealPlan) Validate() error {
	if !strings.HasSuffix(strings.ToLower(m.Filename), ".pdf") {
		return fmt.Errorf("%w: %q is not a pdf", ErrInvalidRecord, m.Filename)
	}
	if m.URL == "" {
		return fmt.Errorf("%w: %s has no download url", ErrInvalidRecord, m.Filename)
	}
	return nil
}

// MealPlanTitle derives a display title from a filename.
//
// "The_BABM_Travel_Bible.pdf" -> "The BABM Travel Bible"
func MealPlanTitle(filename string) string {
	name := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)

	words := strings.Fields(name)
	for i, w := range words {
		if fixed, ok := knownAcronyms[strings.ToLower(w)]; ok {
			words[i] = fixed
		}
	}
	return strings.Join(words, " ")
}

// NewMealPlan builds a MealPlan from a listing entry.
func NewMealPlan(filename, url string, size int64) MealPlan {
	return MealPlan{Title: MealPlanTitle(filename), Filename: filename, URL: url, Size: size}
}
