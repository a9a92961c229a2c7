// Package catalog holds the content bundled into the binary: static screen data and the
// offline fallback lists used when remote content cannot be loaded.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/desertthunder/better/internal/models"
	"gopkg.in/yaml.v3"
)

var (
	//go:embed catalog.yaml
	catalogYAML []byte

	//go:embed courses.json
	coursesJSON []byte

	//go:embed mealplans.json
	mealPlansJSON []byte
)

// Catalog is the static content shipped with the app.
type Catalog struct {
	Home         string                `yaml:"home"`
	CheckInForms []models.CheckInForm  `yaml:"checkin_forms"`
	Podcasts     []models.Podcast      `yaml:"podcasts"`
	Links        []models.ExternalLink `yaml:"links"`
	TouchPoint   []models.Category     `yaml:"touchpoint"`
}

var (
	loadOnce sync.Once
	loaded   *Catalog
	loadErr  error
)

// Parse decodes a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return &c, nil
}

// Load returns the embedded catalog, parsed once.
func Load() (*Catalog, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(catalogYAML)
	})
	return loaded, loadErr
}

// MustLoad is [Load] for callers that treat a broken embedded catalog as a programming error.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// CheckInForm finds a form by case-insensitive name.
func (c *Catalog) CheckInForm(name string) (models.CheckInForm, bool) {
	for _, f := range c.CheckInForms {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return models.CheckInForm{}, false
}

// Link finds an external link by case-insensitive name.
func (c *Catalog) Link(name string) (models.ExternalLink, bool) {
	for _, l := range c.Links {
		if strings.EqualFold(l.Name, name) {
			return l, true
		}
	}
	return models.ExternalLink{}, false
}

// Categories returns a fresh, unrated copy of the TouchPoint categories.
func (c *Catalog) Categories() []models.Category {
	out := make([]models.Category, len(c.TouchPoint))
	copy(out, c.TouchPoint)
	for i := range out {
		out[i].Rating = 0
	}
	return out
}

// FallbackCourses returns the bundled course list.
func FallbackCourses() []models.Course {
	var courses []models.Course
	if err := json.Unmarshal(coursesJSON, &courses); err != nil {
		panic(fmt.Sprintf("bundled courses: %v", err))
	}
	return courses
}

// FallbackMealPlans returns the bundled meal plan list.
func FallbackMealPlans() []models.MealPlan {
	var plans []models.MealPlan
	if err := json.Unmarshal(mealPlansJSON, &plans); err != nil {
		panic(fmt.Sprintf("bundled meal plans: %v", err))
	}
	return plans
}
