package catalog

import (
	"testing"

	"github.com/desertthunder/better/internal/models"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("embedded catalog failed to parse: %v", err)
	}

	t.Run("Home", func(t *testing.T) {
		if c.Home != "Welcome to Better." {
			t.Errorf("unexpected home text %q", c.Home)
		}
	})

	t.Run("CheckInForms", func(t *testing.T) {
		if len(c.CheckInForms) != 2 {
			t.Fatalf("expected 2 forms, got %d", len(c.CheckInForms))
		}
		f, ok := c.CheckInForm("rapid fire")
		if !ok || f.URL != "https://kmfitnesscoaching.typeform.com/Rapidfire" {
			t.Errorf("lookup failed: %+v %v", f, ok)
		}
		if _, ok := c.CheckInForm("missing"); ok {
			t.Error("unexpected match")
		}
	})

	t.Run("Links and podcasts", func(t *testing.T) {
		if _, ok := c.Link("SKOOL"); !ok {
			t.Error("expected Skool link")
		}
		if len(c.Podcasts) != 1 || c.Podcasts[0].URL == "" {
			t.Errorf("unexpected podcasts %+v", c.Podcasts)
		}
	})

	t.Run("Categories are fresh copies", func(t *testing.T) {
		cats := c.Categories()
		want := []string{"nutrition", "recovery", "lifestyle", "training", "accountability"}
		if len(cats) != len(want) {
			t.Fatalf("expected %d categories, got %d", len(want), len(cats))
		}
		for i, id := range want {
			if cats[i].ID != id {
				t.Errorf("category %d: expected %s, got %s", i, id, cats[i].ID)
			}
		}

		cats[0].Rating = 7
		if c.Categories()[0].Rating != 0 {
			t.Error("mutating a copy leaked into the catalog")
		}
	})
}

func TestParse(t *testing.T) {
	t.Run("Invalid YAML", func(t *testing.T) {
		if _, err := Parse([]byte("home: [unclosed")); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestFallbacks(t *testing.T) {
	t.Run("Courses", func(t *testing.T) {
		courses := FallbackCourses()
		if len(courses) != 6 {
			t.Fatalf("expected 6 courses, got %d", len(courses))
		}
		for i, c := range courses {
			if err := c.Validate(); err != nil {
				t.Errorf("course %d invalid: %v", i, err)
			}
			if c.Link() == "" {
				t.Errorf("course %s has no link", c.ID)
			}
			if i > 0 && models.CompareIDs(courses[i-1].ID, c.ID) >= 0 {
				t.Errorf("courses out of order at %s", c.ID)
			}
		}
	})

	t.Run("Meal plans", func(t *testing.T) {
		plans := FallbackMealPlans()
		if len(plans) != 5 {
			t.Fatalf("expected 5 plans, got %d", len(plans))
		}
		for _, p := range plans {
			if err := p.Validate(); err != nil {
				t.Errorf("plan %s invalid: %v", p.Filename, err)
			}
		}
	})
}
