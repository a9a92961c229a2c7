package tasks

import (
	"errors"
	"testing"

	"github.com/desertthunder/better/internal/catalog"
)

func TestAssessment(t *testing.T) {
	categories := catalog.MustLoad().Categories()

	t.Run("Incomplete", func(t *testing.T) {
		a := NewAssessment(categories)
		_ = a.Rate("nutrition", 8)
		if _, err := a.Submit(); !errors.Is(err, ErrIncompleteAssessment) {
			t.Errorf("expected ErrIncompleteAssessment, got %v", err)
		}
	})

	t.Run("Complete", func(t *testing.T) {
		a := NewAssessment(categories)
		for _, c := range categories {
			if err := a.Rate(c.ID, 8); err != nil {
				t.Fatalf("rate %s failed: %v", c.ID, err)
			}
		}
		pct, err := a.Submit()
		if err != nil {
			t.Fatalf("submit failed: %v", err)
		}
		if pct != 80 {
			t.Errorf("expected 80, got %d", pct)
		}
		if SubmitMessage(pct) != "Your overall score is 80%. Great work on completing your touch point assessment!" {
			t.Errorf("unexpected message %q", SubmitMessage(pct))
		}
	})

	t.Run("Rate validation", func(t *testing.T) {
		a := NewAssessment(categories)
		if err := a.Rate("nutrition", 11); err == nil {
			t.Error("expected range error")
		}
		if err := a.Rate("sleep", 5); err == nil {
			t.Error("expected unknown category error")
		}
	})

	t.Run("Does not alias input", func(t *testing.T) {
		a := NewAssessment(categories)
		_ = a.Rate("recovery", 3)
		if categories[1].Rating != 0 {
			t.Error("rating leaked into the source slice")
		}
	})
}
