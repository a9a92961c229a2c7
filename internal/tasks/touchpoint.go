package tasks

import (
	"errors"
	"fmt"

	"github.com/desertthunder/better/internal/models"
)

var ErrIncompleteAssessment = errors.New("please rate all categories before submitting")

// Assessment is the TouchPoint screen state.
type Assessment struct {
	models.Assessment
}

// NewAssessment starts an unrated assessment over categories.
func NewAssessment(categories []models.Category) *Assessment {
	cats := make([]models.Category, len(categories))
	copy(cats, categories)
	return &Assessment{models.Assessment{Categories: cats}}
}

// Rate sets the rating for a category.
func (a *Assessment) Rate(categoryID string, rating int) error {
	if rating < 0 || rating > models.MaxRating {
		return fmt.Errorf("rating %d outside 0-%d", rating, models.MaxRating)
	}
	for i := range a.Categories {
		if a.Categories[i].ID == categoryID {
			a.Categories[i].Rating = rating
			return nil
		}
	}
	return fmt.Errorf("unknown category %q", categoryID)
}

// Submit returns the overall percentage once every category is rated.
func (a *Assessment) Submit() (int, error) {
	if !a.AllRated() {
		return 0, ErrIncompleteAssessment
	}
	return a.Percentage(), nil
}

// SubmitMessage is the confirmation shown after a successful submit.
func SubmitMessage(percentage int) string {
	return fmt.Sprintf("Your overall score is %d%%. Great work on completing your touch point assessment!", percentage)
}
