package models

import (
	"fmt"
	"strings"
)

// Course is a single lesson in the course list.
type Course struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Summary     string `json:"summary,omitempty"`
	VideoURL    string `json:"videoUrl,omitempty"`
	ExternalURL string `json:"externalUrl,omitempty"`
}

func (c Course) Key() string { return c.ID }

// Validate requires an id and a title.
func (c Course) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: course id is required", ErrInvalidRecord)
	}
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("%w: course %s has no title", ErrInvalidRecord, c.ID)
	}
	return nil
}

// Link returns the URL opened when the lesson is selected: the external page when present, else the video.
func (c Course) Link() string {
	if c.ExternalURL != "" {
		return c.ExternalURL
	}
	return c.VideoURL
}
