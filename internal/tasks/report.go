package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/better/internal/mail"
	"github.com/desertthunder/better/internal/shared"
)

var ErrIncompleteReport = errors.New("please fill in all fields")

// IssueReport is the support form.
type IssueReport struct {
	Name        string
	Description string
	Platform    string
	Device      string
	Screenshot  string
}

// Validate requires a name and a description.
func (r IssueReport) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Description) == "" {
		return ErrIncompleteReport
	}
	return nil
}

// Body is the plain-text mail body.
func (r IssueReport) Body() string {
	return fmt.Sprintf("Name: %s\nPlatform: %s\nDevice: %s\n\nDescription:\n%s", r.Name, r.Platform, r.Device, r.Description)
}

// SendReport validates r and hands it to the composer.
func SendReport(ctx context.Context, composer mail.Composer, cfg shared.SupportConfig, r IssueReport) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if composer == nil || !composer.Available(ctx) {
		return mail.ErrUnavailable
	}

	return composer.Compose(ctx, mail.Message{
		To:         []string{cfg.Recipient},
		From:       cfg.Sender,
		Subject:    cfg.Subject,
		Body:       r.Body(),
		Attachment: r.Screenshot,
	})
}
