package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/better/internal/mail"
	"github.com/desertthunder/better/internal/shared"
	"github.com/desertthunder/better/internal/tasks"
	"github.com/urfave/cli/v3"
)

// TouchPoint scores ratings given as category=value; without ratings it lists the categories.
func (r *Runner) TouchPoint(ctx context.Context, cmd *cli.Command) error {
	assessment := tasks.NewAssessment(r.catalog.Categories())

	ratings := cmd.StringSlice("rate")
	if len(ratings) == 0 {
		r.writePlainHeader("TouchPoint")
		for _, c := range assessment.Categories {
			r.writePlain("%-16s %s\n", c.ID, c.Description)
		}
		r.writePlainln("Rate every category: better touchpoint -r nutrition=7 -r recovery=8 ...")
		return nil
	}

	for _, rating := range ratings {
		id, value, ok := strings.Cut(rating, "=")
		if !ok {
			return fmt.Errorf("%w: rating %q must be category=value", shared.ErrInvalidArgument, rating)
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: rating %q is not a number", shared.ErrInvalidArgument, value)
		}
		if err := assessment.Rate(strings.ToLower(strings.TrimSpace(id)), n); err != nil {
			return fmt.Errorf("%w: %w", shared.ErrInvalidArgument, err)
		}
	}

	pct, err := assessment.Submit()
	if err != nil {
		return err
	}

	r.writePlain("%s\n", tasks.SubmitMessage(pct))
	return nil
}

// Report sends an issue report through the configured mail transport.
func (r *Runner) Report(ctx context.Context, cmd *cli.Command) error {
	device := cmd.String("device")
	if device == "" {
		if host, err := os.Hostname(); err == nil {
			device = host
		}
	}

	report := tasks.IssueReport{
		Name:        cmd.String("name"),
		Description: cmd.String("description"),
		Platform:    cmd.String("platform"),
		Device:      device,
		Screenshot:  cmd.String("screenshot"),
	}
	if err := report.Validate(); err != nil {
		return err
	}

	if report.Screenshot != "" {
		if _, err := os.Stat(report.Screenshot); err != nil {
			return fmt.Errorf("%w: screenshot: %w", shared.ErrInvalidArgument, err)
		}
	}

	composer, err := r.mailComposer(ctx)
	if err != nil {
		return err
	}

	if err := tasks.SendReport(ctx, composer, r.config.Support, report); err != nil {
		return err
	}

	if _, draft := composer.(*mail.MailtoComposer); draft {
		r.writePlain("✓ Report drafted to %s; send it from your mail client\n", r.config.Support.Recipient)
		return nil
	}
	r.writePlain("✓ Report sent to %s\n", r.config.Support.Recipient)
	return nil
}
