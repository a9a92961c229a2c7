package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/better/internal/shared"
	"github.com/desertthunder/better/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal companion.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	tab, ok := ui.ParseTab(cmd.String("tab"))
	if !ok {
		return fmt.Errorf("%w: unknown tab %q", shared.ErrInvalidArgument, cmd.String("tab"))
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	plans, err := r.planService(ctx)
	if err != nil {
		return err
	}
	calendar, err := r.calendarRepo()
	if err != nil {
		return err
	}
	docs, err := r.documents()
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, ui.Deps{
		Catalog:   r.catalog,
		Courses:   r.courseLoader(),
		MealPlans: r.mealPlanLoader(),
		Documents: docs,
		Plans:     plans,
		Calendar:  calendar,
		Resolver:  r.resolver(),
		Opener:    r.opener,
		Logger:    fileLogger,
		Now:       r.now,
	}).WithTab(tab)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
