package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/better/internal/mail"
	"github.com/desertthunder/better/internal/models"
	"github.com/desertthunder/better/internal/repositories"
	"github.com/desertthunder/better/internal/services"
	"github.com/desertthunder/better/internal/shared"
	"github.com/desertthunder/better/internal/tasks"
)

const (
	transportSES    = "ses"
	transportMailto = "mailto"
)

func (r *Runner) database() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	db, err := shared.OpenMigrated(r.config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	r.db = db
	return db, nil
}

func (r *Runner) kvStore() (*repositories.KVStore, error) {
	db, err := r.database()
	if err != nil {
		return nil, err
	}
	return repositories.NewKVStore(db), nil
}

func (r *Runner) tokenStore() (*repositories.TokenStore, error) {
	kv, err := r.kvStore()
	if err != nil {
		return nil, err
	}
	return repositories.NewTokenStore(kv), nil
}

// trueCoach returns the partner client. A configured api_key seeds the store when no token is saved yet.
func (r *Runner) trueCoach(ctx context.Context) (*services.TrueCoachClient, error) {
	if r.truecoach != nil {
		return r.truecoach, nil
	}

	tokens, err := r.tokenStore()
	if err != nil {
		return nil, err
	}

	client := services.NewTrueCoachClient(r.config.TrueCoach.BaseURL, r.httpClient, tokens, r.logger)
	if seed := r.config.TrueCoach.APIKey; seed != "" {
		if current, err := tokens.Token(ctx); err == nil && current == "" {
			if err := client.SetAPIKey(ctx, seed); err != nil {
				r.logger.Warn("failed to seed TrueCoach API key", "error", err)
			}
		}
	}

	r.truecoach = client
	return client, nil
}

func (r *Runner) contentsClient(listURL string) *services.ContentsClient {
	return services.NewContentsClient(listURL, r.httpClient, r.config.Content.RequestsPerSecond)
}

func (r *Runner) courseLoader() *tasks.Loader[models.Course] {
	return tasks.NewCourseLoader(r.contentsClient(r.config.Content.CoursesURL), r.logger)
}

func (r *Runner) mealPlanLoader() *tasks.Loader[models.MealPlan] {
	return tasks.NewMealPlanLoader(r.contentsClient(r.config.Content.NutritionURL), r.logger)
}

func (r *Runner) downloads() (*repositories.DownloadRepository, error) {
	db, err := r.database()
	if err != nil {
		return nil, err
	}
	return repositories.NewDownloadRepository(db), nil
}

func (r *Runner) documents() (*tasks.DocumentCache, error) {
	dir, err := r.config.DocumentsDir()
	if err != nil {
		return nil, err
	}

	recorder, err := r.downloads()
	if err != nil {
		return nil, err
	}

	fetcher := r.contentsClient(r.config.Content.NutritionURL)
	return tasks.NewDocumentCache(dir, fetcher, recorder, r.opener, r.logger), nil
}

func (r *Runner) resolver() *tasks.Resolver {
	return tasks.NewResolver(r.opener, r.config.Linking, r.logger)
}

func (r *Runner) planService(ctx context.Context) (*tasks.PlanService, error) {
	client, err := r.trueCoach(ctx)
	if err != nil {
		return nil, err
	}
	return tasks.NewPlanService(client, r.logger).WithClock(r.now), nil
}

func (r *Runner) calendarRepo() (*repositories.CalendarRepository, error) {
	kv, err := r.kvStore()
	if err != nil {
		return nil, err
	}
	return repositories.NewCalendarRepository(kv, r.logger), nil
}

// mailComposer picks the support transport from config: SES when configured, else a mailto: draft.
func (r *Runner) mailComposer(ctx context.Context) (mail.Composer, error) {
	if r.composer != nil {
		return r.composer, nil
	}

	support := r.config.Support
	switch support.Transport {
	case transportSES:
		composer, err := mail.NewSESComposer(ctx, support.AWSRegion, support.Sender, r.logger)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", mail.ErrUnavailable, err)
		}
		r.composer = composer
	case transportMailto, "":
		r.composer = mail.NewMailtoComposer(r.opener, r.logger)
	default:
		return nil, fmt.Errorf("%w: unknown support transport %q", shared.ErrInvalidConfig, support.Transport)
	}
	return r.composer, nil
}
