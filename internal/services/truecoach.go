package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/better/internal/models"
	"github.com/desertthunder/better/internal/shared"
	"golang.org/x/oauth2"
)

const (
	TrueCoachBaseURL = "https://api.truecoach.co/v1"
	dateLayout       = "2006-01-02"
)

// TokenStore persists the partner bearer token.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
}

// TrueCoachExercise is an exercise as returned by the partner API.
type TrueCoachExercise struct {
	ID       models.FlexString `json:"id"`
	Name     string            `json:"name"`
	Sets     int               `json:"sets"`
	Reps     int               `json:"reps"`
	Weight   models.FlexString `json:"weight"`
	Notes    string            `json:"notes"`
	VideoURL string            `json:"video_url"`
}

// TrueCoachWorkout is a workout as returned by the partner API.
type TrueCoachWorkout struct {
	ID           models.FlexString   `json:"id"`
	Title        string              `json:"title"`
	ScheduledFor string              `json:"scheduled_for"`
	Exercises    []TrueCoachExercise `json:"exercises"`
	Notes        string              `json:"notes"`
}

// Scheduled parses ScheduledFor as a date or RFC 3339 timestamp.
func (w TrueCoachWorkout) Scheduled() (time.Time, error) {
	if t, err := time.ParseInLocation(dateLayout, w.ScheduledFor, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, w.ScheduledFor)
}

// ToWorkout converts the payload into a [models.Workout].
func (w TrueCoachWorkout) ToWorkout() (models.Workout, error) {
	date, err := w.Scheduled()
	if err != nil {
		return models.Workout{}, fmt.Errorf("workout %s: bad scheduled_for %q: %w", w.ID, w.ScheduledFor, err)
	}

	exercises := make([]models.Exercise, 0, len(w.Exercises))
	for _, e := range w.Exercises {
		exercises = append(exercises, models.Exercise{
			Name:   e.Name,
			Sets:   e.Sets,
			Reps:   e.Reps,
			Weight: e.Weight.String(),
			Notes:  e.Notes,
			Video:  e.VideoURL,
		})
	}

	return models.Workout{
		ID:        w.ID.String(),
		Title:     w.Title,
		Date:      date,
		Notes:     w.Notes,
		Exercises: exercises,
	}, nil
}

type workoutsResponse struct {
	Workouts []TrueCoachWorkout `json:"workouts"`
}

// TrueCoachClient is the session object for the partner workout API.
type TrueCoachClient struct {
	baseURL    string
	httpClient *http.Client
	store      TokenStore
	logger     *log.Logger

	mu     sync.Mutex
	apiKey string
	loaded bool
}

// NewTrueCoachClient creates a client. An empty baseURL selects [TrueCoachBaseURL].
func NewTrueCoachClient(baseURL string, client *http.Client, store TokenStore, logger *log.Logger) *TrueCoachClient {
	if baseURL == "" {
		baseURL = TrueCoachBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &TrueCoachClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		store:      store,
		logger:     logger,
	}
}

// APIKey returns the token, reading the store only on first use.
func (c *TrueCoachClient) APIKey(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.apiKey, nil
	}

	key, err := c.store.Token(ctx)
	if err != nil {
		return "", err
	}
	c.apiKey = key
	c.loaded = true
	return key, nil
}

// SetAPIKey persists key and updates the cached copy.
func (c *TrueCoachClient) SetAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if err := c.store.SetToken(ctx, key); err != nil {
		return err
	}

	c.mu.Lock()
	c.apiKey = key
	c.loaded = true
	c.mu.Unlock()
	return nil
}

// Active reports whether a token is configured.
func (c *TrueCoachClient) Active(ctx context.Context) bool {
	key, err := c.APIKey(ctx)
	if err != nil {
		c.logger.Warn("could not read TrueCoach API key", "error", err)
		return false
	}
	return key != ""
}

// authorized returns an http.Client that attaches key as a bearer token.
func (c *TrueCoachClient) authorized(key string) *http.Client {
	base := c.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	return &http.Client{
		Timeout: c.httpClient.Timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: key, TokenType: "Bearer"}),
			Base:   base,
		},
	}
}

func (c *TrueCoachClient) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	key, err := c.APIKey(ctx)
	if err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("%w: TrueCoach API key not set", shared.ErrNotAuthenticated)
	}

	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, payload)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.authorized(key).Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(req, resp); err != nil {
		return err
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// GetWorkouts returns workouts scheduled between start and end inclusive.
//
// Any failure is logged and yields an empty list.
func (c *TrueCoachClient) GetWorkouts(ctx context.Context, start, end time.Time) []TrueCoachWorkout {
	q := url.Values{}
	q.Set("scheduled_for_start", start.Format(dateLayout))
	q.Set("scheduled_for_end", end.Format(dateLayout))

	var resp workoutsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/workouts?"+q.Encode(), nil, &resp); err != nil {
		c.logger.Error("error fetching TrueCoach workouts", "error", err)
		return nil
	}
	return resp.Workouts
}

// UpdateWorkoutNotes replaces the notes on a workout and reports success.
func (c *TrueCoachClient) UpdateWorkoutNotes(ctx context.Context, workoutID, notes string) bool {
	endpoint := "/workouts/" + url.PathEscape(workoutID)
	if err := c.doRequest(ctx, http.MethodPatch, endpoint, map[string]string{"notes": notes}, nil); err != nil {
		c.logger.Error("error updating workout notes", "workout", workoutID, "error", err)
		return false
	}
	return true
}
