package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/desertthunder/better/internal/shared"
)

type memTokens struct {
	token string
	reads int
	err   error
}

func (m *memTokens) Token(context.Context) (string, error) {
	m.reads++
	return m.token, m.err
}

func (m *memTokens) SetToken(_ context.Context, token string) error {
	m.token = token
	return m.err
}

const workoutsPayload = `{"workouts": [
	{"id": 101, "title": "Upper Body", "scheduled_for": "2024-06-24",
	 "exercises": [{"id": "e1", "name": "Bench Press", "sets": 4, "reps": 8, "weight": "80kg", "video_url": "https://v"}]},
	{"id": "102", "title": "Run", "scheduled_for": "2024-06-26T07:00:00Z", "exercises": [], "notes": "easy"}
]}`

func TestTrueCoachClient(t *testing.T) {
	ctx := context.Background()
	logger := shared.DiscardLogger()
	start := time.Date(2024, time.June, 24, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 0, 6)

	t.Run("GetWorkouts", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/workouts" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer secret" {
				t.Errorf("expected bearer token, got %q", got)
			}
			if got := r.URL.Query().Get("scheduled_for_start"); got != "2024-06-24" {
				t.Errorf("unexpected start %q", got)
			}
			if got := r.URL.Query().Get("scheduled_for_end"); got != "2024-06-30" {
				t.Errorf("unexpected end %q", got)
			}
			w.Write([]byte(workoutsPayload))
		}))
		defer server.Close()

		client := NewTrueCoachClient(server.URL, server.Client(), &memTokens{token: "secret"}, logger)
		workouts := client.GetWorkouts(ctx, start, end)
		if len(workouts) != 2 {
			t.Fatalf("expected 2 workouts, got %d", len(workouts))
		}
		if workouts[0].ID != "101" || workouts[1].ID != "102" {
			t.Errorf("ids not normalized: %q %q", workouts[0].ID, workouts[1].ID)
		}

		w, err := workouts[0].ToWorkout()
		if err != nil {
			t.Fatalf("convert failed: %v", err)
		}
		if w.Date.Weekday() != time.Monday {
			t.Errorf("expected Monday, got %s", w.Date.Weekday())
		}
		if len(w.Exercises) != 1 || w.Exercises[0].Weight != "80kg" || w.Exercises[0].Video != "https://v" {
			t.Errorf("unexpected exercises %+v", w.Exercises)
		}

		if _, err := workouts[1].ToWorkout(); err != nil {
			t.Errorf("RFC 3339 date should parse: %v", err)
		}
	})

	t.Run("No token never calls API", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		client := NewTrueCoachClient(server.URL, server.Client(), &memTokens{}, logger)
		if got := client.GetWorkouts(ctx, start, end); len(got) != 0 {
			t.Errorf("expected empty list, got %d", len(got))
		}
		if client.UpdateWorkoutNotes(ctx, "1", "x") {
			t.Error("update without token should fail")
		}
		if called {
			t.Error("API should not be called without a token")
		}
		if client.Active(ctx) {
			t.Error("client should be inactive")
		}
	})

	t.Run("Server error yields empty", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewTrueCoachClient(server.URL, server.Client(), &memTokens{token: "secret"}, logger)
		if got := client.GetWorkouts(ctx, start, end); len(got) != 0 {
			t.Errorf("expected empty list, got %d", len(got))
		}
	})

	t.Run("UpdateWorkoutNotes", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPatch || r.URL.Path != "/workouts/42" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("unexpected content type %q", ct)
			}

			var body map[string]string
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("bad body: %v", err)
			}
			if body["notes"] != "felt strong" {
				t.Errorf("unexpected notes %q", body["notes"])
			}
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := NewTrueCoachClient(server.URL, server.Client(), &memTokens{token: "secret"}, logger)
		if !client.UpdateWorkoutNotes(ctx, "42", "felt strong") {
			t.Error("expected update to succeed")
		}
	})

	t.Run("Token cached after first read", func(t *testing.T) {
		store := &memTokens{token: "secret"}
		client := NewTrueCoachClient("", nil, store, logger)

		for range 3 {
			if key, _ := client.APIKey(ctx); key != "secret" {
				t.Fatalf("expected secret, got %q", key)
			}
		}
		if store.reads != 1 {
			t.Errorf("expected a single store read, got %d", store.reads)
		}
	})

	t.Run("SetAPIKey", func(t *testing.T) {
		store := &memTokens{}
		client := NewTrueCoachClient("", nil, store, logger)
		if err := client.SetAPIKey(ctx, "  fresh "); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		if store.token != "fresh" {
			t.Errorf("expected stored token, got %q", store.token)
		}
		if !client.Active(ctx) {
			t.Error("client should be active")
		}
	})

	t.Run("Store failure", func(t *testing.T) {
		client := NewTrueCoachClient("", nil, &memTokens{err: errors.New("locked")}, logger)
		if client.Active(ctx) {
			t.Error("client should be inactive when the store fails")
		}
		if err := client.SetAPIKey(ctx, "x"); err == nil {
			t.Error("expected store error")
		}
	})
}
