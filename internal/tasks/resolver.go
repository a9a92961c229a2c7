package tasks

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/better/internal/shared"
)

const (
	PlatformAndroid = "android"
	PlatformIOS     = "ios"

	playDetailsURL = "https://play.google.com/store/apps/details?id="
	marketURL      = "market://details?id="
)

var errNotOpenable = errors.New("scheme reports no handler")

// Opener performs external navigations.
type Opener interface {
	Open(ctx context.Context, url string) error
	CanOpen(ctx context.Context, url string) (bool, error)
}

// Resolution is the URL that was opened and the step that opened it.
type Resolution struct {
	URL  string
	Step string
}

// Resolver opens the partner app or, failing that, its store listing.
//
// Order: scheme probe, then market:// links per package (android only), then store web pages,
// then the marketplace search, which is the terminal step.
type Resolver struct {
	opener   Opener
	cfg      shared.LinkingConfig
	logger   *log.Logger
	Progress chan<- ProgressUpdate
}

func NewResolver(opener Opener, cfg shared.LinkingConfig, logger *log.Logger) *Resolver {
	return &Resolver{opener: opener, cfg: cfg, logger: logger}
}

// WithProgress returns a copy of r that reports to ch. r itself is left untouched.
func (r *Resolver) WithProgress(ch chan<- ProgressUpdate) *Resolver {
	c := *r
	c.Progress = ch
	return &c
}

// SchemeURL is the bare deep link for the configured scheme.
func (r *Resolver) SchemeURL() string { return r.cfg.Scheme + "://" }

func (r *Resolver) navigate(step, target string) Attempt[Resolution] {
	return Attempt[Resolution]{
		Name: step,
		Run: func(ctx context.Context) (Resolution, error) {
			if err := r.opener.Open(ctx, target); err != nil {
				return Resolution{}, err
			}
			return Resolution{URL: target, Step: step}, nil
		},
	}
}

// Attempts lists the candidate navigations in order, excluding the terminal search.
func (r *Resolver) Attempts() []Attempt[Resolution] {
	var attempts []Attempt[Resolution]

	if r.cfg.Scheme != "" {
		scheme := r.SchemeURL()
		attempts = append(attempts, Attempt[Resolution]{
			Name:  "scheme",
			Phase: ProbeScheme,
			Run: func(ctx context.Context) (Resolution, error) {
				ok, err := r.opener.CanOpen(ctx, scheme)
				if err != nil {
					return Resolution{}, err
				}
				if !ok {
					return Resolution{}, errNotOpenable
				}
				if err := r.opener.Open(ctx, scheme); err != nil {
					return Resolution{}, err
				}
				return Resolution{URL: scheme, Step: "scheme"}, nil
			},
		})
	}

	if r.cfg.Platform == PlatformAndroid {
		for _, pkg := range r.cfg.AndroidPackages {
			a := r.navigate("market:"+pkg, marketURL+url.QueryEscape(pkg))
			a.Phase = OpenStoreApp
			attempts = append(attempts, a)
		}
	}

	if r.cfg.Platform == PlatformIOS {
		if r.cfg.IOSAppStoreURL != "" {
			a := r.navigate("store-page", r.cfg.IOSAppStoreURL)
			a.Phase = OpenStorePage
			attempts = append(attempts, a)
		}
	} else {
		for _, pkg := range r.cfg.AndroidPackages {
			a := r.navigate("store-page:"+pkg, playDetailsURL+url.QueryEscape(pkg))
			a.Phase = OpenStorePage
			attempts = append(attempts, a)
		}
	}

	return attempts
}

// SearchURL is the marketplace search opened when nothing else worked.
func (r *Resolver) SearchURL() string {
	if r.cfg.Platform == PlatformIOS {
		return r.cfg.AppStoreSearchURL
	}
	return r.cfg.PlaySearchURL
}

// Open performs exactly one successful navigation. Only a failing search returns an error.
func (r *Resolver) Open(ctx context.Context) (Resolution, error) {
	terminal := r.navigate("search", r.SearchURL())
	terminal.Phase = SearchMarketplace

	out, err := Chain[Resolution]{
		Attempts: r.Attempts(),
		Terminal: &terminal,
		Logger:   r.logger,
		Progress: r.Progress,
	}.Run(ctx)
	if err != nil {
		return Resolution{}, fmt.Errorf("%w: unable to open TrueCoach: %w", shared.ErrServiceUnavailable, err)
	}

	r.logger.Info("opened TrueCoach", "step", out.Value.Step, "url", out.Value.URL)
	return out.Value, nil
}
