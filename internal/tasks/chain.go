package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// ErrExhausted is returned when a chain has no terminal attempt and every candidate failed.
var ErrExhausted = errors.New("all attempts failed")

// Attempt is one candidate action in a fallback chain.
type Attempt[T any] struct {
	Name  string
	Phase Phase
	Run   func(ctx context.Context) (T, error)
}

type attemptInfo struct {
	name  string
	phase Phase
}

func (a Attempt[T]) info() attemptInfo { return attemptInfo{name: a.Name, phase: a.Phase} }

// Outcome reports which attempt produced the value.
type Outcome[T any] struct {
	Value    T
	Step     string
	Terminal bool
}

// Chain evaluates attempts strictly in order.
//
// Attempt N+1 never starts before attempt N has returned. The terminal attempt runs only after
// all candidates failed, and only its error is returned to the caller.
type Chain[T any] struct {
	Attempts []Attempt[T]
	Terminal *Attempt[T]
	Logger   *log.Logger
	Progress chan<- ProgressUpdate
}

// Run executes the chain.
func (c Chain[T]) Run(ctx context.Context) (Outcome[T], error) {
	total := len(c.Attempts)
	if c.Terminal != nil {
		total++
	}

	for i, a := range c.Attempts {
		if err := ctx.Err(); err != nil {
			return Outcome[T]{}, err
		}

		step := i + 1
		sendProgress(c.Progress, attemptUpdate(step, total, a.info()))

		v, err := a.Run(ctx)
		if err == nil {
			sendProgress(c.Progress, attemptDoneUpdate(step, total, a.info()))
			return Outcome[T]{Value: v, Step: a.Name}, nil
		}

		sendProgress(c.Progress, attemptFailedUpdate(step, total, a.info(), err))
		if c.Logger != nil {
			c.Logger.Warn("attempt failed", "step", a.Name, "phase", a.Phase, "error", err)
		}
	}

	if c.Terminal == nil {
		return Outcome[T]{}, ErrExhausted
	}

	t := *c.Terminal
	sendProgress(c.Progress, attemptUpdate(total, total, t.info()))
	v, err := t.Run(ctx)
	if err != nil {
		sendProgress(c.Progress, attemptFailedUpdate(total, total, t.info(), err))
		return Outcome[T]{}, fmt.Errorf("%s: %w", t.Name, err)
	}

	sendProgress(c.Progress, attemptDoneUpdate(total, total, t.info()))
	return Outcome[T]{Value: v, Step: t.Name, Terminal: true}, nil
}

// FirstSuccess runs attempts in order and falls back to terminal when all of them fail.
func FirstSuccess[T any](ctx context.Context, logger *log.Logger, attempts []Attempt[T], terminal Attempt[T]) (Outcome[T], error) {
	return Chain[T]{Attempts: attempts, Terminal: &terminal, Logger: logger}.Run(ctx)
}
