// Package client implements the interaction controller that sits between
// user input and the summarize API, plus an HTTP client for that API.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Summarizer is the outbound call the controller makes on submit
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Controller owns the input text and the submission state for one session.
// At most one submission is in flight at a time.
type Controller struct {
	api Summarizer

	mu        sync.Mutex
	state     State
	listeners []func(State)
}

// New creates a controller in the idle state
func New(api Summarizer) *Controller {
	return &Controller{api: api}
}

// UpdateInput replaces the input text
func (c *Controller) UpdateInput(text string) {
	c.mu.Lock()
	c.state.Input = text
	s := c.state
	c.mu.Unlock()

	c.notify(s)
}

// Submit sends the current input and blocks until the result is in.
// It returns false without doing anything when the input is blank or a
// submission is already in flight. Failures end up in the state, never
// in a return value or a panic.
func (c *Controller) Submit(ctx context.Context) bool {
	c.mu.Lock()
	if c.state.Loading() || strings.TrimSpace(c.state.Input) == "" {
		c.mu.Unlock()
		return false
	}
	text := c.state.Input
	c.state.Phase = PhaseSubmitting
	c.state.Outcome = ""
	s := c.state
	c.mu.Unlock()

	c.notify(s)

	result := c.call(ctx, text)

	c.mu.Lock()
	switch result.Kind {
	case ResultSuccess:
		c.state.Phase = PhaseSucceeded
	default:
		c.state.Phase = PhaseFailed
	}
	c.state.Outcome = result.Text
	s = c.state
	c.mu.Unlock()

	c.notify(s)
	return true
}

// State returns a snapshot of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View returns the view for the current state
func (c *Controller) View() View {
	return Select(c.State())
}

// Subscribe registers fn to receive every state change. fn runs on the
// goroutine that caused the change and must not call back into Submit.
func (c *Controller) Subscribe(fn func(State)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

func (c *Controller) call(ctx context.Context, text string) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("summarize call panicked", "panic", fmt.Sprint(r))
			result = Failure(MsgFailed)
		}
	}()

	summary, err := c.api.Summarize(ctx, text)
	if err != nil {
		slog.Debug("summarize call failed", "error", err)
		return Failure(Message(err))
	}
	if strings.TrimSpace(summary) == "" {
		return Failure(Message(ErrNoSummary))
	}
	return Success(summary)
}

func (c *Controller) notify(s State) {
	c.mu.Lock()
	listeners := append([]func(State){}, c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		callListener(fn, s)
	}
}

// callListener keeps a panicking subscriber from unwinding through Submit
// and leaving the controller stuck in PhaseSubmitting.
func callListener(fn func(State), s State) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("state listener panicked", "panic", fmt.Sprint(r))
		}
	}()
	fn(s)
}
