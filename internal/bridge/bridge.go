// Package bridge gates access to the summarization capability behind a
// one-time asynchronous load. Callers wait for the load to finish and the
// capability is never invoked before it has loaded successfully.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/drywaters/textsum/internal/summarizer"
)

var (
	// ErrNotReady means the capability has not finished loading, or its load failed.
	ErrNotReady = errors.New("summarizer not ready")

	// ErrCapability means the capability was invoked and failed.
	ErrCapability = errors.New("summarization failed")
)

// LoadError reports a failed load attempt. It matches ErrNotReady.
// Permanent is set when no further attempt will be made.
type LoadError struct {
	Err       error
	Permanent bool
}

func (e *LoadError) Error() string { return "failed to load summarizer: " + e.Err.Error() }
func (e *LoadError) Unwrap() error { return e.Err }
func (e *LoadError) Is(target error) bool {
	return target == ErrNotReady
}

// State is the lifecycle of the loaded capability
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "uninitialized"
	}
}

// Policy decides what happens after a failed load
type Policy string

const (
	// PolicyFailFast keeps a failed load for the life of the process.
	PolicyFailFast Policy = "fail-fast"
	// PolicyRetry starts a new load attempt on the next request after a failure.
	PolicyRetry Policy = "retry"
)

// LoadFunc produces a ready summarizer
type LoadFunc func(ctx context.Context) (summarizer.Summarizer, error)

// Option configures a Bridge
type Option func(*Bridge)

// WithStateHook registers fn to be called on every state change. fn runs
// without the bridge lock held, so it may call State or Err. A change that
// is overtaken by a newer one before fn sees it is skipped.
func WithStateHook(fn func(State)) Option {
	return func(b *Bridge) { b.onState = fn }
}

type attempt struct {
	ctx  context.Context
	done chan struct{}
	sum  summarizer.Summarizer
	err  error
}

// Bridge owns the process-wide summarizer
type Bridge struct {
	load    LoadFunc
	policy  Policy
	onState func(State)

	mu      sync.Mutex
	baseCtx context.Context
	state   State
	version uint64
	cur     *attempt
	closed  bool

	hookMu    sync.Mutex
	delivered uint64
}

// stateChange is a transition waiting to be handed to the state hook
type stateChange struct {
	version uint64
	state   State
}

// New creates a bridge. Nothing is loaded until Start or the first Wait.
func New(load LoadFunc, policy Policy, opts ...Option) *Bridge {
	b := &Bridge{
		load:    load,
		policy:  policy,
		baseCtx: context.Background(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Start begins loading in the background. ctx bounds the load itself, not
// the bridge's lifetime. Calling Start more than once has no effect.
func (b *Bridge) Start(ctx context.Context) {
	b.mu.Lock()
	if b.cur != nil || b.closed {
		b.mu.Unlock()
		return
	}
	b.baseCtx = ctx
	a, change := b.beginLocked()
	b.mu.Unlock()

	b.launch(a, change)
}

// Wait blocks until the capability is ready, its load fails or ctx ends.
func (b *Bridge) Wait(ctx context.Context) (summarizer.Summarizer, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, fmt.Errorf("%w: bridge closed", ErrNotReady)
	}
	a := b.cur
	var (
		change  stateChange
		started bool
	)
	if a == nil || (b.state == StateFailed && b.policy == PolicyRetry) {
		a, change = b.beginLocked()
		started = true
	}
	b.mu.Unlock()

	if started {
		b.launch(a, change)
	}

	select {
	case <-a.done:
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrNotReady, ctx.Err())
	}

	if a.err != nil {
		return nil, &LoadError{Err: a.err, Permanent: b.policy != PolicyRetry}
	}
	return a.sum, nil
}

// Summarize waits for readiness and invokes the capability exactly once.
func (b *Bridge) Summarize(ctx context.Context, text string) (string, error) {
	sum, err := b.Wait(ctx)
	if err != nil {
		return "", err
	}

	callID := uuid.NewString()
	start := time.Now()
	summary, err := invoke(ctx, sum, text)
	if err != nil {
		slog.Error("summarizer call failed",
			"call_id", callID,
			"provider", sum.Provider(),
			"duration", time.Since(start),
			"error", err)
		return "", fmt.Errorf("%w: %w", ErrCapability, err)
	}

	slog.Debug("summarizer call completed",
		"call_id", callID,
		"provider", sum.Provider(),
		"input_length", len(text),
		"summary_length", len(summary),
		"duration", time.Since(start))
	return summary, nil
}

// State returns the current lifecycle state
func (b *Bridge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Err returns the error of the last failed load, if the bridge is in StateFailed
func (b *Bridge) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateFailed || b.cur == nil {
		return nil
	}
	return &LoadError{Err: b.cur.err, Permanent: b.policy != PolicyRetry}
}

// Close releases the loaded summarizer if it holds resources. An attempt
// still loading is waited for so its client is not leaked.
func (b *Bridge) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	a := b.cur
	b.mu.Unlock()

	if a == nil {
		return nil
	}
	<-a.done
	if closer, ok := a.sum.(io.Closer); ok && a.err == nil {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to close summarizer: %w", err)
		}
	}
	return nil
}

// beginLocked registers a new load attempt. b.mu must be held. The caller
// hands the result to launch after unlocking.
func (b *Bridge) beginLocked() (*attempt, stateChange) {
	a := &attempt{ctx: b.baseCtx, done: make(chan struct{})}
	b.cur = a
	return a, b.setStateLocked(StateLoading)
}

func (b *Bridge) launch(a *attempt, change stateChange) {
	b.emit(change)
	go b.run(a)
}

func (b *Bridge) run(a *attempt) {
	loadID := uuid.NewString()
	start := time.Now()
	slog.Info("loading summarizer", "load_id", loadID, "policy", string(b.policy))

	sum, err := safeLoad(a.ctx, b.load)

	b.mu.Lock()
	a.sum, a.err = sum, err
	next := StateReady
	if err != nil {
		next = StateFailed
	}
	change := b.setStateLocked(next)
	close(a.done)
	b.mu.Unlock()

	b.emit(change)

	if err != nil {
		slog.Error("failed to load summarizer", "load_id", loadID, "duration", time.Since(start), "error", err)
		return
	}
	slog.Info("summarizer ready",
		"load_id", loadID,
		"provider", sum.Provider(),
		"model", sum.Model(),
		"duration", time.Since(start))
}

func (b *Bridge) setStateLocked(s State) stateChange {
	b.state = s
	b.version++
	return stateChange{version: b.version, state: s}
}

// emit passes change to the state hook unless a newer change already went out.
// b.mu must not be held.
func (b *Bridge) emit(change stateChange) {
	if b.onState == nil {
		return
	}
	b.hookMu.Lock()
	defer b.hookMu.Unlock()
	if change.version <= b.delivered {
		return
	}
	b.delivered = change.version
	b.onState(change.state)
}

func safeLoad(ctx context.Context, load LoadFunc) (sum summarizer.Summarizer, err error) {
	defer func() {
		if r := recover(); r != nil {
			sum, err = nil, fmt.Errorf("panic during load: %v", r)
		}
	}()

	sum, err = load(ctx)
	if err == nil && sum == nil {
		err = errors.New("loader returned no summarizer")
	}
	return sum, err
}

func invoke(ctx context.Context, sum summarizer.Summarizer, text string) (summary string, err error) {
	defer func() {
		if r := recover(); r != nil {
			summary, err = "", fmt.Errorf("panic in summarizer: %v", r)
		}
	}()

	summary, err = sum.Summarize(ctx, text)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(summary) == "" {
		return "", errors.New("summarizer returned empty output")
	}
	return summary, nil
}
