package client

import "strings"

// Phase is the controller's submission lifecycle
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// ResultKind tags a Result
type ResultKind int

const (
	ResultSuccess ResultKind = iota + 1
	ResultFailure
)

// Result is the outcome of one submission: a summary or a failure message
type Result struct {
	Kind ResultKind
	Text string
}

// Success builds a successful Result
func Success(summary string) Result { return Result{Kind: ResultSuccess, Text: summary} }

// Failure builds a failed Result
func Failure(message string) Result { return Result{Kind: ResultFailure, Text: message} }

// State is a snapshot of the controller. Outcome only carries meaning in
// PhaseSucceeded and PhaseFailed, so a loading state never holds a result.
type State struct {
	Input   string
	Phase   Phase
	Outcome string
}

// Loading reports whether a submission is in flight
func (s State) Loading() bool { return s.Phase == PhaseSubmitting }

// Result returns the last result, if any
func (s State) Result() (Result, bool) {
	switch s.Phase {
	case PhaseSucceeded:
		return Success(s.Outcome), true
	case PhaseFailed:
		return Failure(s.Outcome), true
	default:
		return Result{}, false
	}
}

// CanSubmit mirrors the submit button's enabled state
func (s State) CanSubmit() bool {
	return !s.Loading() && strings.TrimSpace(s.Input) != ""
}

// ViewKind is which of the four panels to render
type ViewKind int

const (
	ViewPlaceholder ViewKind = iota
	ViewLoading
	ViewSummary
	ViewError
)

func (k ViewKind) String() string {
	switch k {
	case ViewLoading:
		return "loading"
	case ViewSummary:
		return "summary"
	case ViewError:
		return "error"
	default:
		return "placeholder"
	}
}

// View is what the presentation layer renders
type View struct {
	Kind      ViewKind
	Text      string
	CanSubmit bool
}

// Placeholder is shown before any summary exists
const Placeholder = "Your summary will appear here"

// Select picks the view for s
func Select(s State) View {
	v := View{CanSubmit: s.CanSubmit()}

	switch s.Phase {
	case PhaseSubmitting:
		v.Kind = ViewLoading
	case PhaseFailed:
		v.Kind = ViewError
		v.Text = s.Outcome
	case PhaseSucceeded:
		v.Kind = ViewSummary
		v.Text = s.Outcome
	default:
		v.Kind = ViewPlaceholder
		v.Text = Placeholder
	}

	return v
}
