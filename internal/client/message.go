package client

import (
	"context"
	"errors"
	"net/http"
)

// User-facing failure messages
const (
	MsgEmptyInput  = "Please enter some text to summarize."
	MsgTooLarge    = "The text is too long to summarize. Please shorten it and try again."
	MsgNotReady    = "The summarizer is still starting up. Please try again in a moment."
	MsgUnavailable = "The summarization service is unavailable. Please contact the administrator."
	MsgFailed      = "Failed to generate summary. Please try again."
	MsgUnreachable = "Could not reach the summarization service. Please check your connection and try again."
	MsgCancelled   = "The request was cancelled."
	MsgNoSummary   = "No summary was generated. Please try again."
)

// serverUnavailable is the server's public message for a load failure that
// will not be retried
const serverUnavailable = "Summarizer is unavailable."

// Message turns any error from a submission into a readable sentence.
// Raw error text is never shown to the user.
func Message(err error) string {
	var se *StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoSummary):
		return MsgNoSummary
	case errors.Is(err, ErrBadResponse):
		return MsgFailed
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return MsgCancelled
	case errors.As(err, &se):
		switch {
		case se.Code == http.StatusBadRequest:
			return MsgEmptyInput
		case se.Code == http.StatusRequestEntityTooLarge:
			return MsgTooLarge
		case se.Code == http.StatusServiceUnavailable && se.Message == serverUnavailable:
			return MsgUnavailable
		case se.Code == http.StatusServiceUnavailable:
			return MsgNotReady
		default:
			return MsgFailed
		}
	default:
		return MsgUnreachable
	}
}
