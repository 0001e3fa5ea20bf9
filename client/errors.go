package client

import (
	"errors"
	"fmt"
)

// ErrSubmissionInFlight is returned by Submit while another submission from
// the same controller has not settled.
var ErrSubmissionInFlight = errors.New("submission already in flight")

// ErrorKind classifies why a submission failed.
type ErrorKind int

const (
	KindTransport ErrorKind = iota // collaborator unreachable
	KindStatus                     // non-success status
	KindDecode                     // body is not a GoalResult
	KindTimeout                    // no answer within the submit timeout
	KindInternal                   // the client itself failed
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	case KindTimeout:
		return "timeout"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Fallback messages when the collaborator gave no reason.
const (
	MsgServerError  = "Server error"
	MsgSubmitFailed = "Failed to submit form. Please try again."
)

// SubmitError is the single failure type of a submission.
type SubmitError struct {
	Kind    ErrorKind
	Status  int    // set for KindStatus
	Message string // collaborator supplied reason, if any
	Err     error
}

func (e *SubmitError) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("submit goal: %s (status %d): %s", e.Kind, e.Status, e.Message)
	case e.Message != "":
		return fmt.Sprintf("submit goal: %s: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("submit goal: %s: %v", e.Kind, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("submit goal: %s (status %d)", e.Kind, e.Status)
	default:
		return "submit goal: " + e.Kind.String()
	}
}

func (e *SubmitError) Unwrap() error { return e.Err }

// UserMessage is what the user is shown.
func (e *SubmitError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Kind == KindStatus {
		return MsgServerError
	}
	return MsgSubmitFailed
}

// asSubmitError wraps any error into a *SubmitError.
func asSubmitError(err error) *SubmitError {
	var se *SubmitError
	if errors.As(err, &se) {
		return se
	}
	return &SubmitError{Kind: KindTransport, Err: err}
}
