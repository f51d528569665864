package audit

import (
	"errors"
	"fmt"
)

// Validation errors are handled locally, before any network activity.
var (
	ErrEmptyQuery    = errors.New("query is empty")
	ErrQueryTooShort = fmt.Errorf("query is shorter than %d characters", MinQueryLength)
)

// ErrRequestInFlight is returned when a submission arrives while another
// request is still pending. The caller should ignore the submission.
var ErrRequestInFlight = errors.New("an audit request is already in flight")

// ErrSuperseded marks a completion whose request token no longer matches the
// current slot; its result must be discarded, not rendered.
var ErrSuperseded = errors.New("audit request was superseded")

// TransportError covers network failures, timeouts, and non-2xx responses.
type TransportError struct {
	Endpoint string
	Status   int
	Err      error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("audit endpoint %s returned status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("audit endpoint %s unreachable: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ResponseShapeError covers a 2xx response whose body cannot be interpreted as
// a report: an envelope with success=false, a missing report field, or an
// error-prefixed plain-text body.
type ResponseShapeError struct {
	Endpoint string
	Detail   string
}

func (e *ResponseShapeError) Error() string {
	return fmt.Sprintf("malformed response from %s: %s", e.Endpoint, e.Detail)
}
