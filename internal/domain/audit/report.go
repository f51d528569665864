package audit

import (
	"strings"
	"time"
)

// MinQueryLength matches the backend's own lower bound; enforcing it locally
// saves a round trip that would only come back as an error body.
const MinQueryLength = 5

// Report is the raw transparency report returned by the backend for one
// completed request. It is opaque text; a new request fully replaces it.
type Report struct {
	Query      string
	Text       string
	ReceivedAt time.Time
}

// NormalizeQuery trims the raw input and validates it. Validation failures are
// local: no network call is made and request state is untouched.
func NormalizeQuery(raw string) (string, error) {
	q := strings.TrimSpace(raw)
	if q == "" {
		return "", ErrEmptyQuery
	}
	if len(q) < MinQueryLength {
		return "", ErrQueryTooShort
	}
	return q, nil
}
