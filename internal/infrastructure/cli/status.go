package cli

import (
	"errors"
	"fmt"

	"github.com/audittrail/trailgauge/internal/domain/audit"
)

// statusFor turns a lifecycle error into the status line shown to the user.
// Transport and shape errors already carry the endpoint in their text.
func statusFor(err error, endpoint string) string {
	var transportErr *audit.TransportError
	var shapeErr *audit.ResponseShapeError

	switch {
	case errors.Is(err, audit.ErrEmptyQuery):
		return "Enter a question to audit."
	case errors.Is(err, audit.ErrQueryTooShort):
		return fmt.Sprintf("Question is too short to analyze (minimum %d characters).", audit.MinQueryLength)
	case errors.Is(err, audit.ErrRequestInFlight):
		return "An audit is already running."
	case errors.As(err, &transportErr):
		return fmt.Sprintf("Audit failed: %v", transportErr)
	case errors.As(err, &shapeErr):
		return fmt.Sprintf("Audit failed: %v", shapeErr)
	default:
		return fmt.Sprintf("Audit failed: %v (endpoint %s)", err, endpoint)
	}
}
