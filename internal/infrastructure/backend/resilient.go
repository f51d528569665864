package backend

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/fortify/timeout"

	"github.com/audittrail/trailgauge/internal/domain/audit"
)

// Caller is the outbound surface the orchestrator depends on.
type Caller interface {
	Audit(ctx context.Context, query string) (string, error)
	Endpoint() string
}

// TimeoutCaller bounds each audit call. There is deliberately no retry stage:
// the interaction is user-initiated and user-recoverable only.
type TimeoutCaller struct {
	inner Caller
	limit time.Duration
}

func NewTimeoutCaller(inner Caller, limit time.Duration) *TimeoutCaller {
	return &TimeoutCaller{inner: inner, limit: limit}
}

func (c *TimeoutCaller) Endpoint() string { return c.inner.Endpoint() }

func (c *TimeoutCaller) Audit(ctx context.Context, query string) (string, error) {
	t := timeout.New[string](timeout.Config{
		DefaultTimeout: c.limit,
	})

	report, err := t.Execute(ctx, c.limit, func(ctx context.Context) (string, error) {
		return c.inner.Audit(ctx, query)
	})
	if err != nil {
		var te *audit.TransportError
		var se *audit.ResponseShapeError
		if errors.As(err, &te) || errors.As(err, &se) {
			return "", err
		}
		// Timeouts and cancellations surface as transport failures.
		return "", &audit.TransportError{Endpoint: c.inner.Endpoint(), Err: err}
	}
	return report, nil
}
