// Package application wires the request lifecycle together: validation,
// single-flight enforcement, the outbound audit call, confidence extraction,
// and the derived gauge state.
package application

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/audittrail/trailgauge/internal/domain/audit"
	"github.com/audittrail/trailgauge/internal/domain/gauge"
	"github.com/audittrail/trailgauge/internal/extract"
	"github.com/audittrail/trailgauge/internal/infrastructure/backend"
)

// Result is the outcome of one successful submission. An unavailable score is
// still a success: the report is displayed, only the gauge shows the neutral
// "unavailable" presentation.
type Result struct {
	RequestID string
	Report    audit.Report
	Score     audit.Score
	Visual    gauge.VisualState
}

// AuditService owns the request state machine and the current query/report
// pair. At most one request is in flight; a second Submit while pending is
// rejected with ErrRequestInFlight before any network activity.
type AuditService struct {
	mu        sync.Mutex
	fsm       *audit.RequestMachine
	caller    backend.Caller
	extractor *extract.Extractor
	log       *zap.Logger

	token  string
	report *audit.Report
	score  audit.Score
}

func NewAuditService(caller backend.Caller, extractor *extract.Extractor, log *zap.Logger) (*AuditService, error) {
	fsm, err := audit.NewRequestMachine(uuid.NewString())
	if err != nil {
		return nil, err
	}
	if extractor == nil {
		extractor = extract.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AuditService{
		fsm:       fsm,
		caller:    caller,
		extractor: extractor,
		log:       log,
	}, nil
}

// State reports the current request state: idle, pending, success, or error.
func (s *AuditService) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fsm.Current()
}

// Endpoint is the resolved audit endpoint, for status messages.
func (s *AuditService) Endpoint() string {
	return s.caller.Endpoint()
}

// Report returns the last stored report, if any.
func (s *AuditService) Report() (audit.Report, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.report == nil {
		return audit.Report{}, false
	}
	return *s.report, true
}

// Score returns the last extracted score. Unavailable until a request
// succeeds, and reset to Unavailable whenever a request fails.
func (s *AuditService) Score() audit.Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Submit runs one full request lifecycle and blocks until it reaches a
// terminal state, so no exit path can leave the machine pending. Validation
// failures and in-flight rejections return before any network call with the
// request state untouched.
func (s *AuditService) Submit(ctx context.Context, rawQuery string) (*Result, error) {
	query, err := audit.NormalizeQuery(rawQuery)
	if err != nil {
		return nil, err
	}

	token, err := s.begin()
	if err != nil {
		return nil, err
	}

	s.log.Info("audit request started",
		zap.String("request_id", token),
		zap.String("endpoint", s.caller.Endpoint()),
	)

	text, err := s.caller.Audit(ctx, query)
	return s.complete(token, query, text, err)
}

// begin moves the machine to pending and installs a fresh request token. The
// previous report and score are cleared: a new request fully replaces them.
func (s *AuditService) begin() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fsm.Current() == audit.StatePending {
		return "", audit.ErrRequestInFlight
	}
	if err := s.fsm.Transition(audit.EventSubmit); err != nil {
		return "", err
	}

	token := uuid.NewString()
	s.token = token
	s.report = nil
	s.score = audit.Unavailable
	return token, nil
}

// complete applies the outcome of the network call. A completion whose token
// no longer matches the slot is discarded: a later submission owns the
// machine and its result must not be overwritten by a stale response.
func (s *AuditService) complete(token, query, text string, callErr error) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != token {
		s.log.Warn("stale audit response discarded", zap.String("request_id", token))
		return nil, audit.ErrSuperseded
	}

	if callErr != nil {
		if err := s.fsm.Transition(audit.EventFail); err != nil {
			return nil, err
		}
		s.score = audit.Unavailable
		s.log.Error("audit request failed",
			zap.String("request_id", token),
			zap.Error(callErr),
		)
		return nil, callErr
	}

	if err := s.fsm.Transition(audit.EventSucceed); err != nil {
		return nil, err
	}

	report := audit.Report{
		Query:      query,
		Text:       text,
		ReceivedAt: time.Now(),
	}
	score := s.extractor.Extract(text)
	s.report = &report
	s.score = score

	s.log.Info("audit request completed",
		zap.String("request_id", token),
		zap.Bool("score_known", score.Known),
		zap.Float64("score", score.Percent),
	)

	return &Result{
		RequestID: token,
		Report:    report,
		Score:     score,
		Visual:    gauge.Render(score),
	}, nil
}
