package application_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/audittrail/trailgauge/internal/application"
	"github.com/audittrail/trailgauge/internal/domain/audit"
)

type mockCaller struct {
	report string
	err    error
	calls  atomic.Int32
	gate   chan struct{}
}

func (m *mockCaller) Endpoint() string { return "http://mock/audit" }

func (m *mockCaller) Audit(ctx context.Context, query string) (string, error) {
	m.calls.Add(1)
	if m.gate != nil {
		<-m.gate
	}
	return m.report, m.err
}

func newService(t *testing.T, caller *mockCaller) *application.AuditService {
	t.Helper()
	s, err := application.NewAuditService(caller, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func waitForState(t *testing.T, s *application.AuditService, state string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.State() == state {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("Timed out waiting for state %q, still %q", state, s.State())
}

func TestSubmit_SuccessExtractsScore(t *testing.T) {
	caller := &mockCaller{report: "AUDIT REPORT\n[ Confidence Score ]\n88%\n"}
	s := newService(t, caller)

	result, err := s.Submit(context.Background(), "is this code safe?")
	if err != nil {
		t.Fatal(err)
	}

	if s.State() != audit.StateSuccess {
		t.Errorf("Expected success state, got %s", s.State())
	}
	if !result.Score.Known || result.Score.Percent != 88 {
		t.Errorf("Expected score 88, got %+v", result.Score)
	}
	if result.Visual.DisplayedPercent != 88 {
		t.Errorf("Expected displayed 88, got %d", result.Visual.DisplayedPercent)
	}
	if report, ok := s.Report(); !ok || report.Text != caller.report {
		t.Error("Report should be stored on success")
	}
}

func TestSubmit_EmptyQueryMakesNoNetworkCall(t *testing.T) {
	caller := &mockCaller{report: "unused"}
	s := newService(t, caller)

	if _, err := s.Submit(context.Background(), ""); !errors.Is(err, audit.ErrEmptyQuery) {
		t.Errorf("Expected ErrEmptyQuery, got %v", err)
	}
	if _, err := s.Submit(context.Background(), "   "); !errors.Is(err, audit.ErrEmptyQuery) {
		t.Errorf("Expected ErrEmptyQuery for whitespace, got %v", err)
	}

	if n := caller.calls.Load(); n != 0 {
		t.Errorf("Validation failures must not reach the network, got %d calls", n)
	}
	if s.State() != audit.StateIdle {
		t.Errorf("State must be unchanged, got %s", s.State())
	}
}

func TestSubmit_SingleFlight(t *testing.T) {
	caller := &mockCaller{report: "report", gate: make(chan struct{})}
	s := newService(t, caller)

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), "first question")
		done <- err
	}()

	waitForState(t, s, audit.StatePending)

	if _, err := s.Submit(context.Background(), "second question"); !errors.Is(err, audit.ErrRequestInFlight) {
		t.Errorf("Expected ErrRequestInFlight, got %v", err)
	}

	close(caller.gate)
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	if n := caller.calls.Load(); n != 1 {
		t.Errorf("Expected exactly one outbound call, got %d", n)
	}
}

func TestSubmit_TransportErrorThenRecovery(t *testing.T) {
	transportErr := &audit.TransportError{Endpoint: "http://mock/audit", Status: 500}
	caller := &mockCaller{err: transportErr}
	s := newService(t, caller)

	_, err := s.Submit(context.Background(), "first question")
	var got *audit.TransportError
	if !errors.As(err, &got) {
		t.Fatalf("Expected TransportError, got %v", err)
	}
	if s.State() != audit.StateError {
		t.Errorf("Expected error state, got %s", s.State())
	}
	if s.Score().Known {
		t.Error("Score must be cleared to unavailable on failure")
	}

	// Recovery is user-initiated: a fresh submit runs the full lifecycle.
	caller.err = nil
	caller.report = "Average Confidence: 73%"
	result, err := s.Submit(context.Background(), "second question")
	if err != nil {
		t.Fatal(err)
	}
	if s.State() != audit.StateSuccess {
		t.Errorf("Expected success after recovery, got %s", s.State())
	}
	if result.Score.Percent != 73 {
		t.Errorf("Expected 73, got %v", result.Score.Percent)
	}
}

func TestSubmit_ExtractionMissIsStillSuccess(t *testing.T) {
	caller := &mockCaller{report: "A report with no recognizable numbers."}
	s := newService(t, caller)

	result, err := s.Submit(context.Background(), "what about this?")
	if err != nil {
		t.Fatal(err)
	}

	if s.State() != audit.StateSuccess {
		t.Errorf("Extraction miss must not fail the request, got %s", s.State())
	}
	if result.Score.Known {
		t.Error("Expected unavailable score")
	}
	if result.Visual.Band.Name != "unknown" {
		t.Errorf("Expected the neutral unknown band, got %q", result.Visual.Band.Name)
	}
	if report, ok := s.Report(); !ok || report.Text == "" {
		t.Error("The report is still displayed on an extraction miss")
	}
}

func TestSubmit_ResponseShapeError(t *testing.T) {
	caller := &mockCaller{err: &audit.ResponseShapeError{Endpoint: "http://mock/audit", Detail: "backend reported failure"}}
	s := newService(t, caller)

	_, err := s.Submit(context.Background(), "check this thing")
	var shapeErr *audit.ResponseShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("Expected ResponseShapeError, got %v", err)
	}
	if s.State() != audit.StateError {
		t.Errorf("Expected error state, got %s", s.State())
	}
	if _, ok := s.Report(); ok {
		t.Error("No report should be stored on a malformed response")
	}
}

func TestSubmit_NeverStuckPending(t *testing.T) {
	caller := &mockCaller{err: errors.New("some unexpected failure")}
	s := newService(t, caller)

	if _, err := s.Submit(context.Background(), "check this thing"); err == nil {
		t.Fatal("Expected an error")
	}
	if s.State() == audit.StatePending {
		t.Error("No exit path may leave the request pending")
	}
}
