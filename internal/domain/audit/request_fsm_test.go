package audit_test

import (
	"testing"

	"github.com/audittrail/trailgauge/internal/domain/audit"
)

func TestRequestMachine_Lifecycle(t *testing.T) {
	m, err := audit.NewRequestMachine("session-1")
	if err != nil {
		t.Fatal(err)
	}

	if m.Current() != audit.StateIdle {
		t.Fatalf("Expected initial state idle, got %s", m.Current())
	}

	if err := m.Transition(audit.EventSubmit); err != nil {
		t.Fatal(err)
	}
	if m.Current() != audit.StatePending {
		t.Errorf("Expected pending after submit, got %s", m.Current())
	}

	if err := m.Transition(audit.EventSucceed); err != nil {
		t.Fatal(err)
	}
	if m.Current() != audit.StateSuccess {
		t.Errorf("Expected success, got %s", m.Current())
	}

	// Re-entrant: success accepts another submit.
	if err := m.Transition(audit.EventSubmit); err != nil {
		t.Fatal(err)
	}
	if err := m.Transition(audit.EventFail); err != nil {
		t.Fatal(err)
	}
	if m.Current() != audit.StateError {
		t.Errorf("Expected error, got %s", m.Current())
	}

	// Error accepts a fresh submit too.
	if err := m.Transition(audit.EventSubmit); err != nil {
		t.Fatal(err)
	}
	if m.Current() != audit.StatePending {
		t.Errorf("Expected pending after resubmit, got %s", m.Current())
	}
}

func TestRequestMachine_InvalidEventsLeaveStateUnchanged(t *testing.T) {
	m, err := audit.NewRequestMachine("session-2")
	if err != nil {
		t.Fatal(err)
	}

	// Completing while idle is not a defined transition.
	if err := m.Transition(audit.EventSucceed); err == nil {
		t.Error("Expected error for succeed while idle")
	}
	if m.Current() != audit.StateIdle {
		t.Errorf("State should be unchanged, got %s", m.Current())
	}

	// A submit while pending is the single-flight self-loop.
	if err := m.Transition(audit.EventSubmit); err != nil {
		t.Fatal(err)
	}
	if err := m.Transition(audit.EventSubmit); err == nil {
		t.Error("Expected error for submit while pending")
	}
	if m.Current() != audit.StatePending {
		t.Errorf("State should still be pending, got %s", m.Current())
	}
}
