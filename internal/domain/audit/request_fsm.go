package audit

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// RequestState values for the single-flight request lifecycle.
const (
	StateIdle    = "idle"
	StatePending = "pending"
	StateSuccess = "success"
	StateError   = "error"
)

// Lifecycle events.
const (
	EventSubmit  = "submit"
	EventSucceed = "succeed"
	EventFail    = "fail"
)

// RequestContext carries state data for the request machine.
type RequestContext struct {
	SessionID string
}

// RequestMachine wraps the lifecycle state machine. Exactly one state is
// active at a time; submit is only accepted from idle, success, or error, so
// the machine itself enforces the single-flight invariant independent of any
// UI-level control disabling.
type RequestMachine struct {
	interpreter *statekit.Interpreter[RequestContext]
}

func NewRequestMachine(sessionID string) (*RequestMachine, error) {
	builder := statekit.NewMachine[RequestContext]("audit-request").
		WithInitial(statekit.StateID(StateIdle)).
		WithContext(RequestContext{SessionID: sessionID})

	builder.State(StateIdle).
		On(EventSubmit).Target(StatePending).
		Done()

	builder.State(StatePending).
		On(EventSucceed).Target(StateSuccess).
		On(EventFail).Target(StateError).
		Done()

	builder.State(StateSuccess).
		On(EventSubmit).Target(StatePending).
		Done()

	builder.State(StateError).
		On(EventSubmit).Target(StatePending).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build request machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &RequestMachine{interpreter: interpreter}, nil
}

// Transition attempts to apply an event. If no transition is defined for the
// event in the current state, the state is left unchanged and an error is
// returned; the caller decides whether that is an ignored submission or a bug.
func (m *RequestMachine) Transition(event string) error {
	before := m.Current()
	m.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	after := m.Current()

	if before != after {
		return nil
	}
	return fmt.Errorf("event %q is not valid in the %q state", event, before)
}

func (m *RequestMachine) Current() string {
	return string(m.interpreter.State().Value)
}
