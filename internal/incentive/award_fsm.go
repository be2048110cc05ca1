package incentive

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// statekit.StateID needs untyped constants.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)

const (
	EventApprove = "approve"
	EventPay     = "pay"
	EventCancel  = "cancel"
)

type awardContext struct {
	AwardID string
}

// AwardStateMachine wraps the lifecycle of a single award:
// pending -> approved -> paid, with cancel allowed from pending or approved.
type AwardStateMachine struct {
	interpreter *statekit.Interpreter[awardContext]
}

func NewAwardStateMachine(awardID, status string) (*AwardStateMachine, error) {
	if !IsKnownStatus(status) {
		return nil, fmt.Errorf("unknown award status %q", status)
	}

	builder := statekit.NewMachine[awardContext]("incentive-award").
		WithInitial(statekit.StateID(status)).
		WithContext(awardContext{AwardID: awardID})

	builder.State(StatusPending).
		On(EventApprove).Target(StatusApproved).
		On(EventCancel).Target(StatusCancelled).
		Done()

	builder.State(StatusApproved).
		On(EventPay).Target(StatusPaid).
		On(EventCancel).Target(StatusCancelled).
		Done()

	builder.State(StatusPaid).Done()
	builder.State(StatusCancelled).Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build award state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &AwardStateMachine{interpreter: interpreter}, nil
}

func (m *AwardStateMachine) Current() string {
	return string(m.interpreter.State().Value)
}

// Fire sends event and reports the resulting status. ok is false when the
// current status has no transition for event.
func (m *AwardStateMachine) Fire(event string) (next string, ok bool) {
	before := m.Current()
	m.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	after := m.Current()
	return after, after != before
}

func IsKnownStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// IsMutable reports whether final_reward may still change.
func IsMutable(status string) bool {
	return status == StatusPending || status == StatusApproved
}
