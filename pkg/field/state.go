package field

import (
	"context"

	"github.com/dmitrymomot/formkit/pkg/statemachine"
)

// Status is the state machine position of a field.
type Status string

const (
	Clean   Status = "clean"
	Invalid Status = "invalid"
)

func (s Status) Name() string { return string(s) }

// State is the transient runtime state of a field.
// An empty ErrorMessage means no error is shown.
type State struct {
	ErrorMessage string `json:"errorMessage,omitempty"`
	Dirty        bool   `json:"dirty"`
}

// Status derives the state machine position from the state.
func (s State) Status() Status {
	if s.ErrorMessage != "" {
		return Invalid
	}
	return Clean
}

// HasError reports whether an error indicator should be shown.
func (s State) HasError() bool {
	return s.ErrorMessage != ""
}

const eventValidate = statemachine.StringEvent("validate")

// outcome is the data a validate event carries. Actions write the state the
// transition produces into next.
type outcome struct {
	message string
	failed  bool
	next    State
}

func failed(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) bool {
	return data.(*outcome).failed
}

func showError(_ context.Context, _, _ statemachine.State, _ statemachine.Event, data any) error {
	o := data.(*outcome)
	o.next = State{ErrorMessage: o.message, Dirty: true}
	return nil
}

func reset(_ context.Context, _, _ statemachine.State, _ statemachine.Event, data any) error {
	data.(*outcome).next = State{}
	return nil
}

// newMachine builds the field lifecycle. A failed rule with a message moves
// to Invalid; anything else resets to Clean.
func newMachine() *statemachine.Machine {
	showErr := statemachine.WithAction(showError)
	isFailed := statemachine.WithGuard(failed)
	return statemachine.MustNew(Clean,
		statemachine.WithTransition(Clean, Invalid, eventValidate, isFailed, showErr),
		statemachine.WithTransition(Clean, Clean, eventValidate, statemachine.WithAction(reset)),
		statemachine.WithTransition(Invalid, Invalid, eventValidate, isFailed, showErr),
		statemachine.WithTransition(Invalid, Clean, eventValidate, statemachine.WithAction(reset)),
	)
}
