package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("statemachine: from, to and event are required")
	ErrInvalidEvent      = errors.New("statemachine: event is required")
	ErrInvalidState      = errors.New("statemachine: state is required")
)

// NoTransitionError means no transition is registered for the state and event.
type NoTransitionError struct {
	State string
	Event string
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("statemachine: no transition from %q on %q", e.State, e.Event)
}

// RejectedError means every registered transition was vetoed by a guard.
type RejectedError struct {
	State string
	Event string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("statemachine: guards rejected every transition from %q on %q", e.State, e.Event)
}

// ActionError wraps the error of an action that aborted a transition.
type ActionError struct {
	From  string
	Event string
	Err   error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("statemachine: action failed from %q on %q: %v", e.From, e.Event, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

func IsNoTransition(err error) bool {
	var e *NoTransitionError
	return errors.As(err, &e)
}

func IsRejected(err error) bool {
	var e *RejectedError
	return errors.As(err, &e)
}
