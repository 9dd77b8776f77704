// Package statemachine is a small guarded finite-state machine.
//
// States and events are anything with a Name. A transition may carry guards,
// which veto it, and actions, which run before the state changes. When
// several transitions share a state and event, the first whose guards pass
// wins, so guard-based branching is expressed by registration order.
//
//	const (
//		Clean    = statemachine.StringState("clean")
//		Invalid  = statemachine.StringState("invalid")
//		Validate = statemachine.StringEvent("validate")
//	)
//
//	m := statemachine.MustNew(Clean,
//		statemachine.WithTransition(Clean, Invalid, Validate, statemachine.WithGuard(failed)),
//		statemachine.WithTransition(Clean, Clean, Validate),
//	)
//	err := m.Fire(ctx, Validate, result)
//
// Actions receive the data passed to Fire, so a caller can pass a pointer and
// let the action write the result of the transition into it.
//
// Fire errors are NoTransitionError, RejectedError or ActionError; use
// IsNoTransition and IsRejected to tell them apart.
package statemachine
