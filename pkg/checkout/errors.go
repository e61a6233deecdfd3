package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrCheckoutInProgress = errors.New("checkout: a checkout is already in progress")
	ErrMissingVisitor     = errors.New("checkout: missing visitor id")
	ErrStore              = errors.New("checkout: selection store failure")
)

// InterruptedMessage is the failure reason for a checkout whose result never arrived.
const InterruptedMessage = "Der Checkout wurde unterbrochen. Bitte versuchen Sie es erneut."

// NoTransitionError means the current state has no transition for the event.
type NoTransitionError struct {
	State State
	Event Event
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("checkout: no transition from %s on %s", e.State, e.Event)
}

// RejectedError means every transition for the event was refused by its guards.
type RejectedError struct {
	State State
	Event Event
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("checkout: transition from %s on %s rejected", e.State, e.Event)
}

func IsNoTransition(err error) bool {
	var e *NoTransitionError
	return errors.As(err, &e)
}

func IsRejected(err error) bool {
	var e *RejectedError
	return errors.As(err, &e)
}
