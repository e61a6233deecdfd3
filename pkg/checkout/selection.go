package checkout

import (
	"time"

	"github.com/dmitrymomot/storefront/pkg/pricing"
)

// State is a checkout flow state.
type State string

const (
	StateIdle              State = "idle"
	StatePlanSelected      State = "plan_selected"
	StateCheckoutPending   State = "checkout_pending"
	StateCheckoutSucceeded State = "checkout_succeeded"
	StateCheckoutFailed    State = "checkout_failed"
)

// PaymentStatus is the state as the payment modal sees it.
type PaymentStatus string

const (
	PaymentIdle    PaymentStatus = "idle"
	PaymentLoading PaymentStatus = "loading"
	PaymentSuccess PaymentStatus = "success"
	PaymentError   PaymentStatus = "error"
)

// Selection is one visitor's checkout state.
type Selection struct {
	State        State     `json:"state"`
	PlanID       string    `json:"plan_id,omitempty"`
	Monthly      bool      `json:"monthly"`
	Reason       string    `json:"reason,omitempty"`
	PendingSince time.Time `json:"pending_since,omitzero"`
	UpdatedAt    time.Time `json:"updated_at,omitzero"`
}

// NewSelection is the state of a fresh page load: nothing selected, monthly prices.
func NewSelection() Selection {
	return Selection{State: StateIdle, Monthly: true}
}

// PaymentStatus maps the state onto the payment modal.
func (s Selection) PaymentStatus() PaymentStatus {
	switch s.State {
	case StateCheckoutPending:
		return PaymentLoading
	case StateCheckoutSucceeded:
		return PaymentSuccess
	case StateCheckoutFailed:
		return PaymentError
	default:
		return PaymentIdle
	}
}

// IsSelected reports whether planID is the visitor's current plan.
func (s Selection) IsSelected(planID string) bool {
	return s.PlanID != "" && s.PlanID == planID
}

// Interval is the billing interval the next confirmation uses.
func (s Selection) Interval() pricing.Interval {
	return pricing.IntervalFor(s.Monthly)
}
