package broker

import (
	"errors"

	"github.com/dmitrymomot/storefront/pkg/backend"
)

const (
	// DefaultCheckoutMessage is shown when the backend gives no reason.
	DefaultCheckoutMessage = "Fehler bei der Session-Erstellung."
	// DefaultCancelMessage is shown when the backend gives no reason.
	DefaultCancelMessage = "Kündigung fehlgeschlagen."

	MissingPriceMessage        = "Preis-ID nicht verfügbar"
	PlanNotFoundMessage        = "Plan nicht gefunden"
	EmptySessionMessage        = "Keine Checkout-URL erhalten."
	MissingSubscriptionMessage = "Abonnement-ID fehlt."
)

var (
	ErrMissingPriceID        = errors.New("broker: missing price id")
	ErrPlanNotFound          = errors.New("broker: plan not found")
	ErrEmptySessionURL       = errors.New("broker: empty session url")
	ErrMissingSubscriptionID = errors.New("broker: missing subscription id")
)

// CheckoutError is a failed attempt to start a checkout.
// Message is safe to show to the user.
type CheckoutError struct {
	Message string
	Err     error
}

func (e *CheckoutError) Error() string {
	if e.Err == nil {
		return "checkout: " + e.Message
	}
	return "checkout: " + e.Message + ": " + e.Err.Error()
}

func (e *CheckoutError) Unwrap() error { return e.Err }

// CancelError is a failed subscription cancellation.
// Message is safe to show to the user.
type CancelError struct {
	Message string
	Err     error
}

func (e *CancelError) Error() string {
	if e.Err == nil {
		return "cancel subscription: " + e.Message
	}
	return "cancel subscription: " + e.Message + ": " + e.Err.Error()
}

func (e *CancelError) Unwrap() error { return e.Err }

// NewCheckoutError wraps err with a user-facing message. The backend's own
// message wins over fallback when err carries one.
func NewCheckoutError(err error, fallback string) *CheckoutError {
	return &CheckoutError{Message: userMessage(err, fallback), Err: err}
}

func newCancelError(err error, fallback string) *CancelError {
	return &CancelError{Message: userMessage(err, fallback), Err: err}
}

func userMessage(err error, fallback string) string {
	if apiErr, ok := backend.AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// CheckoutMessage returns the user-facing message of a CheckoutError in err's chain.
func CheckoutMessage(err error) (string, bool) {
	var ce *CheckoutError
	if errors.As(err, &ce) {
		return ce.Message, true
	}
	return "", false
}

// CancelMessage returns the user-facing message of a CancelError in err's chain.
func CancelMessage(err error) (string, bool) {
	var ce *CancelError
	if errors.As(err, &ce) {
		return ce.Message, true
	}
	return "", false
}
