package backend

import (
	"context"
	"time"

	"github.com/dmitrymomot/storefront/pkg/pricing"
)

// API is the set of backend operations the storefront consumes.
type API interface {
	ListProducts(ctx context.Context) ([]pricing.RawProduct, error)
	ListCustomers(ctx context.Context) ([]Customer, error)
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (Customer, error)
	CustomerDetails(ctx context.Context, id string) (CustomerDetails, error)
	CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (CheckoutSessionResponse, error)
	CheckoutSession(ctx context.Context, sessionID string) (SessionDetails, error)
	CancelSubscription(ctx context.Context, subscriptionID string) error
}

// Customer is a user known to the backend.
type Customer struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	StripeCustomerID string    `json:"stripe_customer_id"`
	CreatedAt        time.Time `json:"created_at"`
}

type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Subscription is the latest subscription of a customer.
type Subscription struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"user_id"`
	StripeSubscriptionID string    `json:"stripe_subscription_id"`
	PriceID              string    `json:"price_id"`
	Status               string    `json:"status"`
	CurrentPeriodEnd     time.Time `json:"current_period_end"`
}

// Canceled reports whether the subscription can no longer be cancelled.
func (s Subscription) Canceled() bool {
	return s.Status == "canceled"
}

// PlanInfo describes the price a subscription is billed with.
// Amount is in minor currency units.
type PlanInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Interval string `json:"interval"`
}

type CustomerDetails struct {
	User         Customer      `json:"user"`
	Subscription *Subscription `json:"subscription,omitempty"`
	Plan         *PlanInfo     `json:"plan,omitempty"`
}

type CheckoutSessionRequest struct {
	PriceID    string `json:"priceId"`
	UserID     string `json:"userId,omitempty"`
	CustomerID string `json:"customerId,omitempty"`
}

type CheckoutSessionResponse struct {
	SessionURL string `json:"sessionUrl"`
}

// SessionCustomer is the payer information captured on the hosted page.
type SessionCustomer struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// CheckoutSession is a completed or pending hosted checkout session.
type CheckoutSession struct {
	ID              string           `json:"id"`
	Status          string           `json:"status"`
	PaymentStatus   string           `json:"payment_status"`
	AmountTotal     int64            `json:"amount_total"`
	Currency        string           `json:"currency"`
	CustomerDetails *SessionCustomer `json:"customer_details,omitempty"`
}

type SessionDetails struct {
	Session CheckoutSession `json:"session"`
	User    Customer        `json:"user"`
}
