// Package broker creates hosted checkout sessions and cancels subscriptions
// through the billing backend, turning every failure into a typed error with a
// message that can be shown to the user.
//
// Each call is a single request: there are no retries and no timeouts beyond
// what the backend client's transport applies.
package broker

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/storefront/pkg/backend"
	"github.com/dmitrymomot/storefront/pkg/logger"
)

// MockSuccessURL is the session URL that marks a completed mock checkout.
// No navigation happens for it.
const MockSuccessURL = backend.MockSessionURL

// Backend is the subset of backend.API the broker needs.
type Backend interface {
	CreateCheckoutSession(ctx context.Context, req backend.CheckoutSessionRequest) (backend.CheckoutSessionResponse, error)
	CancelSubscription(ctx context.Context, subscriptionID string) error
}

// Session is the result of a successful checkout request.
type Session struct {
	URL string
}

// Completed reports whether the checkout finished without leaving the page.
func (s Session) Completed() bool {
	return s.URL == MockSuccessURL
}

// Broker talks to the backend on behalf of checkout flows.
type Broker struct {
	api    Backend
	logger *slog.Logger
}

// New returns a Broker. A nil logger discards logs.
func New(api Backend, log *slog.Logger) *Broker {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Broker{api: api, logger: log.With(logger.Component("broker"))}
}

// CreateCheckoutSession asks the backend for a hosted checkout session.
// userID and customerID are optional. Every failure is a *CheckoutError.
func (b *Broker) CreateCheckoutSession(ctx context.Context, priceID, userID, customerID string) (Session, error) {
	if strings.TrimSpace(priceID) == "" {
		return Session{}, &CheckoutError{Message: MissingPriceMessage, Err: ErrMissingPriceID}
	}

	resp, err := b.api.CreateCheckoutSession(ctx, backend.CheckoutSessionRequest{
		PriceID:    priceID,
		UserID:     userID,
		CustomerID: customerID,
	})
	if err != nil {
		b.logger.ErrorContext(ctx, "checkout session request failed",
			logger.PriceID(priceID),
			logger.UserID(userID),
			logger.CustomerID(customerID),
			logger.Error(err),
		)
		return Session{}, NewCheckoutError(err, DefaultCheckoutMessage)
	}

	url := strings.TrimSpace(resp.SessionURL)
	if url == "" {
		b.logger.ErrorContext(ctx, "backend returned no session url", logger.PriceID(priceID))
		return Session{}, &CheckoutError{Message: EmptySessionMessage, Err: ErrEmptySessionURL}
	}

	b.logger.InfoContext(ctx, "checkout session created",
		logger.PriceID(priceID),
		logger.UserID(userID),
		slog.Bool("mock", url == MockSuccessURL),
	)
	return Session{URL: url}, nil
}

// CancelSubscription cancels a subscription. Every failure is a *CancelError.
func (b *Broker) CancelSubscription(ctx context.Context, subscriptionID string) error {
	if strings.TrimSpace(subscriptionID) == "" {
		return &CancelError{Message: MissingSubscriptionMessage, Err: ErrMissingSubscriptionID}
	}

	if err := b.api.CancelSubscription(ctx, subscriptionID); err != nil {
		b.logger.ErrorContext(ctx, "cancel subscription failed",
			logger.SubscriptionID(subscriptionID),
			logger.Error(err),
		)
		return newCancelError(err, DefaultCancelMessage)
	}

	b.logger.InfoContext(ctx, "subscription cancelled", logger.SubscriptionID(subscriptionID))
	return nil
}
