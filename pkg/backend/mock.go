package backend

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/storefront/pkg/pricing"
)

// MockSessionURL is the session URL the Mock returns for every checkout.
// It marks a checkout as completed without navigating to a hosted page.
const MockSessionURL = "#mock-checkout-success"

// Mock is an in-memory backend for local development and tests.
// It is safe for concurrent use.
type Mock struct {
	mu            sync.RWMutex
	products      []pricing.RawProduct
	customers     []Customer
	subscriptions map[string]Subscription // by user id
	sessions      map[string]SessionDetails
	now           func() time.Time
}

var _ API = (*Mock)(nil)

// MockOption configures a Mock.
type MockOption func(*Mock)

// WithMockProducts replaces the seeded product list.
func WithMockProducts(products ...pricing.RawProduct) MockOption {
	return func(m *Mock) { m.products = slices.Clone(products) }
}

// WithMockCustomers replaces the seeded customer list.
func WithMockCustomers(customers ...Customer) MockOption {
	return func(m *Mock) { m.customers = slices.Clone(customers) }
}

// WithMockSubscription attaches a subscription to the customer with sub.UserID.
func WithMockSubscription(sub Subscription) MockOption {
	return func(m *Mock) { m.subscriptions[sub.UserID] = sub }
}

// NewMock returns a Mock seeded with three plans and one customer.
func NewMock(opts ...MockOption) *Mock {
	m := &Mock{
		products:      seedProducts(),
		subscriptions: make(map[string]Subscription),
		sessions:      make(map[string]SessionDetails),
		now:           time.Now,
	}
	m.customers = []Customer{{
		ID:               uuid.NewString(),
		Name:             "Demo Kunde",
		Email:            "demo@example.com",
		StripeCustomerID: "cus_demo",
		CreatedAt:        m.now().UTC(),
	}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func seedProducts() []pricing.RawProduct {
	product := func(id, name, desc string, monthly, yearly int64) pricing.RawProduct {
		return pricing.RawProduct{
			ID:          id,
			Name:        name,
			Description: desc,
			Active:      true,
			Prices: []pricing.RawPrice{
				{ID: "price_" + id + "_month", UnitAmount: monthly, Currency: "eur", Interval: pricing.IntervalMonth},
				{ID: "price_" + id + "_year", UnitAmount: yearly, Currency: "eur", Interval: pricing.IntervalYear},
			},
		}
	}
	return []pricing.RawProduct{
		product("pro", "Pro Plan", "Für wachsende Teams", 1999, 19990),
		product("basic", "Basic Plan", "Für Einzelpersonen", 999, 9990),
		product("enterprise", "Enterprise Plan", "Für große Organisationen", 4999, 49990),
	}
}

func (m *Mock) ListProducts(ctx context.Context) ([]pricing.RawProduct, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.products), nil
}

func (m *Mock) ListCustomers(ctx context.Context) ([]Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.customers), nil
}

func (m *Mock) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (Customer, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" {
		return Customer{}, &APIError{StatusCode: http.StatusBadRequest, Message: "name and email are required"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.customers {
		if strings.EqualFold(c.Email, email) {
			return Customer{}, &APIError{StatusCode: http.StatusConflict, Message: "customer already exists"}
		}
	}

	id := uuid.NewString()
	customer := Customer{
		ID:               id,
		Name:             name,
		Email:            email,
		StripeCustomerID: "cus_" + strings.ReplaceAll(id, "-", "")[:14],
		CreatedAt:        m.now().UTC(),
	}
	m.customers = append(m.customers, customer)
	return customer, nil
}

func (m *Mock) CustomerDetails(ctx context.Context, id string) (CustomerDetails, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	customer, ok := m.customer(id)
	if !ok {
		return CustomerDetails{}, &APIError{StatusCode: http.StatusNotFound, Message: "user not found"}
	}

	details := CustomerDetails{User: customer}
	if sub, ok := m.subscriptions[id]; ok {
		details.Subscription = &sub
		if price, name, ok := m.price(sub.PriceID); ok {
			details.Plan = &PlanInfo{
				ID:       price.ID,
				Name:     name,
				Amount:   price.UnitAmount,
				Currency: price.Currency,
				Interval: string(price.Interval),
			}
		}
	}
	return details, nil
}

// CreateCheckoutSession records an active subscription for the user right away
// and returns MockSessionURL.
func (m *Mock) CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (CheckoutSessionResponse, error) {
	if req.PriceID == "" {
		return CheckoutSessionResponse{}, &APIError{StatusCode: http.StatusBadRequest, Message: "priceId is required"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, _, ok := m.price(req.PriceID); !ok {
		return CheckoutSessionResponse{}, &APIError{StatusCode: http.StatusBadRequest, Message: "no such price"}
	}

	if req.UserID != "" {
		if _, ok := m.customer(req.UserID); ok {
			now := m.now().UTC()
			m.subscriptions[req.UserID] = Subscription{
				ID:                   uuid.NewString(),
				UserID:               req.UserID,
				StripeSubscriptionID: "sub_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14],
				PriceID:              req.PriceID,
				Status:               "active",
				CurrentPeriodEnd:     now.AddDate(0, 1, 0),
			}
		}
	}

	return CheckoutSessionResponse{SessionURL: MockSessionURL}, nil
}

func (m *Mock) CheckoutSession(ctx context.Context, sessionID string) (SessionDetails, error) {
	if sessionID == "" {
		return SessionDetails{}, ErrMissingID
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if details, ok := m.sessions[sessionID]; ok {
		return details, nil
	}
	return SessionDetails{}, &APIError{StatusCode: http.StatusNotFound, Message: fmt.Sprintf("no such checkout session: %s", sessionID)}
}

func (m *Mock) CancelSubscription(ctx context.Context, subscriptionID string) error {
	if subscriptionID == "" {
		return ErrMissingID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for userID, sub := range m.subscriptions {
		if sub.StripeSubscriptionID == subscriptionID {
			sub.Status = "canceled"
			m.subscriptions[userID] = sub
			return nil
		}
	}
	return &APIError{StatusCode: http.StatusNotFound, Message: "subscription not found"}
}

// AddSession registers a checkout session that CheckoutSession will return.
func (m *Mock) AddSession(details SessionDetails) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[details.Session.ID] = details
}

func (m *Mock) customer(id string) (Customer, bool) {
	for _, c := range m.customers {
		if c.ID == id {
			return c, true
		}
	}
	return Customer{}, false
}

func (m *Mock) price(id string) (pricing.RawPrice, string, bool) {
	for _, p := range m.products {
		for _, price := range p.Prices {
			if price.ID == id {
				return price, p.Name, true
			}
		}
	}
	return pricing.RawPrice{}, "", false
}
