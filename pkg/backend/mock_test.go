package backend_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/backend"
	"github.com/dmitrymomot/storefront/pkg/pricing"
)

func TestMock(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("seeded catalog", func(t *testing.T) {
		t.Parallel()
		m := backend.NewMock()

		products, err := m.ListProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, products, 3)
	})

	t.Run("checkout returns sentinel and subscribes user", func(t *testing.T) {
		t.Parallel()
		m := backend.NewMock(
			backend.WithMockCustomers(backend.Customer{ID: "u1", Name: "Ada", Email: "ada@example.com"}),
		)

		resp, err := m.CreateCheckoutSession(ctx, backend.CheckoutSessionRequest{PriceID: "price_pro_month", UserID: "u1"})
		require.NoError(t, err)
		assert.Equal(t, backend.MockSessionURL, resp.SessionURL)

		details, err := m.CustomerDetails(ctx, "u1")
		require.NoError(t, err)
		require.NotNil(t, details.Subscription)
		require.NotNil(t, details.Plan)
		assert.Equal(t, "active", details.Subscription.Status)
		assert.Equal(t, "Pro Plan", details.Plan.Name)

		require.NoError(t, m.CancelSubscription(ctx, details.Subscription.StripeSubscriptionID))
		details, err = m.CustomerDetails(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, details.Subscription.Canceled())
	})

	t.Run("unknown price", func(t *testing.T) {
		t.Parallel()
		m := backend.NewMock(backend.WithMockProducts(pricing.RawProduct{ID: "p"}))

		_, err := m.CreateCheckoutSession(ctx, backend.CheckoutSessionRequest{PriceID: "price_x"})
		apiErr, ok := backend.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, "no such price", apiErr.Message)
	})

	t.Run("create customer", func(t *testing.T) {
		t.Parallel()
		m := backend.NewMock(backend.WithMockCustomers())

		c, err := m.CreateCustomer(ctx, backend.CreateCustomerRequest{Name: "Bob", Email: "bob@example.com"})
		require.NoError(t, err)
		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, c.StripeCustomerID)

		_, err = m.CreateCustomer(ctx, backend.CreateCustomerRequest{Name: "Bob", Email: "BOB@example.com"})
		apiErr, ok := backend.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, apiErr.StatusCode)

		_, err = m.CreateCustomer(ctx, backend.CreateCustomerRequest{})
		apiErr, ok = backend.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

		customers, err := m.ListCustomers(ctx)
		require.NoError(t, err)
		assert.Len(t, customers, 1)
	})

	t.Run("sessions", func(t *testing.T) {
		t.Parallel()
		m := backend.NewMock()

		_, err := m.CheckoutSession(ctx, "cs_1")
		assert.True(t, backend.IsNotFound(err))

		m.AddSession(backend.SessionDetails{Session: backend.CheckoutSession{ID: "cs_1", Status: "complete"}})
		details, err := m.CheckoutSession(ctx, "cs_1")
		require.NoError(t, err)
		assert.Equal(t, "complete", details.Session.Status)
	})

	t.Run("cancel unknown subscription", func(t *testing.T) {
		t.Parallel()
		err := backend.NewMock().CancelSubscription(ctx, "sub_nope")
		assert.True(t, backend.IsNotFound(err))
	})
}
