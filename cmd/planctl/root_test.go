package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/backend"
	"github.com/dmitrymomot/storefront/pkg/pricing"
)

func run(t *testing.T, api backend.API, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(api)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func demoCustomer(t *testing.T, api backend.API) backend.Customer {
	t.Helper()
	customers, err := api.ListCustomers(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, customers)
	return customers[0]
}

func TestPlans(t *testing.T) {
	t.Parallel()

	t.Run("table", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, backend.NewMock(), "", "plans")
		require.NoError(t, err)
		assert.Contains(t, out, "MONTHLY")
		assert.Contains(t, out, "Basic Plan")
		assert.Contains(t, out, "Enterprise Plan")
		assert.Contains(t, out, "17%")
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, backend.NewMock(), "", "plans", "-o", "json")
		require.NoError(t, err)

		var plans []pricing.Plan
		require.NoError(t, json.Unmarshal([]byte(out), &plans))
		require.Len(t, plans, 3)
		for _, p := range plans {
			assert.NotEmpty(t, p.MonthlyPriceID)
			assert.NotEmpty(t, p.YearlyPriceID)
		}
	})

	t.Run("unknown output format", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, backend.NewMock(), "", "plans", "-o", "xml")
		assert.Error(t, err)
	})
}

func TestCustomers(t *testing.T) {
	t.Parallel()

	t.Run("create then list", func(t *testing.T) {
		t.Parallel()
		api := backend.NewMock()

		out, err := run(t, api, "", "customers", "create", "--name", "Erika Muster", "--email", "erika@example.com")
		require.NoError(t, err)
		assert.Contains(t, out, "erika@example.com")

		out, err = run(t, api, "", "customers", "list", "-o", "yaml")
		require.NoError(t, err)
		assert.Contains(t, out, "demo@example.com")
		assert.Contains(t, out, "erika@example.com")
	})

	t.Run("create requires name and email", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, backend.NewMock(), "", "customers", "create", "--name", "Erika")
		assert.Error(t, err)
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, backend.NewMock(), "", "customers", "create", "--name", "Demo", "--email", "demo@example.com")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "customer already exists")
	})

	t.Run("show unknown", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, backend.NewMock(), "", "customers", "show", "missing")
		require.Error(t, err)
		assert.True(t, backend.IsNotFound(err))
	})
}

func TestCheckoutAndCancel(t *testing.T) {
	t.Parallel()
	api := backend.NewMock()
	customer := demoCustomer(t, api)

	out, err := run(t, api, "", "checkout", "price_pro_month", "--user-id", customer.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Checkout completed")

	details, err := api.CustomerDetails(t.Context(), customer.ID)
	require.NoError(t, err)
	require.NotNil(t, details.Subscription)
	subID := details.Subscription.StripeSubscriptionID

	out, err = run(t, api, "", "customers", "show", customer.ID)
	require.NoError(t, err)
	assert.Contains(t, out, subID)
	assert.Contains(t, out, "active")
	assert.Contains(t, out, "19.99 eur / month")

	out, err = run(t, api, "n\n", "subscriptions", "cancel", subID)
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")

	out, err = run(t, api, "", "subscriptions", "cancel", subID, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "canceled.")

	details, err = api.CustomerDetails(t.Context(), customer.ID)
	require.NoError(t, err)
	assert.True(t, details.Subscription.Canceled())
}

func TestCheckoutUnknownPrice(t *testing.T) {
	t.Parallel()
	_, err := run(t, backend.NewMock(), "", "checkout", "price_gold_month")
	assert.Error(t, err)
}

func TestSessions(t *testing.T) {
	t.Parallel()
	api := backend.NewMock()
	api.AddSession(backend.SessionDetails{
		Session: backend.CheckoutSession{ID: "cs_test_1", Status: "complete", PaymentStatus: "paid", AmountTotal: 1999, Currency: "eur"},
		User:    backend.Customer{Name: "Demo Kunde", Email: "demo@example.com"},
	})

	out, err := run(t, api, "", "sessions", "show", "cs_test_1")
	require.NoError(t, err)
	assert.Contains(t, out, "paid")
	assert.Contains(t, out, "19.99 eur")

	_, err = run(t, api, "", "sessions", "show", "cs_missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
