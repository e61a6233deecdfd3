package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/pricing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("pro plan with both intervals", func(t *testing.T) {
		t.Parallel()

		plans := pricing.Normalize([]pricing.RawProduct{{
			ID:   "prod_pro",
			Name: "Pro Plan",
			Prices: []pricing.RawPrice{
				{ID: "price_m", UnitAmount: 1999, Currency: "eur", Interval: pricing.IntervalMonth},
				{ID: "price_y", UnitAmount: 19990, Currency: "eur", Interval: pricing.IntervalYear},
			},
		}})

		require.Len(t, plans, 1)
		p := plans[0]
		assert.True(t, decimal.RequireFromString("19.99").Equal(p.MonthlyPrice))
		assert.True(t, decimal.RequireFromString("199.90").Equal(p.YearlyPrice))
		assert.Equal(t, 17, p.YearlyDiscountPercentage)
		assert.Equal(t, "price_m", p.MonthlyPriceID)
		assert.Equal(t, "price_y", p.YearlyPriceID)
		assert.Equal(t, "EUR", p.Currency)
		assert.Equal(t, pricing.DefaultFeatureRules().Rules[1].Features, p.Features)
	})

	t.Run("monthly only", func(t *testing.T) {
		t.Parallel()

		plans := pricing.Normalize([]pricing.RawProduct{{
			ID:     "prod_basic",
			Name:   "Basic",
			Prices: []pricing.RawPrice{{ID: "m", UnitAmount: 999, Currency: "usd", Interval: pricing.IntervalMonth}},
		}})

		require.Len(t, plans, 1)
		assert.True(t, plans[0].YearlyPrice.IsZero())
		assert.Equal(t, 0, plans[0].YearlyDiscountPercentage)
		assert.Empty(t, plans[0].YearlyPriceID)
		assert.Equal(t, "USD", plans[0].Currency)
	})

	t.Run("first price per interval wins", func(t *testing.T) {
		t.Parallel()

		plans := pricing.Normalize([]pricing.RawProduct{{
			Name: "Team",
			Prices: []pricing.RawPrice{
				{ID: "first", UnitAmount: 1000, Currency: "eur", Interval: pricing.IntervalMonth},
				{ID: "second", UnitAmount: 500, Currency: "eur", Interval: pricing.IntervalMonth},
			},
		}})

		require.Len(t, plans, 1)
		assert.Equal(t, "first", plans[0].MonthlyPriceID)
		assert.True(t, decimal.NewFromInt(10).Equal(plans[0].MonthlyPrice))
	})

	t.Run("yearly only keeps currency", func(t *testing.T) {
		t.Parallel()

		plans := pricing.Normalize([]pricing.RawProduct{{
			Name:   "Annual",
			Prices: []pricing.RawPrice{{ID: "y", UnitAmount: 12000, Currency: "chf", Interval: pricing.IntervalYear}},
		}})

		require.Len(t, plans, 1)
		assert.Equal(t, "CHF", plans[0].Currency)
		assert.Equal(t, 0, plans[0].YearlyDiscountPercentage)
	})

	t.Run("preserves input order", func(t *testing.T) {
		t.Parallel()

		plans := pricing.Normalize([]pricing.RawProduct{{ID: "b"}, {ID: "a"}, {ID: "c"}})
		require.Len(t, plans, 3)
		assert.Equal(t, "b", plans[0].ID)
		assert.Equal(t, "a", plans[1].ID)
		assert.Equal(t, "c", plans[2].ID)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, pricing.Normalize(nil))
	})
}

func TestYearlyDiscount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		monthly string
		yearly  string
		want    int
	}{
		{"ten months price", "10", "100", 17},
		{"exact twelve months", "10", "120", 0},
		{"half price", "10", "60", 50},
		{"more expensive yearly is clamped", "10", "150", 0},
		{"zero monthly", "0", "100", 0},
		{"zero yearly", "10", "0", 0},
		{"rounds half away from zero", "10", "105", 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := pricing.YearlyDiscount(
				decimal.RequireFromString(tt.monthly),
				decimal.RequireFromString(tt.yearly),
			)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlanHelpers(t *testing.T) {
	t.Parallel()

	p := pricing.Plan{
		MonthlyPrice:   decimal.RequireFromString("10"),
		YearlyPrice:    decimal.RequireFromString("96"),
		MonthlyPriceID: "m",
		YearlyPriceID:  "y",
	}

	assert.Equal(t, "m", p.PriceID(true))
	assert.Equal(t, "y", p.PriceID(false))
	assert.True(t, decimal.NewFromInt(8).Equal(p.MonthlyEquivalent()))
	assert.True(t, decimal.NewFromInt(24).Equal(p.YearlySavings()))
	assert.True(t, p.Price(false).Equal(p.YearlyPrice))
	assert.Equal(t, pricing.IntervalYear, pricing.IntervalFor(false))
}
