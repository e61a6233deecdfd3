package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// Normalizer turns raw products into plans using a fixed set of feature rules.
type Normalizer struct {
	rules FeatureRules
}

// NewNormalizer returns a Normalizer that assigns features with the given rules.
func NewNormalizer(rules FeatureRules) *Normalizer {
	return &Normalizer{rules: rules}
}

var defaultNormalizer = NewNormalizer(DefaultFeatureRules())

// Normalize converts products using the built-in feature rules.
func Normalize(products []RawProduct) []Plan {
	return defaultNormalizer.Normalize(products)
}

// Normalize converts every product into a Plan, preserving input order.
func (n *Normalizer) Normalize(products []RawProduct) []Plan {
	plans := make([]Plan, 0, len(products))
	for _, product := range products {
		plans = append(plans, n.plan(product))
	}
	return plans
}

func (n *Normalizer) plan(product RawProduct) Plan {
	monthly, hasMonthly := findPrice(product.Prices, IntervalMonth)
	yearly, hasYearly := findPrice(product.Prices, IntervalYear)

	plan := Plan{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Features:    n.rules.For(product.Name),
	}

	if hasMonthly {
		plan.MonthlyPrice = fromMinorUnits(monthly.UnitAmount)
		plan.MonthlyPriceID = monthly.ID
		plan.Currency = strings.ToUpper(monthly.Currency)
	}
	if hasYearly {
		plan.YearlyPrice = fromMinorUnits(yearly.UnitAmount)
		plan.YearlyPriceID = yearly.ID
		if plan.Currency == "" {
			plan.Currency = strings.ToUpper(yearly.Currency)
		}
	}
	plan.YearlyDiscountPercentage = YearlyDiscount(plan.MonthlyPrice, plan.YearlyPrice)

	return plan
}

// findPrice returns the first price with the given interval.
func findPrice(prices []RawPrice, interval Interval) (RawPrice, bool) {
	for _, p := range prices {
		if Interval(strings.ToLower(string(p.Interval))) == interval {
			return p, true
		}
	}
	return RawPrice{}, false
}

func fromMinorUnits(amount int64) decimal.Decimal {
	return decimal.New(amount, -2)
}

// YearlyDiscount returns round((1 - yearly/(monthly*12)) * 100).
// It is 0 when either price is missing or zero, and never negative.
func YearlyDiscount(monthly, yearly decimal.Decimal) int {
	if !monthly.IsPositive() || !yearly.IsPositive() {
		return 0
	}
	ratio := yearly.Div(monthly.Mul(twelve))
	pct := decimal.NewFromInt(1).Sub(ratio).Mul(hundred).Round(0)
	if pct.IsNegative() {
		return 0
	}
	return int(pct.IntPart())
}
