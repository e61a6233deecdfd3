package pricing

import "github.com/shopspring/decimal"

// Interval is a billing period.
type Interval string

const (
	IntervalMonth Interval = "month"
	IntervalYear  Interval = "year"
)

// IntervalFor maps the monthly toggle to an Interval.
func IntervalFor(monthly bool) Interval {
	if monthly {
		return IntervalMonth
	}
	return IntervalYear
}

// RawPrice is a recurring price as returned by the backend.
// UnitAmount is expressed in minor currency units.
type RawPrice struct {
	ID         string   `json:"id"`
	Nickname   string   `json:"nickname,omitempty"`
	UnitAmount int64    `json:"unit_amount"`
	Currency   string   `json:"currency"`
	Interval   Interval `json:"interval"`
	Created    int64    `json:"created,omitempty"`
}

// RawProduct is a product with its recurring prices as returned by the backend.
type RawProduct struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Active      bool       `json:"active"`
	Prices      []RawPrice `json:"prices"`
}

// Plan is a display-ready subscription tier derived from a RawProduct.
// Plans are rebuilt on every catalog load and never mutated.
type Plan struct {
	ID                       string          `json:"id"`
	Name                     string          `json:"name"`
	Description              string          `json:"description"`
	Currency                 string          `json:"currency"`
	MonthlyPrice             decimal.Decimal `json:"monthly_price"`
	YearlyPrice              decimal.Decimal `json:"yearly_price"`
	YearlyDiscountPercentage int             `json:"yearly_discount_percentage"`
	MonthlyPriceID           string          `json:"monthly_price_id,omitempty"`
	YearlyPriceID            string          `json:"yearly_price_id,omitempty"`
	Features                 []string        `json:"features"`
}

// Price returns the price for the selected interval.
func (p Plan) Price(monthly bool) decimal.Decimal {
	if monthly {
		return p.MonthlyPrice
	}
	return p.YearlyPrice
}

// PriceID returns the backend price id for the selected interval.
// It is empty when the plan has no price for that interval.
func (p Plan) PriceID(monthly bool) string {
	if monthly {
		return p.MonthlyPriceID
	}
	return p.YearlyPriceID
}

// MonthlyEquivalent is the yearly price spread over twelve months.
func (p Plan) MonthlyEquivalent() decimal.Decimal {
	if p.YearlyPrice.IsZero() {
		return decimal.Zero
	}
	return p.YearlyPrice.Div(decimal.NewFromInt(12))
}

// YearlySavings is what paying yearly saves compared to twelve monthly payments.
// It is never negative.
func (p Plan) YearlySavings() decimal.Decimal {
	if p.MonthlyPrice.IsZero() || p.YearlyPrice.IsZero() {
		return decimal.Zero
	}
	savings := p.MonthlyPrice.Mul(decimal.NewFromInt(12)).Sub(p.YearlyPrice)
	if savings.IsNegative() {
		return decimal.Zero
	}
	return savings
}
