// Package pricing converts raw product and price records returned by the billing
// backend into display-ready subscription plans.
//
// Normalization is a pure function: it performs no I/O and keeps no state, so it
// is safe to call from any goroutine and to test with literal fixtures.
//
//	plans := pricing.Normalize(products)
//	for _, p := range plans {
//		fmt.Println(p.Name, p.MonthlyPrice, p.YearlyDiscountPercentage)
//	}
//
// Prices are kept as full-precision decimals. Rounding to two places happens only
// when a Formatter renders them.
//
// Feature lists are assigned by an ordered list of case-insensitive substring
// rules on the product name. The built-in rules can be replaced with a YAML file:
//
//	rules:
//	  - match: basic
//	    features: ["Up to 5 projects", "E-mail support"]
//	default: ["All core features"]
package pricing
