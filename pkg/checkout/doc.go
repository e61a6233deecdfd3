// Package checkout drives the plan selection and checkout flow of a visitor.
//
// A visitor picks a plan once to select it and picks the same plan again to
// confirm. Confirming moves the selection to CheckoutPending and makes exactly
// one session broker call; its result moves the selection to
// CheckoutSucceeded, CheckoutFailed, or sends the browser to the hosted payment
// page. Terminal states are left only by an explicit dismissal.
//
//	Idle ──select P──▶ PlanSelected(P) ──select P──▶ CheckoutPending(P)
//	                        ▲   │select Q                 │
//	                        │   ▼                          ├─completed─▶ CheckoutSucceeded ─dismiss─▶ Idle
//	                        └── PlanSelected(Q)            ├─failed────▶ CheckoutFailed ─dismiss─▶ PlanSelected(P)
//	                                                       └─redirect──▶ (hosted page)
//
// Toggling the billing interval never changes the state; it only decides which
// price id the next confirmation uses.
//
// Service keeps one Selection per visitor in a Store. The per-visitor lock is
// released while the broker call is in flight, and a second confirmation
// arriving in that window finds CheckoutPending and is refused with
// ErrCheckoutInProgress.
package checkout
