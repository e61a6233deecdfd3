package views

import (
	"context"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/checkout"
	"github.com/dmitrymomot/storefront/pkg/identity"
	"github.com/dmitrymomot/storefront/pkg/pricing"
)

// Checkout routes the fragments post to.
const (
	RouteCheckout = "/checkout"
	RouteSelect   = "/checkout/select"
	RouteInterval = "/checkout/interval"
	RouteDismiss  = "/checkout/dismiss"
	RouteReload   = "/checkout/reload"
	RouteStream   = "/checkout/stream"
)

const (
	loadingPlansText = "Lade Pläne..."
	emptyPlansText   = "Derzeit sind keine Pläne verfügbar."
)

// CheckoutProps is everything the checkout fragment is rendered from.
type CheckoutProps struct {
	Catalog   catalog.State
	Selection checkout.Selection
	Identity  identity.Identity
	Formatter *pricing.Formatter
	// DefaultDiscount is shown on the toggle badge while no plan is loaded.
	DefaultDiscount int
	// PopularPlanID marks one card with a highlight badge. Empty disables it.
	PopularPlanID string
	Theme         Theme
}

// ToggleDiscount is the percentage shown on the yearly toggle: the first
// plan's discount, or fallback when no plan is loaded.
func ToggleDiscount(plans []pricing.Plan, fallback int) int {
	if len(plans) == 0 {
		return fallback
	}
	return plans[0].YearlyDiscountPercentage
}

// CheckoutPage is the full checkout document. It subscribes to catalog
// updates through the stream route once loaded.
func CheckoutPage(p CheckoutProps) templ.Component {
	body := component(func(ctx context.Context, h *html) {
		h.open("div", "data-on-load", "@get('"+StreamURL(p.Identity)+"')")
		h.el("h2", "Wähle einen Plan", "class", classes(p.Theme.Heading, "text-center"))
		h.component(ctx, Checkout(p))
		h.component(ctx, FAQ(p.Theme))
		h.close("div")
	})
	return Page(PageMeta{Title: "Plan auswählen", Theme: p.Theme}, body)
}

// StreamURL is the catalog stream route carrying id, so patches pushed over
// the stream keep the identity in their forms.
func StreamURL(id identity.Identity) string {
	q := url.Values{}
	if id.UserID != "" {
		q.Set(identity.QueryUserID, id.UserID)
	}
	if id.CustomerID != "" {
		q.Set(identity.QueryCustomerID, id.CustomerID)
	}
	if len(q) == 0 {
		return RouteStream
	}
	return RouteStream + "?" + q.Encode()
}

// Checkout is the patchable checkout fragment (#checkout).
func Checkout(p CheckoutProps) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.open("div", "id", IDCheckout, "class", "flex flex-col items-center")
		identityBanner(h, p)

		switch p.Catalog.Status {
		case catalog.StatusReady:
			h.component(ctx, IntervalToggle(p))
			if len(p.Catalog.Plans) == 0 {
				h.el("p", emptyPlansText, "class", p.Theme.Muted)
				break
			}
			h.open("div", "class", "grid gap-6 grid-cols-1 sm:grid-cols-2 md:grid-cols-3 w-full mb-8")
			for _, plan := range p.Catalog.Plans {
				h.component(ctx, PlanCard(p, plan))
			}
			h.close("div")
		case catalog.StatusError:
			h.open("div", "class", "text-center my-6")
			h.el("p", p.Catalog.Message, "class", classes(p.Theme.Error, "mb-3"))
			h.open("form", datastarForm(RouteReload)...)
			h.el("button", "Erneut versuchen", "type", "submit", "class", p.Theme.ButtonGhost)
			h.close("form")
			h.close("div")
		default:
			h.el("p", loadingPlansText, "class", p.Theme.Muted)
		}

		h.component(ctx, PaymentModal(p))
		h.close("div")
	})
}

func identityBanner(h *html, p CheckoutProps) {
	if p.Identity.Anonymous() {
		return
	}
	label := p.Identity.Name
	if label == "" {
		label = p.Identity.Email
	}
	if label == "" {
		label = p.Identity.UserID
	}
	if label == "" {
		label = p.Identity.CustomerID
	}
	h.open("p", "class", classes(p.Theme.Muted, "mb-4"))
	h.text("Angemeldet als ")
	h.el("strong", label)
	h.close("p")
}

// IntervalToggle switches between monthly and yearly prices.
func IntervalToggle(p CheckoutProps) templ.Component {
	return component(func(_ context.Context, h *html) {
		monthly := p.Selection.Monthly
		h.open("div", "class", "flex justify-center mb-8")
		h.open("div", "class", "bg-gray-100 p-1 rounded-lg flex")

		intervalButton(h, p, true, monthly)
		intervalButton(h, p, false, !monthly)

		h.close("div")
		h.close("div")
	})
}

func intervalButton(h *html, p CheckoutProps, monthly, active bool) {
	class := p.Theme.Toggle
	if active {
		class = p.Theme.ToggleActive
	}
	h.open("form", datastarForm(RouteInterval)...)
	h.open("input", "type", "hidden", "name", "monthly", "value", strconv.FormatBool(monthly))
	identityFields(h, p.Identity)
	h.open("button", "type", "submit", "class", class, "aria-pressed", strconv.FormatBool(active))
	if monthly {
		h.text("Monatlich")
	} else {
		h.el("span", "Jährlich")
		h.el("span", discountBadge(ToggleDiscount(p.Catalog.Plans, p.DefaultDiscount)), "class", p.Theme.Badge)
	}
	h.close("button")
	h.close("form")
}

func discountBadge(pct int) string {
	if pct == 0 {
		return "%"
	}
	return "Spare " + strconv.Itoa(pct) + "%"
}

// PlanCard renders one plan for the active interval. The selected card's
// button confirms the purchase.
func PlanCard(p CheckoutProps, plan pricing.Plan) templ.Component {
	return component(func(_ context.Context, h *html) {
		monthly := p.Selection.Monthly
		selected := p.Selection.IsSelected(plan.ID)

		class := p.Theme.Card
		if selected {
			class = p.Theme.CardSelected
		}
		h.open("div", "class", class, "id", "plan-"+plan.ID)
		if p.PopularPlanID != "" && plan.ID == p.PopularPlanID {
			h.el("span", "⭐ Beliebtester Plan", "class", "self-start mb-2 text-xs font-semibold bg-yellow-100 text-yellow-800 px-2 py-1 rounded-full")
		}
		h.el("h3", plan.Name, "class", "text-xl font-bold mb-2")
		h.el("p", plan.Description, "class", classes(p.Theme.Muted, "mb-4"))

		h.open("div", "class", "mb-4")
		h.el("span", price(p.Formatter, plan.Price(monthly), plan.Currency), "class", "text-3xl font-bold")
		if monthly {
			h.el("span", "/Monat", "class", p.Theme.Muted)
		} else {
			h.el("span", "/Jahr", "class", p.Theme.Muted)
		}
		if !monthly && plan.YearlyDiscountPercentage > 0 {
			h.el("p", strconv.Itoa(plan.YearlyDiscountPercentage)+"% Ersparnis", "class", p.Theme.BadgeSuccess)
			h.el("p", "entspricht "+price(p.Formatter, plan.MonthlyEquivalent(), plan.Currency)+"/Monat", "class", classes(p.Theme.Muted, "text-sm"))
			h.el("p", "Du sparst "+price(p.Formatter, plan.YearlySavings(), plan.Currency)+" pro Jahr", "class", classes(p.Theme.Muted, "text-sm"))
		}
		h.close("div")

		h.open("ul", "class", "space-y-2 mb-6 flex-grow")
		for _, f := range plan.Features {
			h.open("li", "class", "flex items-start")
			h.el("span", "✓", "class", "text-green-500 mr-2")
			h.el("span", f)
			h.close("li")
		}
		h.close("ul")

		label, btn := "Plan auswählen", p.Theme.Button
		if selected {
			label, btn = "Jetzt kaufen", p.Theme.ButtonAccent
		}
		h.open("form", datastarForm(RouteSelect)...)
		h.open("input", "type", "hidden", "name", "plan_id", "value", plan.ID)
		identityFields(h, p.Identity)
		if p.Selection.PaymentStatus() == checkout.PaymentLoading {
			h.open("button", "type", "submit", "class", btn, "disabled", "disabled")
		} else {
			h.open("button", "type", "submit", "class", btn)
		}
		h.text(label)
		h.close("button")
		h.close("form")
		h.close("div")
	})
}

// identityFields carries the resolved identity across a POST.
func identityFields(h *html, id identity.Identity) {
	h.hidden("user_id", id.UserID)
	h.hidden("customer_id", id.CustomerID)
}

// price formats amount, falling back to a plain decimal without a formatter.
func price(f *pricing.Formatter, amount decimal.Decimal, code string) string {
	if f == nil {
		return amount.StringFixed(2) + " " + code
	}
	return f.Format(amount, code)
}
