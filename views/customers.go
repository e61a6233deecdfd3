package views

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/backend"
	"github.com/dmitrymomot/storefront/pkg/pricing"
)

// Customer routes.
const (
	RouteCustomers = "/customers"
	RouteLogout    = "/customers/logout"
	IDCustomers    = "customers"
)

// CustomerPath returns the detail route of a customer.
func CustomerPath(id string) string {
	return RouteCustomers + "/" + url.PathEscape(id)
}

// SimulatePath is where a customer is picked as the acting identity.
func SimulatePath(id string) string {
	return CustomerPath(id) + "/simulate"
}

// CancelSubscriptionPath cancels subscriptionID of customer id.
func CancelSubscriptionPath(id, subscriptionID string) string {
	return CustomerPath(id) + "/subscriptions/" + url.PathEscape(subscriptionID) + "/cancel"
}

// CustomerForm is the state of the create form.
type CustomerForm struct {
	Name   string
	Email  string
	Errors handler.ValidationError
	// Message is a form-wide error, e.g. from the backend.
	Message string
}

// CustomersProps feeds the customer overview.
type CustomersProps struct {
	Customers []backend.Customer
	// LoadError replaces the table when the list could not be fetched.
	LoadError string
	Form      CustomerForm
	Theme     Theme
}

// CustomersPage is the customer overview document.
func CustomersPage(p CustomersProps) templ.Component {
	return Page(PageMeta{Title: "Kundenübersicht", Theme: p.Theme}, Customers(p))
}

// Customers is the patchable overview fragment (#customers).
func Customers(p CustomersProps) templ.Component {
	return component(func(_ context.Context, h *html) {
		t := p.Theme
		h.open("div", "id", IDCustomers)
		h.el("h2", "Kundenübersicht", "class", t.Heading)

		switch {
		case p.LoadError != "":
			h.el("p", p.LoadError, "class", t.Error)
		case len(p.Customers) == 0:
			h.el("p", "Noch keine Kunden vorhanden.", "class", t.Muted)
		default:
			h.open("table", "class", t.Table)
			h.raw("<thead><tr>")
			for _, col := range []string{"Name", "E-Mail", "Stripe-Kunde", "Angelegt", ""} {
				h.el("th", col, "class", "px-4 py-2 text-left text-sm font-semibold")
			}
			h.raw("</tr></thead><tbody>")
			for _, c := range p.Customers {
				h.open("tr")
				h.el("td", c.Name, "class", "px-4 py-2")
				h.el("td", c.Email, "class", "px-4 py-2")
				h.el("td", orDash(c.StripeCustomerID), "class", "px-4 py-2 font-mono text-sm")
				h.el("td", date(c.CreatedAt), "class", "px-4 py-2")
				h.open("td", "class", "px-4 py-2 flex gap-2")
				h.el("a", "Profil anzeigen", "href", CustomerPath(c.ID), "class", t.ButtonGhost)
				h.open("form", "method", "post", "action", SimulatePath(c.ID))
				h.el("button", "Plan auswählen", "type", "submit", "class", t.ButtonGhost)
				h.close("form")
				h.close("td")
				h.close("tr")
			}
			h.raw("</tbody>")
			h.close("table")
		}

		customerForm(h, p.Form, t)
		h.close("div")
	})
}

func customerForm(h *html, f CustomerForm, t Theme) {
	h.open("form", datastarForm(RouteCustomers, "class", "mt-8 bg-white rounded-lg shadow p-6 space-y-3 max-w-md")...)
	h.el("h3", "Kunden hinzufügen", "class", t.Subheading)
	if f.Message != "" {
		h.el("p", f.Message, "class", t.Error)
	}
	field(h, t, "name", "Name", "text", f.Name, f.Errors)
	field(h, t, "email", "E-Mail", "email", f.Email, f.Errors)
	h.el("button", "Anlegen", "type", "submit", "class", t.ButtonAccent)
	h.close("form")
}

func field(h *html, t Theme, name, label, typ, value string, errs handler.ValidationError) {
	h.open("label", "class", "block")
	h.el("span", label, "class", "block text-sm font-medium mb-1")
	h.open("input", "type", typ, "name", name, "value", value, "class", classes(t.Input, "w-full"))
	h.close("label")
	if errs.Has(name) {
		h.el("p", errs.Get(name), "class", classes(t.Error, "text-sm"))
	}
}

// CustomerProps feeds the customer detail page.
type CustomerProps struct {
	Details backend.CustomerDetails
	// LoadError replaces the details when they could not be fetched.
	LoadError string
	// ConfirmCancel shows the cancellation dialog.
	ConfirmCancel bool
	// Canceled shows the cancellation success dialog.
	Canceled bool
	// CancelError is shown above the subscription block.
	CancelError string
	Formatter   *pricing.Formatter
	Theme       Theme
}

// CustomerPage is the customer detail document.
func CustomerPage(p CustomerProps) templ.Component {
	return Page(PageMeta{Title: "Kundendetails", Theme: p.Theme}, Customer(p))
}

// Customer is the patchable detail fragment (#customer).
func Customer(p CustomerProps) templ.Component {
	return component(func(_ context.Context, h *html) {
		t := p.Theme
		u := p.Details.User
		h.open("div", "id", IDCustomer, "class", "bg-white rounded-lg shadow p-6 max-w-2xl mx-auto")
		h.el("h2", "Kundendetails", "class", t.Heading)

		if p.LoadError != "" {
			h.el("p", p.LoadError, "class", t.Error)
			h.el("a", "Zurück zur Übersicht", "href", RouteCustomers, "class", t.ButtonGhost)
			h.close("div")
			return
		}

		h.open("dl", "class", "grid grid-cols-2 gap-2 mb-6")
		term(h, "Name", u.Name)
		term(h, "E-Mail", u.Email)
		term(h, "Stripe-Kunde", orDash(u.StripeCustomerID))
		term(h, "Angelegt", date(u.CreatedAt))
		h.close("dl")

		if p.CancelError != "" {
			h.el("p", p.CancelError, "class", classes(t.Error, "mb-4"))
		}

		sub := p.Details.Subscription
		active := sub != nil && !sub.Canceled()
		h.el("h3", "Abonnement", "class", t.Subheading)
		if sub == nil {
			h.el("p", "Kein Abonnement vorhanden.", "class", classes(t.Muted, "mb-4"))
		} else {
			h.open("dl", "class", "grid grid-cols-2 gap-2 mb-4")
			term(h, "Status", sub.Status)
			term(h, "Preis-ID", sub.PriceID)
			term(h, "Laufzeit bis", date(sub.CurrentPeriodEnd))
			if plan := p.Details.Plan; plan != nil {
				term(h, "Plan", plan.Name)
				term(h, "Betrag", price(p.Formatter, decimal.New(plan.Amount, -2), strings.ToUpper(plan.Currency)))
				term(h, "Intervall", intervalLabel(plan.Interval))
			}
			h.close("dl")
		}

		h.open("div", "class", "flex flex-wrap gap-3")
		if active {
			h.el("a", "Abo kündigen", "href", CustomerPath(u.ID)+"?confirm=cancel",
				"data-on-click__prevent", "@get('"+CustomerPath(u.ID)+"?confirm=cancel')",
				"class", t.ButtonDanger)
		}
		label := "Abo auswählen"
		if active {
			label = "Plan ändern"
		}
		h.open("form", "method", "post", "action", SimulatePath(u.ID))
		h.el("button", label, "type", "submit", "class", t.ButtonGhost)
		h.close("form")
		h.open("form", "method", "post", "action", RouteLogout)
		h.el("button", "Logout", "type", "submit", "class", t.ButtonGhost)
		h.close("form")
		h.el("a", "Zurück zur Übersicht", "href", RouteCustomers, "class", t.ButtonGhost)
		h.close("div")

		if active && p.ConfirmCancel {
			confirmCancel(h, t, u.ID, cancelTarget(*sub))
		}
		if p.Canceled {
			h.open("div", "class", t.Modal, "role", "dialog")
			h.open("div", "class", t.ModalPanel)
			h.el("h2", "Abo gekündigt!", "class", "text-xl font-bold mb-2 text-green-700")
			h.el("p", "Dein Abonnement wurde erfolgreich gekündigt.", "class", "text-gray-700 mb-6")
			h.el("a", "OK", "href", CustomerPath(u.ID), "class", "px-5 py-2 rounded bg-green-600 text-white font-semibold")
			h.close("div")
			h.close("div")
		}
		h.close("div")
	})
}

// cancelTarget is the id the backend cancels by: the payment provider's
// subscription id when known.
func cancelTarget(s backend.Subscription) string {
	if s.StripeSubscriptionID != "" {
		return s.StripeSubscriptionID
	}
	return s.ID
}

func confirmCancel(h *html, t Theme, customerID, subscriptionID string) {
	h.open("div", "class", t.Modal, "role", "dialog", "aria-modal", "true")
	h.open("div", "class", t.ModalPanel)
	h.el("h2", "Abo kündigen?", "class", "text-xl font-bold mb-2")
	h.el("p", "Möchtest du dein Abonnement wirklich kündigen? Diese Aktion kann nicht rückgängig gemacht werden.", "class", "text-gray-700 mb-6")
	h.open("div", "class", "flex justify-end gap-3")
	h.el("a", "Abbrechen", "href", CustomerPath(customerID), "class", t.ButtonGhost)
	h.open("form", datastarForm(CancelSubscriptionPath(customerID, subscriptionID))...)
	h.el("button", "Ja, kündigen", "type", "submit", "class", t.ButtonDanger)
	h.close("form")
	h.close("div")
	h.close("div")
	h.close("div")
}

func term(h *html, name, value string) {
	h.el("dt", name, "class", "text-gray-600")
	h.el("dd", orDash(value), "class", "font-medium")
}

func intervalLabel(interval string) string {
	switch pricing.Interval(strings.ToLower(interval)) {
	case pricing.IntervalMonth:
		return "monatlich"
	case pricing.IntervalYear:
		return "jährlich"
	default:
		return interval
	}
}

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02.01.2006")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
