package views

import (
	"context"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/storefront/pkg/checkout"
)

// PaymentModal overlays the checkout while a session is pending or after it
// settled. Closing it posts the dismissal.
func PaymentModal(p CheckoutProps) templ.Component {
	return component(func(_ context.Context, h *html) {
		status := p.Selection.PaymentStatus()
		if status == checkout.PaymentIdle {
			return
		}
		planName := p.Selection.PlanID
		if plan, ok := p.Catalog.Plan(p.Selection.PlanID); ok {
			planName = plan.Name
		}

		h.open("div", "class", p.Theme.Modal, "role", "dialog", "aria-modal", "true", "data-payment-status", string(status))
		h.open("div", "class", p.Theme.ModalPanel)

		switch status {
		case checkout.PaymentLoading:
			h.el("h2", "Weiterleitung zum Checkout...", "class", "text-xl font-bold mb-2")
			h.el("p", "Bitte warten, die Zahlungsseite wird vorbereitet.", "class", classes(p.Theme.Muted, "mb-2"))
		case checkout.PaymentSuccess:
			h.el("h2", "Zahlung erfolgreich!", "class", "text-xl font-bold mb-2 text-green-700")
			h.el("p", "Ihr Plan "+planName+" wurde erfolgreich gebucht.", "class", "text-gray-700 mb-6")
			h.open("div", "class", "flex justify-end")
			dismissButton(h, p, "OK", "px-5 py-2 rounded bg-green-600 text-white hover:bg-green-700 font-semibold")
			h.close("div")
		case checkout.PaymentError:
			h.el("h2", "Zahlung fehlgeschlagen", "class", "text-xl font-bold mb-2 text-red-700")
			h.el("p", p.Selection.Reason, "class", "text-gray-700 mb-6")
			h.open("div", "class", "flex justify-end gap-3")
			dismissButton(h, p, "Schließen", p.Theme.ButtonGhost)
			h.open("form", datastarForm(RouteSelect)...)
			h.open("input", "type", "hidden", "name", "plan_id", "value", p.Selection.PlanID)
			identityFields(h, p.Identity)
			h.el("button", "Erneut versuchen", "type", "submit", "class", p.Theme.ButtonDanger)
			h.close("form")
			h.close("div")
		}

		h.close("div")
		h.close("div")
	})
}

func dismissButton(h *html, p CheckoutProps, label, class string) {
	h.open("form", datastarForm(RouteDismiss)...)
	identityFields(h, p.Identity)
	h.el("button", label, "type", "submit", "class", class)
	h.close("form")
}
