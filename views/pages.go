package views

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/backend"
	"github.com/dmitrymomot/storefront/pkg/pricing"
)

// Routes the hosted checkout returns to.
const (
	RouteSuccess = "/success"
	RouteCancel  = "/cancel"
)

// SuccessProps feeds the page shown after the hosted checkout completed.
// Session is nil when no session id was given or it could not be loaded.
type SuccessProps struct {
	Session   *backend.SessionDetails
	LoadError string
	Formatter *pricing.Formatter
	Theme     Theme
}

// SuccessPage confirms a completed payment.
func SuccessPage(p SuccessProps) templ.Component {
	body := component(func(_ context.Context, h *html) {
		t := p.Theme
		h.open("div", "class", "bg-white rounded-lg shadow p-8 max-w-2xl mx-auto text-center")
		h.el("h1", "Zahlung erfolgreich!", "class", classes(t.Heading, "text-green-700"))
		h.el("p", "Vielen Dank für Ihr Vertrauen. Ihr Abonnement wurde erfolgreich aktiviert.", "class", classes(t.Muted, "mb-6"))

		if p.LoadError != "" {
			h.el("p", p.LoadError, "class", classes(t.Error, "mb-6"))
		}
		if s := p.Session; s != nil {
			h.open("div", "class", "grid md:grid-cols-2 gap-6 text-left mb-8")

			h.open("div")
			h.el("h3", "Kundendaten", "class", t.Subheading)
			h.open("dl")
			name, email := s.User.Name, s.User.Email
			if cd := s.Session.CustomerDetails; cd != nil {
				if name == "" {
					name = cd.Name
				}
				if email == "" {
					email = cd.Email
				}
			}
			term(h, "Name:", name)
			term(h, "E-Mail:", email)
			h.close("dl")
			h.close("div")

			h.open("div")
			h.el("h3", "Bestelldetails", "class", t.Subheading)
			h.open("dl")
			term(h, "Bestell-ID:", s.Session.ID)
			term(h, "Status:", s.Session.PaymentStatus)
			term(h, "Gesamtbetrag:", price(p.Formatter, decimal.New(s.Session.AmountTotal, -2), strings.ToUpper(s.Session.Currency)))
			h.close("dl")
			h.close("div")

			h.close("div")
		}

		h.open("div", "class", "text-left mb-8")
		h.el("h3", "Was passiert als Nächstes?", "class", t.Subheading)
		h.open("ul", "class", "space-y-3")
		for _, step := range [][2]string{
			{"Bestätigungs-E-Mail", "Sie erhalten in wenigen Minuten eine Bestätigungs-E-Mail mit allen Details."},
			{"Sofortiger Zugang", "Ihr Konto wurde bereits aktiviert und Sie können sofort loslegen."},
			{"24/7 Support", "Unser Premium-Support-Team steht Ihnen rund um die Uhr zur Verfügung."},
		} {
			h.open("li")
			h.el("strong", step[0])
			h.el("p", step[1], "class", t.Muted)
			h.close("li")
		}
		h.close("ul")
		h.close("div")

		h.el("a", "Zurück zur Startseite", "href", RouteCheckout, "class", t.ButtonAccent)
		h.close("div")
	})
	return Page(PageMeta{Title: "Zahlung erfolgreich", Theme: p.Theme}, body)
}

// CancelPage is shown when the hosted checkout was abandoned.
func CancelPage(t Theme) templ.Component {
	body := component(func(_ context.Context, h *html) {
		h.open("div", "class", "bg-white rounded-lg shadow p-8 max-w-2xl mx-auto text-center")
		h.el("h1", "Zahlung abgebrochen", "class", t.Heading)
		h.el("p", "Kein Problem! Sie können jederzeit zu unseren Plänen zurückkehren.", "class", classes(t.Muted, "mb-6"))

		h.open("div", "class", "text-left mb-6")
		h.el("h2", "Was ist passiert?", "class", t.Subheading)
		h.el("p", "Der Checkout-Prozess wurde abgebrochen. Dies kann verschiedene Gründe haben:", "class", "mb-3")
		h.el("h3", "Mögliche Gründe:", "class", "font-semibold mb-2")
		h.open("ul", "class", "space-y-1")
		for _, r := range []string{
			"Sie haben den Vorgang bewusst abgebrochen",
			"Technische Probleme sind aufgetreten",
			"Sie möchten einen anderen Plan wählen",
			"Sie benötigen mehr Bedenkzeit",
		} {
			h.el("li", "✓ "+r, "class", "text-gray-700")
		}
		h.close("ul")
		h.close("div")

		h.open("div", "class", "text-left mb-8")
		h.el("h3", "Benötigen Sie Hilfe?", "class", "font-semibold mb-2")
		h.el("p", "Falls Sie Fragen haben oder Unterstützung benötigen, stehen wir Ihnen gerne zur Verfügung.", "class", t.Muted)
		h.close("div")

		h.open("div", "class", "flex justify-center gap-3")
		h.el("a", "Erneut versuchen", "href", RouteCheckout, "class", t.ButtonAccent)
		h.el("a", "Zurück zu den Plänen", "href", RouteCheckout, "class", t.ButtonGhost)
		h.close("div")
		h.close("div")
	})
	return Page(PageMeta{Title: "Zahlung abgebrochen", Theme: t}, body)
}

// ErrorPage renders handler.ErrorPageParams as a full document.
func ErrorPage(t Theme, p handler.ErrorPageParams) templ.Component {
	title := http.StatusText(p.StatusCode)
	body := component(func(_ context.Context, h *html) {
		h.open("div", "class", "bg-white rounded-lg shadow p-8 max-w-xl mx-auto text-center")
		h.el("p", strconv.Itoa(p.StatusCode), "class", "text-5xl font-bold text-gray-300 mb-2")
		h.el("h1", p.Message, "class", t.Heading)
		if p.RequestID != "" {
			h.el("p", "Referenz: "+p.RequestID, "class", classes(t.Muted, "text-sm font-mono mb-4"))
		}
		h.open("div", "class", "flex justify-center gap-3 mt-6")
		if p.RetryURL != "" {
			h.el("a", "Erneut versuchen", "href", p.RetryURL, "class", t.ButtonAccent)
		}
		h.el("a", "Zur Startseite", "href", RouteCheckout, "class", t.ButtonGhost)
		h.close("div")
		h.close("div")
	})
	return Page(PageMeta{Title: title, Theme: t}, body)
}

// Toast is a dismissible notification prepended to #toasts.
func Toast(p handler.ErrorToastParams) templ.Component {
	return component(func(_ context.Context, h *html) {
		class := "bg-red-50 border-red-300 text-red-800"
		switch p.Level {
		case "warning":
			class = "bg-yellow-50 border-yellow-300 text-yellow-800"
		case "info":
			class = "bg-green-50 border-green-300 text-green-800"
		}
		h.open("div", "role", "alert", "class", classes("rounded border px-4 py-3 shadow", class),
			"data-on-click", "el.remove()")
		h.text(p.Message)
		if p.RequestID != "" {
			h.el("span", " ("+p.RequestID+")", "class", "text-xs font-mono opacity-70")
		}
		h.close("div")
	})
}

// Notice is an informational toast.
func Notice(message string) templ.Component {
	return Toast(handler.ErrorToastParams{Message: message, Level: "info"})
}
