package views

import (
	"context"

	"github.com/a-h/templ"
)

// Question is one FAQ entry.
type Question struct {
	Question string
	Answer   string
}

// DefaultFAQ is shown below the plan grid.
var DefaultFAQ = []Question{
	{
		Question: "Wie kann ich mein Abonnement kündigen?",
		Answer:   "Sie können Ihr Abonnement jederzeit bequem in Ihrem Benutzerkonto kündigen. Nach der Kündigung bleibt Ihr Zugang bis zum Ende des bereits bezahlten Zeitraums erhalten.",
	},
	{
		Question: "Gibt es eine kostenlose Testphase?",
		Answer:   "Ja, Sie können unseren Service kostenlos testen. Während der Testphase stehen Ihnen alle Funktionen unverbindlich zur Verfügung.",
	},
	{
		Question: "Was passiert nach der Testphase?",
		Answer:   "Nach Ablauf der Testphase wird automatisch das von Ihnen gewählte Abonnement aktiviert, sofern Sie nicht vorher kündigen.",
	},
	{
		Question: "Welche Zahlungsmethoden gibt es?",
		Answer:   "Wir akzeptieren Kreditkarte, PayPal und SEPA-Lastschrift als Zahlungsmethoden.",
	},
	{
		Question: "Erhalte ich eine Rechnung?",
		Answer:   "Ja, nach jeder erfolgreichen Zahlung erhalten Sie eine Rechnung per E-Mail. Zusätzlich können Sie alle Rechnungen jederzeit in Ihrem Benutzerkonto einsehen.",
	},
	{
		Question: "Kann ich mein Abonnement ändern?",
		Answer:   "Sie können Ihr Abonnement jederzeit upgraden oder downgraden. Die Änderung wird entweder sofort oder zum nächsten Abrechnungszeitraum wirksam.",
	},
}

// FAQ renders DefaultFAQ.
func FAQ(t Theme) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.open("section", "class", "w-full max-w-3xl mx-auto mt-12")
		h.el("h2", "Häufig gestellte Fragen", "class", classes(t.Subheading, "text-center"))
		for _, q := range DefaultFAQ {
			h.open("div", "class", "bg-white rounded-lg shadow p-5 mb-4")
			h.el("h3", q.Question, "class", "font-semibold text-lg text-gray-900 mb-2")
			h.el("p", q.Answer, "class", "text-gray-700 text-base leading-relaxed")
			h.close("div")
		}
		h.close("section")
	})
}
