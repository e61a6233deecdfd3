package storefront

import (
	"errors"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/backend"
	"github.com/dmitrymomot/storefront/pkg/broker"
	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/checkout"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

var ErrMissingDependency = errors.New("storefront: missing dependency")

// Messages shown for a status code when no more specific message applies.
var statusMessages = map[int]string{
	400: "Die Anfrage war ungültig.",
	404: "Die Seite wurde nicht gefunden.",
	409: "Die Aktion ist gerade nicht möglich.",
	422: "Bitte überprüfen Sie Ihre Eingaben.",
	429: "Zu viele Anfragen. Bitte warten Sie einen Moment.",
	500: "Ein unerwarteter Fehler ist aufgetreten.",
	502: "Der Server ist momentan nicht erreichbar. Bitte versuchen Sie es später erneut.",
	503: "Der Dienst ist vorübergehend nicht verfügbar.",
}

const (
	checkoutBusyMessage   = "Der Checkout läuft bereits. Bitte warten."
	customersLoadMessage  = "Fehler beim Laden der Kunden"
	customerLoadMessage   = "Fehler beim Laden der Kundendaten"
	customerCreateMessage = "Fehler beim Anlegen des Kunden"
	cancelFailedPrefix    = "Kündigung fehlgeschlagen: "
	sessionLoadMessage    = "Die Bestelldaten konnten nicht geladen werden."
	missingPlanMessage    = "Bitte einen Plan auswählen."
	missingNameMessage    = "Bitte einen Namen angeben."
	invalidEmailMessage   = "Bitte eine gültige E-Mail-Adresse angeben."
	nameTooLongMessage    = "Der Name darf höchstens 100 Zeichen lang sein."
)

// userMessage extracts a message that is safe to show from err.
func userMessage(err error) (string, bool) {
	if msg, ok := broker.CheckoutMessage(err); ok {
		return msg, true
	}
	if msg, ok := broker.CancelMessage(err); ok {
		return msg, true
	}
	var loadErr *catalog.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Message, true
	}
	if errors.Is(err, checkout.ErrCheckoutInProgress) {
		return checkoutBusyMessage, true
	}
	return "", false
}

// formErrors maps rule failures to the field errors forms render.
func formErrors(err error) handler.ValidationError {
	v := handler.NewValidationError()
	for _, e := range validator.Extract(err) {
		v.Add(e.Field, e.Message)
	}
	return v
}

// backendError classifies a backend failure for the error handler.
func backendError(err error) error {
	switch {
	case backend.IsNotFound(err):
		return errors.Join(handler.ErrNotFound, err)
	case errors.Is(err, checkout.ErrCheckoutInProgress):
		return errors.Join(handler.ErrConflict, err)
	default:
		return errors.Join(handler.ErrBadGateway, err)
	}
}
