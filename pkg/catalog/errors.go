package catalog

import "errors"

// DefaultLoadMessage is shown to users when the catalog cannot be loaded.
const DefaultLoadMessage = "Fehler beim Laden der Produktdaten. Bitte versuchen Sie es später erneut."

var ErrSuperseded = errors.New("catalog: load superseded by a newer request")

// LoadError is a failed catalog load. Message is safe to show; Err is the raw
// cause and is only logged.
type LoadError struct {
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return "catalog load: " + e.Message
	}
	return "catalog load: " + e.Err.Error()
}

func (e *LoadError) Unwrap() error { return e.Err }
