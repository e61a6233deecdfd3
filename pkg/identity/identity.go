// Package identity resolves which customer is acting on a page.
//
// Three sources can supply an identity, from highest to lowest precedence:
// navigation state carried over a redirect from the previous page, URL query
// parameters, and an identity persisted earlier in a signed cookie. By default
// each field is taken from the first source that has it; in atomic mode both
// fields come from the first source that has either.
//
// A visitor without any identity is anonymous. Resolve reports that with
// ErrIdentityMissing, which callers treat as a normal condition.
package identity

import "errors"

// ErrIdentityMissing means no source supplied a user or customer id.
var ErrIdentityMissing = errors.New("identity: no identity resolved")

// Identity is the acting customer.
type Identity struct {
	UserID     string `json:"user_id,omitempty"`
	CustomerID string `json:"stripe_customer_id,omitempty"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
}

// Anonymous reports whether neither id is known.
func (i Identity) Anonymous() bool {
	return i.UserID == "" && i.CustomerID == ""
}

// Mode selects how sources are combined.
type Mode string

const (
	// PerField resolves user id and customer id independently.
	PerField Mode = "per_field"
	// Atomic takes every field from the single highest-precedence source
	// that supplies any id.
	Atomic Mode = "atomic"
)

// Merge combines identities ordered from highest to lowest precedence.
func Merge(mode Mode, sources ...Identity) Identity {
	if mode == Atomic {
		for _, s := range sources {
			if !s.Anonymous() {
				return s
			}
		}
		return Identity{}
	}

	var out Identity
	for _, s := range sources {
		out.UserID = first(out.UserID, s.UserID)
		out.CustomerID = first(out.CustomerID, s.CustomerID)
		out.Name = first(out.Name, s.Name)
		out.Email = first(out.Email, s.Email)
	}
	return out
}

func first(current, candidate string) string {
	if current != "" {
		return current
	}
	return candidate
}
