// Package cookie manages HMAC-signed HTTP cookies.
//
// A Manager is created with one or more secrets of at least 32 characters.
// The first secret signs new cookies; every secret is tried when verifying, so
// secrets can be rotated without invalidating cookies already issued.
//
//	m, err := cookie.New([]string{secret})
//	_ = m.SetSigned(w, "visitor", id)
//	id, err := m.GetSigned(r, "visitor")
//
// SetJSON/GetJSON store a signed JSON document. SetFlash/GetFlash store a
// signed JSON value that is deleted on the first read, which is how state is
// carried across a single redirect.
package cookie
