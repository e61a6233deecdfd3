package binder

import "net/http"

// Query binds `query` tags from the URL query string.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		q := r.URL.Query()
		return decode(v, "query", func(name string) []string { return q[name] }, ErrInvalidQuery)
	}
}
