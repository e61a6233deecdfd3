// Package backend is a typed JSON/HTTP client for the billing backend that owns
// products, customers, checkout sessions and subscriptions.
//
// Two implementations satisfy API: Client talks to a running backend, Mock keeps
// everything in memory for local development. NewFromConfig picks one at startup
// based on Config.UseMock; there is no runtime fallback from one to the other.
//
//	api := backend.NewFromConfig(cfg)
//	products, err := api.ListProducts(ctx)
//
// Non-2xx responses are returned as *APIError. Its Message carries the
// response body's "error" field when the backend supplied one.
package backend
