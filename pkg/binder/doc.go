// Package binder fills request structs from form bodies, query strings and
// path parameters.
//
// Each binder reads its own struct tag and touches only fields carrying it,
// so several binders can fill one struct:
//
//	type cancelRequest struct {
//		CustomerID     string `path:"id"`
//		SubscriptionID string `path:"subscriptionID"`
//		UserID         string `form:"user_id"`
//	}
//
// Supported field types are string, bool, the integer kinds, the float kinds,
// pointers to those for optional values, and slices for repeated keys.
// String values are trimmed.
//
// A binder that does not apply to the request returns ErrNotApplicable, which
// handler.Wrap skips.
package binder
