// Package handler turns typed request handlers into http.HandlerFuncs.
//
// A handler receives a Context and a request struct filled by binders, and
// returns a Response that renders itself:
//
//	type selectRequest struct {
//		PlanID string `form:"plan_id"`
//	}
//
//	r.Post("/checkout/select", handler.Wrap(
//		func(ctx handler.Context, req selectRequest) handler.Response {
//			return handler.Templ(views.PlanGrid(...), handler.WithTarget("#plans"))
//		},
//		handler.WithBinders[selectRequest](binder.Form()),
//		handler.WithErrorHandler[selectRequest](errs),
//	))
//
// Responses adapt to the caller. Datastar requests (Accept: text/event-stream)
// receive SSE element patches and client-side redirects, everything else
// receives plain HTML and HTTP redirects. Stream keeps an SSE connection open
// for server pushes.
//
// Errors from binding or rendering go to the ErrorHandler. NewErrorHandler
// renders an error page for page loads and a toast patch for Datastar
// requests.
package handler
