// Package storefront serves the subscription storefront: the plan catalog
// with its checkout flow, the customer pages and the pages the hosted
// checkout returns to.
//
// Every page works without JavaScript. Datastar requests get SSE patches of
// the affected fragment instead of a post/redirect/get round trip.
package storefront

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/backend"
	"github.com/dmitrymomot/storefront/pkg/binder"
	"github.com/dmitrymomot/storefront/pkg/broadcast"
	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/checkout"
	"github.com/dmitrymomot/storefront/pkg/httpserver"
	"github.com/dmitrymomot/storefront/pkg/identity"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/pricing"
	"github.com/dmitrymomot/storefront/pkg/ratelimiter"
	"github.com/dmitrymomot/storefront/pkg/requestid"
	"github.com/dmitrymomot/storefront/views"
)

// Canceler cancels subscriptions. *broker.Broker implements it.
type Canceler interface {
	CancelSubscription(ctx context.Context, subscriptionID string) error
}

// Deps are the collaborators of a Service. Updates, Limiter and Checks are optional.
type Deps struct {
	Catalog   *catalog.Loader
	Updates   *broadcast.Broadcaster[catalog.State]
	Checkout  *checkout.Service
	Backend   backend.API
	Canceler  Canceler
	Identity  *identity.Resolver
	Cookies   VisitorCookies
	Formatter *pricing.Formatter
	Limiter   ratelimiter.Limiter
	Logger    *slog.Logger
	Checks    []httpserver.Check
	Theme     *views.Theme
}

// Service holds the storefront handlers.
type Service struct {
	cfg       Config
	catalog   *catalog.Loader
	updates   *broadcast.Broadcaster[catalog.State]
	checkout  *checkout.Service
	backend   backend.API
	canceler  Canceler
	identity  *identity.Resolver
	cookies   VisitorCookies
	formatter *pricing.Formatter
	limiter   ratelimiter.Limiter
	logger    *slog.Logger
	checks    []httpserver.Check
	theme     views.Theme
	onError   handler.ErrorHandler
}

// New validates deps and returns a Service.
func New(cfg Config, deps Deps) (*Service, error) {
	required := []struct {
		name string
		ok   bool
	}{
		{"catalog", deps.Catalog != nil},
		{"checkout", deps.Checkout != nil},
		{"backend", deps.Backend != nil},
		{"canceler", deps.Canceler != nil},
		{"identity", deps.Identity != nil},
		{"cookies", deps.Cookies != nil},
	}
	for _, dep := range required {
		if !dep.ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingDependency, dep.name)
		}
	}

	s := &Service{
		cfg:       cfg,
		catalog:   deps.Catalog,
		updates:   deps.Updates,
		checkout:  deps.Checkout,
		backend:   deps.Backend,
		canceler:  deps.Canceler,
		identity:  deps.Identity,
		cookies:   deps.Cookies,
		formatter: deps.Formatter,
		limiter:   deps.Limiter,
		logger:    deps.Logger,
		checks:    deps.Checks,
		theme:     views.DefaultTheme,
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	s.logger = s.logger.With(logger.Component("storefront"))
	if deps.Theme != nil {
		s.theme = *deps.Theme
	}

	s.onError = handler.NewErrorHandler(s.logger, handler.ErrorHandlerConfig{
		ErrorPage: func(p handler.ErrorPageParams) handler.Component {
			return views.ErrorPage(s.theme, p)
		},
		ErrorToast: func(p handler.ErrorToastParams) handler.Component {
			return views.Toast(p)
		},
		ToastTarget: "#" + views.IDToasts,
		Messages:    statusMessages,
		UserMessage: userMessage,
	})
	return s, nil
}

// Handler returns the router with every storefront route.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP, requestid.Middleware, middleware.Recoverer)

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(s.logger, s.cfg.ReadinessTimeout, s.checks...))
	r.Get("/api/plans", wrap(s, s.apiPlans))

	r.Group(func(r chi.Router) {
		r.Use(VisitorMiddleware(s.cookies, s.cfg.VisitorTTL))
		limited := r.With(s.rateLimit())

		r.Get("/", http.RedirectHandler(views.RouteCheckout, http.StatusSeeOther).ServeHTTP)

		r.Get(views.RouteCheckout, wrap(s, s.showCheckout))
		r.Get(views.RouteStream, wrap(s, s.streamCheckout))
		limited.Post(views.RouteSelect, wrap(s, s.selectPlan, binder.Form()))
		r.Post(views.RouteInterval, wrap(s, s.setInterval, binder.Form()))
		r.Post(views.RouteDismiss, wrap(s, s.dismiss, binder.Form()))
		limited.Post(views.RouteReload, wrap(s, s.reload, binder.Form()))

		r.Get(views.RouteCustomers, wrap(s, s.listCustomers))
		limited.Post(views.RouteCustomers, wrap(s, s.createCustomer, binder.Form()))
		r.Post(views.RouteLogout, wrap(s, s.logout))
		r.Get(views.RouteCustomers+"/{id}", wrap(s, s.showCustomer, binder.Path(chi.URLParam), binder.Query()))
		limited.Post(views.RouteCustomers+"/{id}/simulate", wrap(s, s.simulate, binder.Path(chi.URLParam)))
		limited.Post(views.RouteCustomers+"/{id}/subscriptions/{subscriptionID}/cancel", wrap(s, s.cancelSubscription, binder.Path(chi.URLParam)))

		r.Get(views.RouteSuccess, wrap(s, s.success, binder.Query()))
		r.Get(views.RouteCancel, wrap(s, s.canceled))
	})

	r.NotFound(wrap(s, func(handler.Context, struct{}) handler.Response {
		return handler.Error(handler.ErrNotFound)
	}))
	return r
}

// rateLimit guards the routes that call the backend, keyed by client IP.
func (s *Service) rateLimit() func(http.Handler) http.Handler {
	if s.limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return ratelimiter.Middleware(s.limiter, ratelimiter.RemoteAddr,
		ratelimiter.WithLogger(s.logger),
		ratelimiter.WithLimitHandler(func(w http.ResponseWriter, r *http.Request, _ ratelimiter.Result) {
			s.onError(handler.NewContext(w, r), handler.ErrTooManyRequests)
		}),
	)
}

func wrap[R any](s *Service, h handler.HandlerFunc[R], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[R](binders...),
		handler.WithErrorHandler[R](s.onError),
	)
}

// resolve returns the acting identity. extra sources, such as identity
// fields posted with a form, take precedence over the request's own.
func (s *Service) resolve(ctx handler.Context, extra ...identity.Identity) identity.Identity {
	// ErrIdentityMissing only means the visitor is anonymous.
	resolved, _ := s.identity.Resolve(ctx.ResponseWriter(), ctx.Request())
	return s.identity.Merge(append(extra, resolved)...)
}

func (s *Service) visitor(ctx context.Context) (string, error) {
	id, ok := VisitorFromContext(ctx)
	if !ok {
		return "", checkout.ErrMissingVisitor
	}
	return id, nil
}
