package identity

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/pkg/logger"
)

const (
	// QueryUserID and QueryCustomerID are the query parameters read by Resolve.
	QueryUserID     = "userId"
	QueryCustomerID = "stripeCustomerId"

	navigationKey     = "identity"
	persistedCookie   = "identity"
	defaultPersistTTL = 365 * 24 * time.Hour
)

// CookieStore is the subset of *cookie.Manager the resolver needs.
type CookieStore interface {
	SetJSON(w http.ResponseWriter, name string, v any, opts ...cookie.Option) error
	GetJSON(r *http.Request, name string, dest any) error
	SetFlash(w http.ResponseWriter, key string, v any) error
	GetFlash(w http.ResponseWriter, r *http.Request, key string, dest any) error
	Delete(w http.ResponseWriter, name string)
}

// Resolver reads and writes identities on HTTP requests.
type Resolver struct {
	cookies    CookieStore
	mode       Mode
	persistTTL time.Duration
	logger     *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

func WithMode(m Mode) Option {
	return func(r *Resolver) {
		if m == Atomic || m == PerField {
			r.mode = m
		}
	}
}

func WithPersistTTL(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.persistTTL = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver returns a per-field Resolver backed by cookies.
func NewResolver(cookies CookieStore, opts ...Option) *Resolver {
	r := &Resolver{
		cookies:    cookies,
		mode:       PerField,
		persistTTL: defaultPersistTTL,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(logger.Component("identity"))
	return r
}

// Resolve returns the identity for req. Navigation state is consumed by the
// call, so w must be the response for req. The returned error is
// ErrIdentityMissing when the visitor is anonymous; the zero Identity is
// still valid to use.
func (r *Resolver) Resolve(w http.ResponseWriter, req *http.Request) (Identity, error) {
	id := Merge(r.mode, r.navigation(w, req), FromQuery(req), r.persisted(req))
	if id.Anonymous() {
		return id, ErrIdentityMissing
	}
	return id, nil
}

// Merge combines ids, highest precedence first, with the resolver's mode.
func (r *Resolver) Merge(ids ...Identity) Identity {
	return Merge(r.mode, ids...)
}

// Navigate carries id to the next page load only.
func (r *Resolver) Navigate(w http.ResponseWriter, id Identity) error {
	return r.cookies.SetFlash(w, navigationKey, id)
}

// Persist remembers id for later visits.
func (r *Resolver) Persist(w http.ResponseWriter, id Identity) error {
	return r.cookies.SetJSON(w, persistedCookie, id, cookie.WithMaxAge(int(r.persistTTL.Seconds())))
}

// Forget removes the persisted identity.
func (r *Resolver) Forget(w http.ResponseWriter) {
	r.cookies.Delete(w, persistedCookie)
}

// Persisted returns the identity stored by Persist, if any.
func (r *Resolver) Persisted(req *http.Request) Identity {
	return r.persisted(req)
}

func (r *Resolver) navigation(w http.ResponseWriter, req *http.Request) Identity {
	var id Identity
	if err := r.cookies.GetFlash(w, req, navigationKey, &id); err != nil {
		r.logUnreadable(req, "navigation", err)
		return Identity{}
	}
	return id
}

func (r *Resolver) persisted(req *http.Request) Identity {
	var id Identity
	if err := r.cookies.GetJSON(req, persistedCookie, &id); err != nil {
		r.logUnreadable(req, "persisted", err)
		return Identity{}
	}
	return id
}

func (r *Resolver) logUnreadable(req *http.Request, source string, err error) {
	if errors.Is(err, cookie.ErrCookieNotFound) {
		return
	}
	r.logger.WarnContext(req.Context(), "ignoring unreadable identity",
		slog.String("source", source),
		logger.Error(err),
	)
}

// FromQuery reads userId and stripeCustomerId from the URL query.
func FromQuery(req *http.Request) Identity {
	q := req.URL.Query()
	return Identity{
		UserID:     strings.TrimSpace(q.Get(QueryUserID)),
		CustomerID: strings.TrimSpace(q.Get(QueryCustomerID)),
	}
}
