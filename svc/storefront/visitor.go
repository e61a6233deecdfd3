package storefront

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/pkg/logger"
)

// VisitorCookie holds the signed visitor id that keys checkout state.
const VisitorCookie = "visitor"

// VisitorCookies is the subset of *cookie.Manager the visitor middleware needs.
type VisitorCookies interface {
	SetSigned(w http.ResponseWriter, name, value string, opts ...cookie.Option)
	GetSigned(r *http.Request, name string) (string, error)
}

type visitorKey struct{}

func WithVisitor(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, visitorKey{}, id)
}

func VisitorFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(visitorKey{}).(string)
	return id, ok && id != ""
}

// LogExtractor adds the visitor id to log records.
func LogExtractor(ctx context.Context) (slog.Attr, bool) {
	if id, ok := VisitorFromContext(ctx); ok {
		return logger.VisitorID(id), true
	}
	return slog.Attr{}, false
}

// VisitorMiddleware makes sure every request has a visitor id. Unknown or
// tampered cookies are replaced by a fresh id.
func VisitorMiddleware(cookies VisitorCookies, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := cookies.GetSigned(r, VisitorCookie)
			if err != nil || uuid.Validate(id) != nil {
				id = uuid.NewString()
				cookies.SetSigned(w, VisitorCookie, id, cookie.WithMaxAge(int(ttl.Seconds())))
			}
			next.ServeHTTP(w, r.WithContext(WithVisitor(r.Context(), id)))
		})
	}
}
