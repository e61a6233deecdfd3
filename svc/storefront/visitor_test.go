package storefront_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/svc/storefront"
)

func TestVisitorMiddleware(t *testing.T) {
	t.Parallel()

	cookies, err := cookie.New([]string{strings.Repeat("k", 32)})
	require.NoError(t, err)

	var seen string
	h := storefront.VisitorMiddleware(cookies, time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = storefront.VisitorFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, uuid.Validate(seen))
	first := seen

	issued := rec.Result().Cookies()
	require.Len(t, issued, 1)
	assert.Equal(t, storefront.VisitorCookie, issued[0].Name)
	assert.Equal(t, 3600, issued[0].MaxAge)

	t.Run("signed cookie is reused", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(issued[0])
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		assert.Equal(t, first, seen)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("tampered cookie is replaced", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: storefront.VisitorCookie, Value: uuid.NewString() + ".forged"})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		assert.NotEqual(t, first, seen)
		assert.NoError(t, uuid.Validate(seen))
		assert.Len(t, rec.Result().Cookies(), 1)
	})
}

func TestLogExtractor(t *testing.T) {
	t.Parallel()

	_, ok := storefront.LogExtractor(t.Context())
	assert.False(t, ok)

	attr, ok := storefront.LogExtractor(storefront.WithVisitor(t.Context(), "v1"))
	require.True(t, ok)
	assert.Equal(t, "visitor_id", attr.Key)
	assert.Equal(t, "v1", attr.Value.String())
}
