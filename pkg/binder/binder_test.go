package binder_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/binder"
)

type request struct {
	CustomerID string   `path:"id"`
	PlanID     string   `form:"plan_id"`
	Monthly    bool     `form:"monthly"`
	Limit      int      `query:"limit"`
	Page       *int     `query:"page"`
	Tags       []string `form:"tag"`
	Untagged   string
	Skipped    string `form:"-"`
}

func formRequest(body url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/customers/42?limit=10&page=2", strings.NewReader(body.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=utf-8")
	return r
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("binds tagged fields", func(t *testing.T) {
		t.Parallel()
		r := formRequest(url.Values{
			"plan_id":  {"  pro "},
			"monthly":  {"on"},
			"tag":      {"a", "b"},
			"Untagged": {"x"},
			"Skipped":  {"x"},
		})

		var req request
		require.NoError(t, binder.Form()(r, &req))
		assert.Equal(t, "pro", req.PlanID)
		assert.True(t, req.Monthly)
		assert.Equal(t, []string{"a", "b"}, req.Tags)
		assert.Empty(t, req.Untagged)
		assert.Empty(t, req.Skipped)
		assert.Zero(t, req.Limit, "query values are not form values")
	})

	t.Run("invalid bool", func(t *testing.T) {
		t.Parallel()
		var req request
		err := binder.Form()(formRequest(url.Values{"monthly": {"maybe"}}), &req)
		assert.ErrorIs(t, err, binder.ErrInvalidForm)
	})

	t.Run("no body is not applicable", func(t *testing.T) {
		t.Parallel()
		var req request
		err := binder.Form()(httptest.NewRequest(http.MethodPost, "/", nil), &req)
		assert.ErrorIs(t, err, binder.ErrNotApplicable)
	})

	t.Run("json is not applicable", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
		r.Header.Set("Content-Type", "application/json")
		var req request
		assert.ErrorIs(t, binder.Form()(r, &req), binder.ErrNotApplicable)
	})

	t.Run("invalid target", func(t *testing.T) {
		t.Parallel()
		var s string
		assert.ErrorIs(t, binder.Form()(formRequest(url.Values{}), &s), binder.ErrInvalidTarget)
	})
}

func TestQuery(t *testing.T) {
	t.Parallel()

	var req request
	require.NoError(t, binder.Query()(formRequest(url.Values{}), &req))
	assert.Equal(t, 10, req.Limit)
	require.NotNil(t, req.Page)
	assert.Equal(t, 2, *req.Page)

	r := httptest.NewRequest(http.MethodGet, "/?limit=ten", nil)
	assert.ErrorIs(t, binder.Query()(r, &req), binder.ErrInvalidQuery)
}

func TestPath(t *testing.T) {
	t.Parallel()

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "42")
	r := httptest.NewRequest(http.MethodGet, "/customers/42", nil)
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

	var req request
	require.NoError(t, binder.Path(chi.URLParam)(r, &req))
	assert.Equal(t, "42", req.CustomerID)
}
