package handler_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/binder"
)

type text string

func (t text) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(t))
	return err
}

func datastarRequest(method, target string, body io.Reader) *http.Request {
	r := httptest.NewRequest(method, target, body)
	r.Header.Set("Accept", "text/event-stream")
	r.Header.Set(handler.DataStarHeader, "true")
	return r
}

type selectRequest struct {
	PlanID string `form:"plan_id"`
	Limit  int    `query:"limit"`
}

func TestWrap(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(func(ctx handler.Context, req selectRequest) handler.Response {
		return handler.JSON(req)
	}, handler.WithBinders[selectRequest](binder.Form(), binder.Query()))

	t.Run("binds and renders", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/?limit=3", strings.NewReader(url.Values{"plan_id": {"pro"}}.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		h(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":{"PlanID":"pro","Limit":3}}`, rec.Body.String())
	})

	t.Run("skips binders that do not apply", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/?limit=1", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bind failure is a bad request", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/?limit=x", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		var got error
		nilHandler := handler.Wrap(func(handler.Context, struct{}) handler.Response { return nil },
			handler.WithErrorHandler[struct{}](func(_ handler.Context, err error) { got = err }))
		nilHandler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, got, handler.ErrNilResponse)
	})

	t.Run("error response reaches the error handler", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		h := handler.Wrap(func(handler.Context, struct{}) handler.Response {
			return handler.Error(handler.ErrConflict)
		})
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("decorators run outermost first", func(t *testing.T) {
		t.Parallel()
		var order []string
		deco := func(name string) handler.Decorator[struct{}] {
			return func(next handler.HandlerFunc[struct{}]) handler.HandlerFunc[struct{}] {
				return func(ctx handler.Context, req struct{}) handler.Response {
					order = append(order, name)
					return next(ctx, req)
				}
			}
		}
		h := handler.Wrap(func(handler.Context, struct{}) handler.Response { return handler.JSON(nil) },
			handler.WithDecorators(deco("a"), deco("b")))
		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, []string{"a", "b"}, order)
	})
}

func TestTemplResponses(t *testing.T) {
	t.Parallel()

	t.Run("page request gets html", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		err := handler.TemplPartial(text(`<div id="grid">x</div>`), text("<html>full</html>")).
			Render(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, "<html>full</html>", rec.Body.String())
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	})

	t.Run("datastar request gets a patch", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		err := handler.TemplPartial(text(`<div id="grid">x</div>`), text("<html>full</html>")).
			Render(rec, datastarRequest(http.MethodPost, "/", nil))
		require.NoError(t, err)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
		assert.Contains(t, rec.Body.String(), "datastar-patch-elements")
		assert.Contains(t, rec.Body.String(), `<div id="grid">x</div>`)
		assert.NotContains(t, rec.Body.String(), "full")
	})

	t.Run("multi sends every patch", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		err := handler.TemplMulti(text("page"),
			handler.NewPatch(text(`<div id="a">1</div>`)),
			handler.NewPatch(text(`<p>2</p>`), handler.WithTarget("#b"), handler.WithPatchMode(handler.PatchInner)),
		).Render(rec, datastarRequest(http.MethodPost, "/", nil))
		require.NoError(t, err)
		body := rec.Body.String()
		assert.Equal(t, 2, strings.Count(body, "event: datastar-patch-elements"))
		assert.Contains(t, body, "#b")
	})

	t.Run("status page", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.TemplStatus(http.StatusNotFound, text("gone")).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, handler.Redirect("/checkout").Render(rec, httptest.NewRequest(http.MethodPost, "/", nil)))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/checkout", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	require.NoError(t, handler.Redirect("https://pay.example/s/1").Render(rec, datastarRequest(http.MethodPost, "/", nil)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://pay.example/s/1")
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, handler.JSONError(handler.ErrNotFound).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"not_found","message":"Not Found"}}`, rec.Body.String())

	v := handler.NewValidationError()
	v.Add("email", "ungültig")
	rec = httptest.NewRecorder()
	require.NoError(t, handler.JSONError(v).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":["ungültig"]`)

	rec = httptest.NewRecorder()
	require.NoError(t, handler.JSONError(errors.New("secret detail")).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))
	errs := handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
		ErrorPage: func(p handler.ErrorPageParams) handler.Component {
			return text("page:" + p.Message)
		},
		ErrorToast: func(p handler.ErrorToastParams) handler.Component {
			return text(`<div class="toast">` + p.Level + ":" + p.Message + `</div>`)
		},
		Messages: map[int]string{http.StatusNotFound: "Seite nicht gefunden"},
		UserMessage: func(err error) (string, bool) {
			if strings.Contains(err.Error(), "visible") {
				return "sichtbar", true
			}
			return "", false
		},
	})

	t.Run("page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		errs(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/x", nil)), handler.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "page:Seite nicht gefunden", rec.Body.String())
		assert.Contains(t, logs.String(), "level=WARN")
	})

	t.Run("toast", func(t *testing.T) {
		rec := httptest.NewRecorder()
		errs(handler.NewContext(rec, datastarRequest(http.MethodPost, "/x", nil)), errors.New("visible failure"))
		assert.Contains(t, rec.Body.String(), "error:sichtbar")
		assert.Contains(t, rec.Body.String(), "#toasts")
		assert.Contains(t, logs.String(), "level=ERROR")
	})
}

func TestSSE(t *testing.T) {
	t.Parallel()

	t.Run("requires datastar", func(t *testing.T) {
		t.Parallel()
		err := handler.SSE(func(handler.Stream) error { return nil }).
			Render(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, err, handler.ErrNotDataStar)
	})

	t.Run("sends patches", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		err := handler.SSE(func(s handler.Stream) error {
			if err := s.Send(text(`<div id="plans">1</div>`)); err != nil {
				return err
			}
			return s.Send(text(`<div id="plans">2</div>`))
		}).Render(rec, datastarRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(rec.Body.String(), "datastar-patch-elements"))
	})
}

func TestContextValue(t *testing.T) {
	t.Parallel()

	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v1")
	assert.Equal(t, "v1", handler.ContextValue[string](ctx, key{}))
	assert.Zero(t, handler.ContextValue[int](ctx, key{}))
}
