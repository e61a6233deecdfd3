package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/cookie"
)

const (
	secret    = "0123456789abcdef0123456789abcdef"
	oldSecret = "fedcba9876543210fedcba9876543210"
)

// roundTrip copies cookies set on rec into a new request.
func roundTrip(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
	return req
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := cookie.New(nil)
	require.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"", ""})
	require.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"short"})
	require.ErrorIs(t, err, cookie.ErrSecretTooShort)

	m, err := cookie.New([]string{"", secret})
	require.NoError(t, err)
	require.NotNil(t, m)
}

func TestSigned(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secret})
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		m.SetSigned(rec, "visitor", "v-123")

		got, err := m.GetSigned(roundTrip(rec), "visitor")
		require.NoError(t, err)
		assert.Equal(t, "v-123", got)

		c := rec.Result().Cookies()[0]
		assert.True(t, c.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
		assert.Equal(t, "/", c.Path)
	})

	t.Run("tampered value", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		m.SetSigned(rec, "visitor", "v-123")
		c := rec.Result().Cookies()[0]

		_, sig, _ := strings.Cut(c.Value, ".")
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "visitor", Value: "djQ1Ng." + sig})

		_, err := m.GetSigned(req, "visitor")
		require.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("value signed for another cookie", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		m.SetSigned(rec, "visitor", "v-123")
		c := rec.Result().Cookies()[0]

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "identity", Value: c.Value})

		_, err := m.GetSigned(req, "identity")
		require.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "visitor", Value: "no-dot"})

		_, err := m.GetSigned(req, "visitor")
		require.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		_, err := m.GetSigned(httptest.NewRequest(http.MethodGet, "/", nil), "visitor")
		require.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})
}

func TestSecretRotation(t *testing.T) {
	t.Parallel()

	old, err := cookie.New([]string{oldSecret})
	require.NoError(t, err)
	rotated, err := cookie.New([]string{secret, oldSecret})
	require.NoError(t, err)
	fresh, err := cookie.New([]string{secret})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	old.SetSigned(rec, "id", "value")

	got, err := rotated.GetSigned(roundTrip(rec), "id")
	require.NoError(t, err)
	assert.Equal(t, "value", got)

	_, err = fresh.GetSigned(roundTrip(rec), "id")
	require.ErrorIs(t, err, cookie.ErrInvalidSignature)
}

func TestJSONAndFlash(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secret}, cookie.WithSecure(true))
	require.NoError(t, err)

	type payload struct {
		UserID string `json:"user_id"`
	}

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, m.SetJSON(rec, "identity", payload{UserID: "u1"}, cookie.WithMaxAge(3600)))
		assert.Equal(t, 3600, rec.Result().Cookies()[0].MaxAge)
		assert.True(t, rec.Result().Cookies()[0].Secure)

		var got payload
		require.NoError(t, m.GetJSON(roundTrip(rec), "identity", &got))
		assert.Equal(t, "u1", got.UserID)
	})

	t.Run("flash is deleted on read", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, m.SetFlash(rec, "nav", payload{UserID: "u2"}))

		readRec := httptest.NewRecorder()
		var got payload
		require.NoError(t, m.GetFlash(readRec, roundTrip(rec), "nav", &got))
		assert.Equal(t, "u2", got.UserID)

		cookies := readRec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, -1, cookies[0].MaxAge)
	})

	t.Run("missing flash", func(t *testing.T) {
		t.Parallel()
		var got payload
		err := m.GetFlash(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), "nav", &got)
		require.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	m, err := cookie.NewFromConfig(cookie.Config{Secrets: " " + secret + " , " + oldSecret, Domain: "example.com", Secure: true})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.Set(rec, "a", "b")
	c := rec.Result().Cookies()[0]
	assert.Equal(t, "example.com", c.Domain)
	assert.True(t, c.Secure)

	_, err = cookie.NewFromConfig(cookie.Config{})
	require.ErrorIs(t, err, cookie.ErrNoSecret)
}
