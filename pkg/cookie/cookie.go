package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"golang.org/x/crypto/hkdf"
)

const (
	minSecretLength = 32
	flashPrefix     = "__flash_"
	keyInfo         = "storefront cookie signing v1"
)

// Manager reads and writes signed cookies.
type Manager struct {
	keys     [][]byte // HMAC keys derived from the secrets, signing key first
	defaults Options
}

// New returns a Manager. Empty secrets are ignored; at least one must remain
// and each must be at least 32 characters long.
func New(secrets []string, opts ...Option) (*Manager, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}
	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
	}

	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}.apply(opts)

	keys := make([][]byte, len(secrets))
	for i, s := range secrets {
		key, err := deriveKey(s)
		if err != nil {
			return nil, err
		}
		keys[i] = key
	}
	return &Manager{keys: keys, defaults: defaults}, nil
}

// Set writes a plain cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) {
	o := m.defaults.apply(opts)
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: o.HttpOnly,
		SameSite: o.SameSite,
	})
}

// Get reads a plain cookie.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Delete expires a cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.defaults.Secure,
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
	})
}

func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) {
	m.Set(w, name, m.sign(name, value), opts...)
}

// GetSigned reads a cookie written by SetSigned and verifies its signature.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.verify(name, raw)
}

// SetJSON stores v as a signed JSON document.
func (m *Manager) SetJSON(w http.ResponseWriter, name string, v any, opts ...Option) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal cookie %s: %w", name, err)
	}
	m.SetSigned(w, name, string(data), opts...)
	return nil
}

// GetJSON decodes a cookie written by SetJSON into dest.
func (m *Manager) GetJSON(r *http.Request, name string, dest any) error {
	data, err := m.GetSigned(r, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return errors.Join(ErrInvalidFormat, err)
	}
	return nil
}

// SetFlash stores v until the next GetFlash for the same key.
func (m *Manager) SetFlash(w http.ResponseWriter, key string, v any) error {
	return m.SetJSON(w, flashPrefix+key, v, WithMaxAge(0))
}

// GetFlash decodes and deletes a flash value.
func (m *Manager) GetFlash(w http.ResponseWriter, r *http.Request, key string, dest any) error {
	name := flashPrefix + key
	if err := m.GetJSON(r, name, dest); err != nil {
		if !errors.Is(err, ErrCookieNotFound) {
			m.Delete(w, name)
		}
		return err
	}
	m.Delete(w, name)
	return nil
}

// sign binds value to the cookie name so a signed value cannot be replayed
// under another cookie.
func (m *Manager) sign(name, value string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(value)) + "." + mac(m.keys[0], name, value)
}

func (m *Manager) verify(name, signed string) (string, error) {
	encoded, signature, ok := strings.Cut(signed, ".")
	if !ok {
		return "", ErrInvalidFormat
	}
	value, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidFormat
	}
	for _, key := range m.keys {
		if subtle.ConstantTimeCompare([]byte(signature), []byte(mac(key, name, string(value)))) == 1 {
			return string(value), nil
		}
	}
	return "", ErrInvalidSignature
}

func deriveKey(secret string) ([]byte, error) {
	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("cookie: derive key: %w", err)
	}
	return key, nil
}

func mac(key []byte, name, value string) string {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
