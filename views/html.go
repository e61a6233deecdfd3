// Package views renders the storefront pages and the fragments Datastar
// patches into them.
//
// Components are plain templ.Components. Every fragment that is patched
// later carries a stable id (see the ID constants), so a patch replaces it
// in place.
package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Element ids targeted by patches.
const (
	IDCheckout = "checkout"
	IDToasts   = "toasts"
	IDCustomer = "customer"
)

// html accumulates markup and remembers the first write error.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(parts ...string) {
	for _, p := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, p)
	}
}

// text writes s escaped.
func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

// open writes a start tag. attrs are name/value pairs; values are escaped.
func (h *html) open(tag string, attrs ...string) {
	h.raw("<", tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		h.raw(" ", attrs[i], `="`, templ.EscapeString(attrs[i+1]), `"`)
	}
	h.raw(">")
}

func (h *html) close(tag string) {
	h.raw("</", tag, ">")
}

// el writes <tag attrs>text</tag>.
func (h *html) el(tag, text string, attrs ...string) {
	h.open(tag, attrs...)
	h.text(text)
	h.close(tag)
}

func (h *html) component(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// hidden writes a hidden input unless value is empty.
func (h *html) hidden(name, value string) {
	if value == "" {
		return
	}
	h.open("input", "type", "hidden", "name", name, "value", value)
}

// component wraps a render function into a templ.Component.
func component(fn func(ctx context.Context, h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		fn(ctx, h)
		return h.err
	})
}

// classes joins the non-empty class names.
func classes(names ...string) string {
	out := names[:0:0]
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}

// datastarForm returns the attributes of a form that posts through Datastar
// and falls back to a regular POST without JavaScript.
func datastarForm(action string, extra ...string) []string {
	attrs := []string{
		"method", "post",
		"action", action,
		"data-on-submit", "@post('" + action + "', {contentType: 'form'})",
	}
	return append(attrs, extra...)
}
