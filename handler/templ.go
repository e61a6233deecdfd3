package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// Component is anything templ can render.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// PatchOption controls where a Datastar patch lands.
type PatchOption = datastar.PatchElementOption

// WithTarget patches the element matching selector instead of the element with the component's id.
func WithTarget(selector string) PatchOption {
	return datastar.WithSelector(selector)
}

func WithPatchMode(mode datastar.ElementPatchMode) PatchOption {
	return datastar.WithMode(mode)
}

// Patch is one component with its patch options.
type Patch struct {
	Component Component
	Options   []PatchOption
}

// NewPatch builds a Patch for TemplMulti.
func NewPatch(c Component, opts ...PatchOption) Patch {
	return Patch{Component: c, Options: opts}
}

// Templ renders c as HTML, or as a single element patch for Datastar.
func Templ(c Component, opts ...PatchOption) Response {
	return TemplPartial(c, c, opts...)
}

// TemplPartial patches partial for Datastar requests and renders full otherwise.
func TemplPartial(partial, full Component, opts ...PatchOption) Response {
	return ResponseFunc(func(w http.ResponseWriter, r *http.Request) error {
		if IsDataStar(r) {
			return datastar.NewSSE(w, r).PatchElementTempl(partial, opts...)
		}
		return writeHTML(w, r, http.StatusOK, full)
	})
}

// TemplMulti sends every patch in order for Datastar requests and renders
// full otherwise.
func TemplMulti(full Component, patches ...Patch) Response {
	return ResponseFunc(func(w http.ResponseWriter, r *http.Request) error {
		if !IsDataStar(r) {
			return writeHTML(w, r, http.StatusOK, full)
		}
		sse := datastar.NewSSE(w, r)
		for _, p := range patches {
			if err := sse.PatchElementTempl(p.Component, p.Options...); err != nil {
				return err
			}
		}
		return nil
	})
}

// TemplStatus renders c as a full page with status.
func TemplStatus(status int, c Component) Response {
	return ResponseFunc(func(w http.ResponseWriter, r *http.Request) error {
		return writeHTML(w, r, status, c)
	})
}

func writeHTML(w http.ResponseWriter, r *http.Request, status int, c Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return c.Render(r.Context(), w)
}
