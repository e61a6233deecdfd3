package views

import (
	"context"

	"github.com/a-h/templ"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"

// PageMeta describes the document around a page body.
type PageMeta struct {
	Title   string
	AppName string
	Theme   Theme
}

// Page renders a complete HTML document around body.
func Page(meta PageMeta, body templ.Component) templ.Component {
	if meta.AppName == "" {
		meta.AppName = "Storefront"
	}
	return component(func(ctx context.Context, h *html) {
		h.raw("<!DOCTYPE html>")
		h.open("html", "lang", "de")
		h.raw("<head>")
		h.raw(`<meta charset="utf-8">`, `<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.el("title", meta.AppName+" – "+meta.Title)
		h.raw(`<script src="https://cdn.tailwindcss.com"></script>`)
		h.open("script", "type", "module", "src", datastarScript)
		h.close("script")
		h.raw("</head>")

		h.open("body", "class", meta.Theme.Page)
		h.open("nav", "class", "bg-white shadow-sm")
		h.open("div", "class", "mx-auto max-w-5xl px-4 py-3 flex gap-6")
		h.el("a", meta.AppName, "href", "/checkout", "class", "font-bold")
		h.el("a", "Pläne", "href", "/checkout")
		h.el("a", "Kunden", "href", "/customers")
		h.close("div")
		h.close("nav")

		h.open("main", "class", meta.Theme.Container)
		h.component(ctx, body)
		h.close("main")

		h.open("div", "id", IDToasts, "class", "fixed top-4 right-4 z-50 space-y-2")
		h.close("div")
		h.raw("</body></html>")
	})
}
