package handler

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// Redirect sends the browser to url: 303 See Other for page requests, a
// client-side navigation for Datastar requests.
func Redirect(url string) Response {
	return RedirectWithCode(url, http.StatusSeeOther)
}

// RedirectWithCode is Redirect with a custom status for page requests.
func RedirectWithCode(url string, code int) Response {
	return ResponseFunc(func(w http.ResponseWriter, r *http.Request) error {
		if IsDataStar(r) {
			return datastar.NewSSE(w, r).Redirect(url)
		}
		http.Redirect(w, r, url, code)
		return nil
	})
}
