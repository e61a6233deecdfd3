package binder

import (
	"errors"
	"mime"
	"net/http"
)

// DefaultMaxFormBytes limits urlencoded and multipart bodies.
const DefaultMaxFormBytes = 1 << 20

// Form binds `form` tags from an urlencoded or multipart body. Requests
// without a body content type are not applicable.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		ct := r.Header.Get("Content-Type")
		if ct == "" {
			return ErrNotApplicable
		}
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return errors.Join(ErrUnsupportedMediaType, err)
		}

		switch mediaType {
		case "application/x-www-form-urlencoded":
			r.Body = http.MaxBytesReader(nil, r.Body, DefaultMaxFormBytes)
			if err := r.ParseForm(); err != nil {
				return errors.Join(ErrInvalidForm, err)
			}
		case "multipart/form-data":
			if err := r.ParseMultipartForm(DefaultMaxFormBytes); err != nil {
				return errors.Join(ErrInvalidForm, err)
			}
		default:
			return ErrNotApplicable
		}

		return decode(v, "form", func(name string) []string { return r.PostForm[name] }, ErrInvalidForm)
	}
}
