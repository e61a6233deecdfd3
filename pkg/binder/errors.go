package binder

import "errors"

var (
	ErrNotApplicable        = errors.New("binder: not applicable to this request")
	ErrUnsupportedMediaType = errors.New("binder: unsupported media type")
	ErrInvalidTarget        = errors.New("binder: target must be a non-nil pointer to a struct")
	ErrInvalidForm          = errors.New("binder: invalid form data")
	ErrInvalidQuery         = errors.New("binder: invalid query parameter")
	ErrInvalidPath          = errors.New("binder: invalid path parameter")
)
