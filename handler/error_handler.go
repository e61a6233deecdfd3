package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/requestid"
)

// ErrorPageParams feeds the full-page error view.
type ErrorPageParams struct {
	StatusCode int
	Message    string
	RequestID  string
	RetryURL   string
}

// ErrorToastParams feeds the toast patched into Datastar pages.
type ErrorToastParams struct {
	Message   string
	Level     string // "warning" for 4xx, "error" for 5xx
	RequestID string
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	ErrorPage  func(ErrorPageParams) Component
	ErrorToast func(ErrorToastParams) Component
	// ToastTarget defaults to "#toasts".
	ToastTarget string
	// Messages overrides the text shown for a status code.
	Messages map[int]string
	// UserMessage may extract a message that is safe to show from err.
	UserMessage func(err error) (string, bool)
}

// Classify returns the status code and default message for err.
func Classify(err error) (int, string) {
	var validation ValidationError
	if errors.As(err, &validation) {
		return http.StatusUnprocessableEntity, validation.Error()
	}
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, http.StatusText(httpErr.Code)
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// NewErrorHandler renders err as a page for regular requests and as a toast
// for Datastar requests. 4xx are logged at warn, the rest at error.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toasts"
	}
	log = log.With(logger.Component("error_handler"))

	return func(ctx Context, err error) {
		r := ctx.Request()
		status, msg := Classify(err)
		if m, ok := cfg.Messages[status]; ok {
			msg = m
		}
		if cfg.UserMessage != nil {
			if m, ok := cfg.UserMessage(err); ok {
				msg = m
			}
		}
		reqID := requestid.FromContext(r.Context())

		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request failed",
			logger.Error(err),
			slog.Int("status", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("datastar", IsDataStar(r)),
		)

		w := ctx.ResponseWriter()
		if IsDataStar(r) {
			if cfg.ErrorToast == nil {
				return
			}
			toast := cfg.ErrorToast(ErrorToastParams{Message: msg, Level: toastLevel(status), RequestID: reqID})
			resp := Templ(toast, WithTarget(cfg.ToastTarget), WithPatchMode(PatchPrepend))
			if rerr := resp.Render(w, r); rerr != nil {
				log.ErrorContext(r.Context(), "render error toast", logger.Error(rerr))
			}
			return
		}

		if cfg.ErrorPage == nil {
			http.Error(w, msg, status)
			return
		}
		page := cfg.ErrorPage(ErrorPageParams{StatusCode: status, Message: msg, RequestID: reqID, RetryURL: r.URL.RequestURI()})
		if rerr := TemplStatus(status, page).Render(w, r); rerr != nil {
			log.ErrorContext(r.Context(), "render error page", logger.Error(rerr))
		}
	}
}

func toastLevel(status int) string {
	if status < http.StatusInternalServerError {
		return "warning"
	}
	return "error"
}
