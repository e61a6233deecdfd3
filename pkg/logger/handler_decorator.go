package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls one attribute out of a context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// ContextDecorator is a slog.Handler that adds attributes extracted from the
// record's context before delegating to the wrapped handler.
type ContextDecorator struct {
	next       slog.Handler
	extractors []ContextExtractor
}

// NewContextDecorator wraps next. Nil extractors are skipped.
func NewContextDecorator(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	return &ContextDecorator{next: next, extractors: clean}
}

func (h *ContextDecorator) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ContextDecorator) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *ContextDecorator) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextDecorator{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *ContextDecorator) WithGroup(name string) slog.Handler {
	return &ContextDecorator{next: h.next.WithGroup(name), extractors: h.extractors}
}
