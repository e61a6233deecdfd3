// Package logger builds *slog.Logger instances for the storefront binaries and
// provides attribute constructors that keep log keys consistent.
//
// New applies functional options on top of production defaults (JSON output,
// info level) and wraps the handler with a decorator that pulls request-scoped
// values, such as the request id or visitor id, out of context.Context on every
// record:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, cfg.Name),
//		logger.WithContextExtractors(requestid.LogExtractor),
//	)
//	log.InfoContext(ctx, "checkout session created", logger.PriceID(id))
//
// Attribute helpers return an empty slog.Attr for empty values, which slog drops.
package logger
