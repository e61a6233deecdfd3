// Package httpserver runs an http.Handler with configured timeouts and a
// graceful shutdown tied to a context.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Run returns once ctx is cancelled and in-flight requests finished, or the
// shutdown timeout passed. Signal handling belongs to the caller, usually via
// signal.NotifyContext in main.
//
// The package also provides liveness and readiness handlers. Readiness runs
// named checks and reports each one, so a dead Redis shows up by name.
package httpserver
