package httpserver

import (
	"log/slog"
	"net"
	"time"
)

// Option configures a Server.
type Option func(*Server)

func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

func WithReadTimeout(d time.Duration) Option {
	return func(s *Server) { positive(&s.readTimeout, d) }
}

func WithReadHeaderTimeout(d time.Duration) Option {
	return func(s *Server) { positive(&s.readHeaderTimeout, d) }
}

func WithWriteTimeout(d time.Duration) Option {
	return func(s *Server) { positive(&s.writeTimeout, d) }
}

func WithIdleTimeout(d time.Duration) Option {
	return func(s *Server) { positive(&s.idleTimeout, d) }
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) { positive(&s.shutdownTimeout, d) }
}

// WithListener serves on ln instead of listening on the configured address.
func WithListener(ln net.Listener) Option {
	return func(s *Server) { s.listener = ln }
}

// WithLogger sets the logger. A nil logger keeps the discarding default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithShutdownHook registers fn to run after the server stopped serving.
func WithShutdownHook(fn func()) Option {
	return func(s *Server) {
		if fn != nil {
			s.hooks = append(s.hooks, fn)
		}
	}
}

func positive(dst *time.Duration, d time.Duration) {
	if d > 0 {
		*dst = d
	}
}
