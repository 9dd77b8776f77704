package live

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// SubmitFunc receives the data of a valid submitted form.
type SubmitFunc func(ctx context.Context, formName, session string, data map[string]string) error

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithBasePath sets the path the routes are mounted at, used in generated
// URLs. Defaults to "/forms".
func WithBasePath(p string) Option {
	return func(s *Server) { s.basePath = strings.TrimRight(p, "/") }
}

// WithTransport sets the markup target for plain page loads.
func WithTransport(t Transport) Option {
	return func(s *Server) { s.transport = t }
}

// WithSubmitHandler sets the function called for valid submissions.
func WithSubmitHandler(fn SubmitFunc) Option {
	return func(s *Server) { s.onSubmit = fn }
}

// WithErrorHandler replaces DefaultErrorHandler. Nil is ignored.
func WithErrorHandler(h ErrorHandler) Option {
	return func(s *Server) {
		if h != nil {
			s.onError = h
		}
	}
}

// WithSessionIdleTimeout sets how long an unused session form stays cached
// in memory. The stored snapshot is not affected. Defaults to 30 minutes.
func WithSessionIdleTimeout(d time.Duration) Option {
	return func(s *Server) { s.idleTimeout = d }
}
