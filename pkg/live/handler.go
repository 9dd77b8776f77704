package live

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/formkit/pkg/field"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/formstore"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Response renders itself to the client.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// HandlerFunc handles a decoded request.
type HandlerFunc[R any] func(ctx context.Context, req R) Response

// Bind decodes a request into req.
type Bind[R any] func(r *http.Request, req *R) error

// ErrorHandler writes an error response.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// wrap turns a typed handler into an http.HandlerFunc. Binders run in order;
// the first failure goes to onError, as does a render failure.
func wrap[R any](h HandlerFunc[R], onError ErrorHandler, binders ...Bind[R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req R
		for _, bind := range binders {
			if err := bind(r, &req); err != nil {
				onError(w, r, err)
				return
			}
		}

		resp := h(r.Context(), req)
		if resp == nil {
			onError(w, r, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			onError(w, r, err)
		}
	}
}

// statusOf maps errors to HTTP status codes.
func statusOf(err error) int {
	var he HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code
	case errors.Is(err, ErrUnknownForm), errors.Is(err, formstore.ErrSnapshotNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrMissingField),
		errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrStreamNotAllowed),
		errors.Is(err, form.ErrUnknownField),
		errors.Is(err, field.ErrEmptyName):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// DefaultErrorHandler logs err and writes a plain-text status response.
// Client errors are logged at warn level, server errors at error level.
func DefaultErrorHandler(log *slog.Logger) ErrorHandler {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		code := statusOf(err)
		level := slog.LevelError
		if code < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.Log(r.Context(), level, "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", code),
			logger.Error(err),
		)

		msg := http.StatusText(code)
		if code < http.StatusInternalServerError {
			msg = err.Error()
		}
		http.Error(w, msg, code)
	}
}
