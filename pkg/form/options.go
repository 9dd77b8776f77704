package form

import (
	"context"
	"log/slog"
	"maps"
)

// ValidityFunc receives the recomputed validity and a copy of the form data
// after every field change.
type ValidityFunc func(ctx context.Context, isValid bool, formData map[string]string)

// Option configures a Form.
type Option func(*Form)

// WithName sets the form name used in logs and snapshots.
func WithName(name string) Option {
	return func(f *Form) { f.name = name }
}

// WithData sets the initial form data. The map is copied.
func WithData(data map[string]string) Option {
	return func(f *Form) { f.state.FormData = maps.Clone(data) }
}

// WithValidityObserver sets the function called after every field change.
func WithValidityObserver(fn ValidityFunc) Option {
	return func(f *Form) { f.observer = fn }
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.log = l
		}
	}
}

// WithBufferSize sets the per-subscriber buffer of state updates.
func WithBufferSize(n int) Option {
	return func(f *Form) { f.bufferSize = n }
}
