package field

import (
	"context"
	"log/slog"
)

// ChangeFunc receives the value and name of a field after a qualifying change.
type ChangeFunc func(ctx context.Context, value, name string)

// InputFunc is the wrapped input's own change handler.
type InputFunc func(ctx context.Context, value string)

// Option configures a Field.
type Option func(*Field)

// WithOnChange sets the upward change notification.
func WithOnChange(fn ChangeFunc) Option {
	return func(f *Field) { f.onChange = fn }
}

// WithInputHandler sets the handler of the wrapped input. It runs on every
// change, dirty or not.
func WithInputHandler(fn InputFunc) Option {
	return func(f *Field) { f.input = fn }
}

// WithErrorRenderer replaces the default error indicator.
func WithErrorRenderer(r ErrorRenderer) Option {
	return func(f *Field) {
		if r != nil {
			f.renderer = r
		}
	}
}

// WithNotifyWhileClean forwards changes upward even before the field is
// dirty. Validation still waits for the first blur.
func WithNotifyWhileClean() Option {
	return func(f *Field) { f.notifyWhileClean = true }
}

// WithLogger sets the logger for state transitions. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(f *Field) {
		if l != nil {
			f.log = l
		}
	}
}

// WithBufferSize sets the per-subscriber buffer of state updates.
func WithBufferSize(n int) Option {
	return func(f *Field) { f.bufferSize = n }
}
