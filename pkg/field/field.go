package field

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/formkit/pkg/broadcast"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/statemachine"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Field validates a single input against its rules and holds the error
// shown next to it.
type Field struct {
	name             string
	rules            validator.Config
	onChange         ChangeFunc
	input            InputFunc
	renderer         ErrorRenderer
	notifyWhileClean bool
	bufferSize       int
	log              *slog.Logger

	mu      sync.Mutex
	state   State
	machine *statemachine.Machine
	updates *broadcast.Broadcaster[State]
}

// New creates a clean field.
func New(name string, rules validator.Config, opts ...Option) (*Field, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if err := rules.Check(); err != nil {
		return nil, errors.Join(ErrInvalidRules, err)
	}

	f := &Field{
		name:       name,
		rules:      rules,
		renderer:   DefaultErrorRenderer,
		bufferSize: 8,
		log:        logger.Nop(),
		machine:    newMachine(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.updates = broadcast.New[State](f.bufferSize)

	return f, nil
}

// MustNew is like New but panics on error.
func MustNew(name string, rules validator.Config, opts ...Option) *Field {
	f, err := New(name, rules, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Field) Name() string {
	return f.name
}

// Rules returns the rule configuration of the field.
func (f *Field) Rules() validator.Config {
	return f.rules
}

// State returns the current runtime state.
func (f *Field) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Errors evaluates the rules against value without touching the state.
func (f *Field) Errors(value string) []string {
	return validator.Errors(f.rules, value)
}

// Validate runs the rules against value and moves the field to Invalid with
// the first message, or back to Clean. Validating the same value twice
// leaves the state unchanged and notifies subscribers only once.
func (f *Field) Validate(ctx context.Context, value string) State {
	msg, hasErr := validator.FirstError(f.rules, value)
	o := &outcome{message: msg, failed: hasErr}

	f.mu.Lock()
	prev := f.state
	if err := f.machine.Fire(ctx, eventValidate, o); err != nil {
		f.mu.Unlock()
		f.log.ErrorContext(ctx, "field transition failed", logger.Field(f.name), logger.Error(err))
		return prev
	}
	next := o.next
	f.state = next
	f.mu.Unlock()

	if next != prev {
		f.log.DebugContext(ctx, "field state changed",
			logger.Field(f.name),
			logger.Transition(string(prev.Status()), string(next.Status())),
		)
		f.updates.Publish(next)
	}
	return next
}

// Change handles a value change of the wrapped input using the field's own
// change notification.
func (f *Field) Change(ctx context.Context, value string) State {
	return f.change(ctx, value, f.onChange)
}

// Blur handles the input losing focus. It always validates and is the only
// way for a clean field to become dirty.
func (f *Field) Blur(ctx context.Context, value string) State {
	return f.Validate(ctx, value)
}

// Bind returns a handle whose change notification is onChange instead of the
// field's own. The handle shares state with the field.
func (f *Field) Bind(onChange ChangeFunc) Binding {
	return Binding{field: f, onChange: onChange}
}

// Restore replaces the runtime state, e.g. from a persisted snapshot.
func (f *Field) Restore(st State) {
	f.mu.Lock()
	prev := f.state
	f.state = st
	_ = f.machine.Restore(st.Status())
	f.mu.Unlock()

	if prev != st {
		f.updates.Publish(st)
	}
}

// Subscribe returns a channel receiving the state after every change.
// The channel closes when ctx is done or the field is closed.
func (f *Field) Subscribe(ctx context.Context) <-chan State {
	return f.updates.Subscribe(ctx)
}

// Close ends all subscriptions.
func (f *Field) Close() {
	f.updates.Close()
}

// change wires events the way a dirty-gated input does: while clean only the
// input handler fires; once dirty the input handler, the upward notification
// and validation run in that order.
func (f *Field) change(ctx context.Context, value string, notify ChangeFunc) State {
	f.mu.Lock()
	dirty := f.state.Dirty
	f.mu.Unlock()

	if f.input != nil {
		f.input(ctx, value)
	}

	if !dirty {
		if f.notifyWhileClean && notify != nil {
			notify(ctx, value, f.name)
		}
		return f.State()
	}

	if notify != nil {
		notify(ctx, value, f.name)
	}
	return f.Validate(ctx, value)
}

// Binding is a field with an injected change notification.
type Binding struct {
	field    *Field
	onChange ChangeFunc
}

func (b Binding) Field() *Field {
	return b.field
}

func (b Binding) Change(ctx context.Context, value string) State {
	return b.field.change(ctx, value, b.onChange)
}

func (b Binding) Blur(ctx context.Context, value string) State {
	return b.field.Blur(ctx, value)
}
