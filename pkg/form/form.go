package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/dmitrymomot/formkit/pkg/broadcast"
	"github.com/dmitrymomot/formkit/pkg/field"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// State is the runtime state of a form.
type State struct {
	FormData map[string]string `json:"formData"`
	IsValid  bool              `json:"isValid"`
}

func (s State) clone() State {
	return State{FormData: maps.Clone(s.FormData), IsValid: s.IsValid}
}

// Form owns the data of every field in its tree and the aggregate validity.
type Form struct {
	name       string
	observer   ValidityFunc
	bufferSize int
	log        *slog.Logger

	mu       sync.Mutex
	tree     *Tree
	registry []*field.Field
	index    map[string]*field.Field
	state    State
	updates  *broadcast.Broadcaster[State]
}

// New creates a form over tree. The field registry is computed once here and
// again only by SetTree.
func New(tree *Tree, opts ...Option) (*Form, error) {
	f := &Form{
		bufferSize: 8,
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.state.FormData == nil {
		f.state.FormData = make(map[string]string)
	}

	registry, index, err := buildRegistry(tree)
	if err != nil {
		return nil, err
	}
	f.tree = tree
	f.registry = registry
	f.index = index
	f.updates = broadcast.New[State](f.bufferSize)

	return f, nil
}

// MustNew is like New but panics on error.
func MustNew(tree *Tree, opts ...Option) *Form {
	f, err := New(tree, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

func buildRegistry(tree *Tree) ([]*field.Field, map[string]*field.Field, error) {
	if tree == nil {
		return nil, nil, ErrNilTree
	}
	registry := tree.scanFields()
	index := make(map[string]*field.Field, len(registry))
	for _, fld := range registry {
		if fld == nil {
			return nil, nil, ErrNilField
		}
		name := fld.Name()
		if name == "" {
			return nil, nil, ErrEmptyFieldName
		}
		if _, ok := index[name]; ok {
			return nil, nil, errors.Join(ErrDuplicateField, fmt.Errorf("field %q", name))
		}
		index[name] = fld
	}
	return registry, index, nil
}

func (f *Form) Name() string {
	return f.name
}

// Tree returns the installed tree.
func (f *Form) Tree() *Tree {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tree
}

// SetTree installs a new tree and recomputes the registry. Form data is kept.
func (f *Form) SetTree(tree *Tree) error {
	registry, index, err := buildRegistry(tree)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.tree = tree
	f.registry = registry
	f.index = index
	f.mu.Unlock()

	f.log.Debug("form tree replaced", logger.Form(f.name), slog.Int("fields", len(registry)))
	return nil
}

// State returns a copy of the runtime state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.clone()
}

// Value returns the stored value of a field. Absent entries read as "".
func (f *Form) Value(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.FormData[name]
}

// Field looks up a registered field by name.
func (f *Form) Field(name string) (*field.Field, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fld, ok := f.index[name]
	return fld, ok
}

// Fields returns the registry in document order.
func (f *Form) Fields() []*field.Field {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.registry)
}

// HandleFieldChange merges value into the form data and recomputes validity
// from every registered field. The observer is called on every change,
// whether or not validity flipped.
func (f *Form) HandleFieldChange(ctx context.Context, value, name string) State {
	f.mu.Lock()
	data := maps.Clone(f.state.FormData)
	if data == nil {
		data = make(map[string]string, 1)
	}
	data[name] = value

	var invalid []string
	for _, fld := range f.registry {
		if len(fld.Errors(data[fld.Name()])) > 0 {
			invalid = append(invalid, fld.Name())
		}
	}
	prev := f.state.IsValid
	f.state = State{FormData: data, IsValid: len(invalid) == 0}
	next := f.state.clone()
	f.mu.Unlock()

	if prev != next.IsValid {
		f.log.DebugContext(ctx, "form validity changed",
			logger.Form(f.name),
			logger.Field(name),
			logger.Valid(next.IsValid),
			slog.Any("invalid_fields", invalid),
		)
	}

	if f.observer != nil {
		f.observer(ctx, next.IsValid, maps.Clone(next.FormData))
	}
	f.updates.Publish(next)

	return next
}

// onFieldChange is the field.ChangeFunc handed to bindings.
func (f *Form) onFieldChange(ctx context.Context, value, name string) {
	f.HandleFieldChange(ctx, value, name)
}

// Change routes a change event to the named field through its binding.
func (f *Form) Change(ctx context.Context, name, value string) (field.State, error) {
	fld, ok := f.Field(name)
	if !ok {
		return field.State{}, errors.Join(ErrUnknownField, fmt.Errorf("field %q", name))
	}
	return fld.Bind(f.onFieldChange).Change(ctx, value), nil
}

// Blur routes a blur event to the named field.
func (f *Form) Blur(ctx context.Context, name, value string) (field.State, error) {
	fld, ok := f.Field(name)
	if !ok {
		return field.State{}, errors.Join(ErrUnknownField, fmt.Errorf("field %q", name))
	}
	return fld.Bind(f.onFieldChange).Blur(ctx, value), nil
}

// Validate blurs every registered field with its stored value, as on submit,
// and returns the failures as validator.ValidationErrors or nil.
func (f *Form) Validate(ctx context.Context) error {
	data := f.State().FormData

	var errs validator.ValidationErrors
	for _, fld := range f.Fields() {
		value := data[fld.Name()]
		fld.Blur(ctx, value)
		if err := validator.Validate(fld.Rules(), fld.Name(), value); err != nil {
			errs = append(errs, validator.ExtractValidationErrors(err)...)
		}
	}
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

// Subscribe returns a channel receiving the form state after every change.
func (f *Form) Subscribe(ctx context.Context) <-chan State {
	return f.updates.Subscribe(ctx)
}

// Close ends the subscriptions of the form and of its fields.
func (f *Form) Close() {
	f.updates.Close()
	for _, fld := range f.Fields() {
		fld.Close()
	}
}
