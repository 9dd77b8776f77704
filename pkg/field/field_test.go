package field_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/field"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

type change struct {
	value string
	name  string
}

func requiredRules() validator.Config {
	return validator.Config{
		IsRequired: true,
		Messages:   map[validator.RuleName]string{validator.IsRequired: "Required"},
	}
}

func TestNew(t *testing.T) {
	t.Run("requires a name", func(t *testing.T) {
		_, err := field.New("", validator.Config{})
		assert.ErrorIs(t, err, field.ErrEmptyName)
	})

	t.Run("rejects inconsistent rules", func(t *testing.T) {
		_, err := field.New("name", validator.Config{MinLength: 5, MaxLength: 1})
		assert.ErrorIs(t, err, field.ErrInvalidRules)
		assert.ErrorIs(t, err, validator.ErrInvalidParameter)
	})

	t.Run("starts clean", func(t *testing.T) {
		f, err := field.New("name", requiredRules())
		require.NoError(t, err)
		assert.Equal(t, field.State{}, f.State())
		assert.Equal(t, field.Clean, f.State().Status())
		assert.Equal(t, "name", f.Name())
		assert.True(t, f.Rules().IsRequired)
	})

	t.Run("must new panics", func(t *testing.T) {
		assert.Panics(t, func() { field.MustNew("", validator.Config{}) })
	})
}

func TestField_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("type then clear shows required", func(t *testing.T) {
		f := field.MustNew("name", requiredRules())

		f.Blur(ctx, "john")
		st := f.Blur(ctx, "")
		assert.Equal(t, field.State{ErrorMessage: "Required", Dirty: true}, st)
		assert.Equal(t, field.Invalid, st.Status())
	})

	t.Run("length scenario", func(t *testing.T) {
		f := field.MustNew("nick", validator.Config{
			MinLength: 3,
			MaxLength: 5,
			Messages: map[validator.RuleName]string{
				validator.MinLength: "too short",
				validator.MaxLength: "too long",
			},
		})

		assert.Equal(t, "too short", f.Validate(ctx, "ab").ErrorMessage)
		assert.Equal(t, "too long", f.Validate(ctx, "abcdef").ErrorMessage)

		st := f.Validate(ctx, "abcd")
		assert.Empty(t, st.ErrorMessage)
		assert.False(t, st.Dirty, "valid input resets dirty")
	})

	t.Run("triggered rule without message keeps field clean", func(t *testing.T) {
		f := field.MustNew("age", validator.Config{IsNumeric: validator.Bool(true)})
		assert.Equal(t, field.State{}, f.Validate(ctx, "abc"))
	})

	t.Run("isNumeric false shows the isNumeric message", func(t *testing.T) {
		f := field.MustNew("nick", validator.Config{
			IsNumeric: validator.Bool(false),
			Messages:  map[validator.RuleName]string{validator.IsNumeric: "Letters only"},
		})
		assert.Equal(t, field.State{ErrorMessage: "Letters only", Dirty: true}, f.Blur(ctx, "123"))
		assert.Equal(t, field.State{}, f.Blur(ctx, "abc"))
	})

	t.Run("idempotent", func(t *testing.T) {
		f := field.MustNew("name", requiredRules())
		sub := f.Subscribe(ctx)

		first := f.Validate(ctx, "")
		second := f.Validate(ctx, "")
		assert.Equal(t, first, second)

		assert.Len(t, sub, 1, "second validation publishes nothing")
	})
}

func TestField_Change(t *testing.T) {
	ctx := context.Background()

	t.Run("clean field only runs the input handler", func(t *testing.T) {
		var inputs []string
		var changes []change
		f := field.MustNew("name", requiredRules(),
			field.WithInputHandler(func(_ context.Context, v string) { inputs = append(inputs, v) }),
			field.WithOnChange(func(_ context.Context, v, n string) { changes = append(changes, change{v, n}) }),
		)

		st := f.Change(ctx, "")
		assert.Equal(t, field.State{}, st, "no validation before the first blur")
		assert.Equal(t, []string{""}, inputs)
		assert.Empty(t, changes)
	})

	t.Run("dirty field notifies and validates", func(t *testing.T) {
		var order []string
		f := field.MustNew("name", requiredRules(),
			field.WithInputHandler(func(context.Context, string) { order = append(order, "input") }),
			field.WithOnChange(func(_ context.Context, v, n string) {
				order = append(order, "change:"+n+"="+v)
			}),
		)

		f.Blur(ctx, "")
		require.True(t, f.State().Dirty)

		st := f.Change(ctx, "jo")
		assert.Equal(t, []string{"input", "change:name=jo"}, order)
		assert.Equal(t, field.State{}, st)

		order = nil
		f.Change(ctx, "joe")
		assert.Equal(t, []string{"input"}, order, "clean again after valid input")
	})

	t.Run("notify while clean", func(t *testing.T) {
		var changes []change
		f := field.MustNew("name", requiredRules(),
			field.WithNotifyWhileClean(),
			field.WithOnChange(func(_ context.Context, v, n string) { changes = append(changes, change{v, n}) }),
		)

		st := f.Change(ctx, "")
		assert.Equal(t, []change{{"", "name"}}, changes)
		assert.Equal(t, field.State{}, st)
	})

	t.Run("missing handlers are fine", func(t *testing.T) {
		f := field.MustNew("name", requiredRules())
		f.Blur(ctx, "")
		assert.Equal(t, "Required", f.Change(ctx, "").ErrorMessage)
	})
}

func TestField_Bind(t *testing.T) {
	ctx := context.Background()

	var own, bound []change
	f := field.MustNew("name", requiredRules(),
		field.WithOnChange(func(_ context.Context, v, n string) { own = append(own, change{v, n}) }),
	)
	b := f.Bind(func(_ context.Context, v, n string) { bound = append(bound, change{v, n}) })
	assert.Same(t, f, b.Field())

	b.Blur(ctx, "")
	b.Change(ctx, "x")

	assert.Empty(t, own, "binding replaces the field's own notification")
	assert.Equal(t, []change{{"x", "name"}}, bound)
	assert.Equal(t, field.State{}, f.State(), "binding shares state with the field")
}

func TestField_Restore(t *testing.T) {
	f := field.MustNew("name", requiredRules())
	sub := f.Subscribe(context.Background())

	st := field.State{ErrorMessage: "Required", Dirty: true}
	f.Restore(st)
	f.Restore(st)

	assert.Equal(t, st, f.State())
	assert.Len(t, sub, 1)

	t.Run("restored status drives the next transition", func(t *testing.T) {
		f := field.MustNew("name", requiredRules())
		f.Restore(field.State{ErrorMessage: "Required", Dirty: true})

		assert.Equal(t, field.State{}, f.Validate(context.Background(), "john"))
		assert.Equal(t, field.State{ErrorMessage: "Required", Dirty: true}, f.Validate(context.Background(), ""))
	})
}

func TestField_Subscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f := field.MustNew("name", requiredRules())
	updates := f.Subscribe(ctx)

	f.Blur(ctx, "")
	f.Blur(ctx, "ok")

	assert.Equal(t, field.State{ErrorMessage: "Required", Dirty: true}, <-updates)
	assert.Equal(t, field.State{}, <-updates)

	cancel()
	select {
	case _, ok := <-updates:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription not closed")
	}

	f.Close()
}
