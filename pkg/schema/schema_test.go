package schema_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/field"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/schema"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func TestLoadFile(t *testing.T) {
	def, err := schema.LoadFile("testdata/signup.yaml")
	require.NoError(t, err)

	assert.Equal(t, "signup", def.Name)
	assert.Equal(t, map[string]string{"id": "signup"}, def.Attrs)
	require.Len(t, def.Children, 3)

	email := def.Children[0].Children[1].Field
	require.NotNil(t, email)
	assert.Equal(t, "email", email.Name)
	assert.True(t, email.IsRequired)
	assert.True(t, email.IsEmail)
	assert.Equal(t, "Email is invalid", email.Messages[validator.IsEmail])

	age := def.Children[1].Children[1].Field
	require.NotNil(t, age)
	require.NotNil(t, age.IsNumeric)
	assert.True(t, *age.IsNumeric)

	t.Run("missing file", func(t *testing.T) {
		_, err := schema.LoadFile("testdata/missing.yaml")
		assert.ErrorIs(t, err, schema.ErrReadFailed)
	})
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		err  error
	}{
		{"unknown rule message", "name: f\nchildren:\n  - field: {name: a, message: {isPhone: x}}\n", schema.ErrUnknownRule},
		{"unknown key", "name: f\ncolour: red\nchildren: []\n", schema.ErrInvalidSchema},
		{"empty form name", "children: []\n", schema.ErrEmptyName},
		{"empty field name", "name: f\nchildren:\n  - field: {isRequired: true}\n", field.ErrEmptyName},
		{"duplicate field", "name: f\nchildren:\n  - field: {name: a}\n  - tag: div\n    children:\n      - field: {name: a}\n", form.ErrDuplicateField},
		{"ambiguous node", "name: f\nchildren:\n  - {tag: div, text: hi}\n", schema.ErrInvalidNode},
		{"empty node", "name: f\nchildren:\n  - {}\n", schema.ErrInvalidNode},
		{"text with children", "name: f\nchildren:\n  - text: hi\n    children: [{text: x}]\n", schema.ErrInvalidNode},
		{"unsupported input", "name: f\nchildren:\n  - field: {name: a, input: select}\n", schema.ErrInvalidSchema},
		{"inverted length", "name: f\nchildren:\n  - field: {name: a, minLength: 5, maxLength: 2}\n", validator.ErrInvalidParameter},
		{"malformed yaml", "name: [\n", schema.ErrInvalidSchema},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.Load(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("name: a\nchildren: []\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("name: b\nchildren: []\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	defs, err := schema.LoadDir(dir)
	require.NoError(t, err)
	assert.Len(t, defs, 2)
	assert.Contains(t, defs, "a")
	assert.Contains(t, defs, "b")

	t.Run("duplicate form names", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "c.yaml"), []byte("name: a\nchildren: []\n"), 0o600))
		_, err := schema.LoadDir(dir)
		assert.ErrorIs(t, err, schema.ErrInvalidSchema)
	})
}

func TestDefinition_Build(t *testing.T) {
	ctx := context.Background()
	def, err := schema.LoadFile("testdata/signup.yaml")
	require.NoError(t, err)

	var valid []bool
	f, err := def.Build(schema.WithFormOptions(form.WithValidityObserver(
		func(_ context.Context, ok bool, _ map[string]string) { valid = append(valid, ok) },
	)))
	require.NoError(t, err)
	assert.Equal(t, "signup", f.Name())
	assert.Len(t, f.Fields(), 3)

	f.HandleFieldChange(ctx, "a@b.co", "email")
	f.HandleFieldChange(ctx, "abc", "age")
	f.HandleFieldChange(ctx, "30", "age")
	assert.Equal(t, []bool{true, false, true}, valid)

	t.Run("forms are independent", func(t *testing.T) {
		other, err := def.Build()
		require.NoError(t, err)
		assert.Empty(t, other.Value("age"))

		a, _ := f.Field("email")
		b, _ := other.Field("email")
		assert.NotSame(t, a, b)
	})

	t.Run("notify while clean flag", func(t *testing.T) {
		other, err := def.Build()
		require.NoError(t, err)
		_, err = other.Change(ctx, "bio", "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello", other.Value("bio"))
	})

	t.Run("isNumeric false uses the isNumeric message", func(t *testing.T) {
		doc := "name: nick\nchildren:\n  - field: {name: nick, isNumeric: false, message: {isNumeric: Letters only}}\n"
		def, err := schema.Load(strings.NewReader(doc))
		require.NoError(t, err)
		f, err := def.Build()
		require.NoError(t, err)

		st, err := f.Blur(ctx, "nick", "123")
		require.NoError(t, err)
		assert.Equal(t, "Letters only", st.ErrorMessage)
		assert.False(t, f.State().IsValid)
	})

	t.Run("renders", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, f.Render().Render(ctx, &buf))
		html := buf.String()
		assert.True(t, strings.HasPrefix(html, `<form id="signup">`))
		assert.Contains(t, html, `<label>Email</label>`)
		assert.Contains(t, html, `<input name="age" value="30">`)
		assert.Contains(t, html, `<textarea name="bio"></textarea>`)
	})
}
