package formkit_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func TestFormErrors(t *testing.T) {
	fe := formkit.NewFormErrors()
	assert.True(t, fe.IsEmpty())
	assert.Equal(t, "validation failed", fe.Error())

	fe.Add("email", "Email is required")
	fe.Add("email", "Email is invalid")
	fe.Add("age", "Age must be a number")

	assert.True(t, fe.Has("email"))
	assert.False(t, fe.Has("name"))
	assert.Equal(t, "Email is required", fe.Get("email"))
	assert.Equal(t, "validation failed: age: Age must be a number, email: Email is required", fe.Error())
}

func TestFormErrorsFrom(t *testing.T) {
	t.Run("from validation errors", func(t *testing.T) {
		cfg := validator.Config{
			IsRequired: true,
			IsEmail:    true,
			Messages: map[validator.RuleName]string{
				validator.IsRequired: "Email is required",
				validator.IsEmail:    "Email is invalid",
			},
		}
		err := validator.Validate(cfg, "email", "")
		require.Error(t, err)

		fe := formkit.FormErrorsFrom(errors.Join(errors.New("submit"), err))
		require.NotNil(t, fe)
		assert.Equal(t, []string{"Email is required", "Email is invalid"}, fe["email"])
	})

	t.Run("other errors", func(t *testing.T) {
		assert.Nil(t, formkit.FormErrorsFrom(errors.New("boom")))
		assert.Nil(t, formkit.FormErrorsFrom(nil))
	})
}
