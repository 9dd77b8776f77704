package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

func TestIsNumber(t *testing.T) {
	numbers := []string{
		"0", "30", "-12", "+7", "3.14", ".5", "5.", "1e3", "2E-4",
		"  42  ", "\t8\n", "", "   ", "Infinity", "-Infinity", "0x1F", "0o17", "0b101",
	}
	for _, v := range numbers {
		assert.True(t, validator.IsNumber(v), "expected %q to be numeric", v)
	}

	notNumbers := []string{
		"abc", "12px", "1,000", "1_000", "NaN", "inf", "0x", "0xG1", "--1", "1e", ".", "+", "1 2", "0b102",
	}
	for _, v := range notNumbers {
		assert.False(t, validator.IsNumber(v), "expected %q not to be numeric", v)
	}
}

func TestNumeric(t *testing.T) {
	t.Run("passes for numbers", func(t *testing.T) {
		rule := validator.Numeric("age", "30")
		assert.True(t, rule.Check())
		assert.Equal(t, validator.IsNumeric, rule.Error.Rule)
		assert.Equal(t, true, rule.Error.Param)
	})

	t.Run("fails for text", func(t *testing.T) {
		assert.False(t, validator.Numeric("age", "abc").Check())
	})
}

func TestNotNumeric(t *testing.T) {
	t.Run("fails for numbers", func(t *testing.T) {
		rule := validator.NotNumeric("nickname", "123")
		assert.False(t, rule.Check())
		assert.Equal(t, validator.IsNotNumeric, rule.Error.Rule)
		assert.Equal(t, true, rule.Error.Param)
	})

	t.Run("passes for text", func(t *testing.T) {
		assert.True(t, validator.NotNumeric("nickname", "neo").Check())
	})
}
