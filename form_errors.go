package formkit

import (
	"errors"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// FormErrors maps field names to their messages.
// It is based on url.Values to reuse its multi-value helpers.
type FormErrors url.Values

// NewFormErrors creates an empty set.
func NewFormErrors() FormErrors {
	return make(FormErrors)
}

// FormErrorsFrom collects validator failures from err, keeping rule order
// per field. It returns nil if err carries none.
func FormErrorsFrom(err error) FormErrors {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || ve.IsEmpty() {
		return nil
	}
	fe := NewFormErrors()
	for _, e := range ve {
		fe.Add(e.Field, e.Message)
	}
	return fe
}

func (e FormErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, name := range slices.Sorted(maps.Keys(e)) {
		if msgs := e[name]; len(msgs) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", name, msgs[0]))
		}
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Add appends a message for a field.
func (e FormErrors) Add(name, message string) {
	url.Values(e).Add(name, message)
}

// Get returns the first message for a field.
func (e FormErrors) Get(name string) string {
	return url.Values(e).Get(name)
}

// Has reports whether a field has any message.
func (e FormErrors) Has(name string) bool {
	return len(e[name]) > 0
}

func (e FormErrors) IsEmpty() bool {
	return len(e) == 0
}
