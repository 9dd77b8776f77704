package field

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// ErrorRenderer builds the error indicator for a message.
type ErrorRenderer func(message string) templ.Component

// DefaultErrorRenderer renders <p class="error">message</p>.
func DefaultErrorRenderer(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<p class="error">`+templ.EscapeString(message)+`</p>`)
		return err
	})
}

// ErrorView returns the error indicator for the current state, or nil while
// the field is clean.
func (f *Field) ErrorView() templ.Component {
	st := f.State()
	if !st.HasError() {
		return nil
	}
	return f.renderer(st.ErrorMessage)
}
