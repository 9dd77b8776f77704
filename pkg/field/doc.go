// Package field implements the validator wrapped around a single input.
//
// A Field owns its runtime State ({ErrorMessage, Dirty}) and moves between
// two statuses:
//
//	Clean   --validate, rule with message failed-->  Invalid
//	Invalid --validate, no reported failure------->  Clean
//
// Event wiring is dirty-gated. Before the field is dirty, Change only runs
// the wrapped input's own handler. Once dirty, Change runs the input handler,
// the upward OnChange(value, name) notification and validation, in that
// order. Blur always validates and is the only way to become dirty.
//
//	email := field.MustNew("email", validator.Config{
//	    IsRequired: true,
//	    IsEmail:    true,
//	    Messages: map[validator.RuleName]string{
//	        validator.IsRequired: "Required",
//	        validator.IsEmail:    "Invalid email",
//	    },
//	})
//
//	email.Blur(ctx, "")          // {ErrorMessage: "Required", Dirty: true}
//	email.Change(ctx, "a@b.io")  // {}
//
// The error indicator is a templ component: ErrorView returns nil while the
// field is clean. Subscribe delivers every state change so a rendering layer
// can redraw without polling.
package field
