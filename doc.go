// Package formkit validates HTML forms field by field as the user types.
//
// The building blocks live in sub-packages:
//
//   - pkg/validator evaluates the fixed rule set (required, numeric,
//     not numeric, min and max length, email) against a value.
//   - pkg/field wraps one input: it stays silent until the first blur,
//     then validates on every change and exposes the first error message.
//   - pkg/form aggregates fields found in an element tree, keeps every
//     field's value and recomputes overall validity on each change.
//   - pkg/schema loads form definitions from YAML.
//   - pkg/formstore persists form snapshots in memory, Redis or Postgres.
//   - pkg/live serves forms over HTTP for htmx and Datastar front ends.
//
// This package holds the pieces shared by HTTP code: request detection for
// htmx and Datastar, and FormErrors for per-field messages.
//
// Basic usage:
//
//	email := field.MustNew("email", validator.Config{
//		IsRequired: true,
//		IsEmail:    true,
//		Messages: map[validator.RuleName]string{
//			validator.IsRequired: "Email is required",
//			validator.IsEmail:    "Email is invalid",
//		},
//	})
//	f, err := form.New(form.NewTree(nil, form.Input(email, nil)),
//		form.WithValidityObserver(func(ctx context.Context, ok bool, data map[string]string) {
//			// enable or disable submit
//		}),
//	)
//
//	f.Blur(ctx, "email", "")        // field shows "Email is required"
//	f.Change(ctx, "email", "a@b.co") // error clears, form becomes valid
package formkit
