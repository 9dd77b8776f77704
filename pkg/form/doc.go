// Package form aggregates field validators into a form.
//
// A form is built over an immutable element Tree. At construction it scans
// the tree once for field nodes (the registry) and keeps the current value
// of every field in its form data. Fields report changes through
// HandleFieldChange, which recomputes validity statically from every
// registered field's rules, independent of whether a field has been touched.
//
//	email := field.MustNew("email", validator.Config{
//		IsRequired: true,
//		IsEmail:    true,
//		Messages: map[validator.RuleName]string{
//			validator.IsRequired: "Email is required",
//			validator.IsEmail:    "Email is invalid",
//		},
//	})
//	tree := form.NewTree(nil,
//		form.Element("label", nil, form.Text("Email")),
//		form.Input(email, form.Attrs{"type": "email"}),
//	)
//	f, err := form.New(tree, form.WithValidityObserver(
//		func(ctx context.Context, ok bool, data map[string]string) {
//			// toggle the submit button
//		}))
//
// Bind projects the tree into views whose field bindings feed the form, and
// Render writes the bound view as HTML through templ. Snapshot and Restore
// move the complete state in and out of a store.
package form
