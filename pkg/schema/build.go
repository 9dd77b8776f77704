package schema

import (
	"github.com/dmitrymomot/formkit/pkg/field"
	"github.com/dmitrymomot/formkit/pkg/form"
)

// BuildOption configures the form produced by Build.
type BuildOption func(*buildConfig)

type buildConfig struct {
	formOpts  []form.Option
	fieldOpts []field.Option
}

// WithFormOptions passes options to form.New.
func WithFormOptions(opts ...form.Option) BuildOption {
	return func(c *buildConfig) { c.formOpts = append(c.formOpts, opts...) }
}

// WithFieldOptions passes options to every field.New.
func WithFieldOptions(opts ...field.Option) BuildOption {
	return func(c *buildConfig) { c.fieldOpts = append(c.fieldOpts, opts...) }
}

// Build creates a fresh form with its own fields. Every call returns an
// independent form, so one definition can serve many sessions.
func (d Definition) Build(opts ...BuildOption) (*form.Form, error) {
	if err := d.Check(); err != nil {
		return nil, err
	}
	var cfg buildConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	b := form.NewBuilder(d.Attrs)
	for _, n := range d.Children {
		if err := addNode(b, b.Root(), n, cfg.fieldOpts); err != nil {
			return nil, err
		}
	}

	formOpts := append([]form.Option{form.WithName(d.Name), form.WithData(d.Data)}, cfg.formOpts...)
	return form.New(b.Build(), formOpts...)
}

func addNode(b *form.Builder, parent form.NodeID, n Node, fieldOpts []field.Option) error {
	var id form.NodeID
	switch {
	case n.Text != "":
		b.Text(parent, n.Text)
		return nil
	case n.Field != nil:
		opts := fieldOpts
		if n.Field.NotifyWhileClean {
			opts = append(append([]field.Option(nil), fieldOpts...), field.WithNotifyWhileClean())
		}
		fld, err := field.New(n.Field.Name, n.Field.Config, opts...)
		if err != nil {
			return err
		}
		id = b.Field(parent, fld, n.Field.Input, n.Field.Attrs)
	default:
		id = b.Element(parent, n.Tag, n.Attrs)
	}
	for _, c := range n.Children {
		if err := addNode(b, id, c, fieldOpts); err != nil {
			return err
		}
	}
	return nil
}
