package form

import (
	"context"
	"io"
	"maps"
	"slices"

	"github.com/a-h/templ"
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// RenderOption adjusts rendering.
type RenderOption func(*renderConfig)

type renderConfig struct {
	inputAttrs func(name string) Attrs
	formAttrs  Attrs
	values     map[string]string
}

// WithInputAttrs adds attributes to the input of every field, e.g. event
// bindings of a live transport.
func WithInputAttrs(fn func(name string) Attrs) RenderOption {
	return func(c *renderConfig) { c.inputAttrs = fn }
}

// WithFormAttrs adds attributes to the <form> root.
func WithFormAttrs(attrs Attrs) RenderOption {
	return func(c *renderConfig) { c.formAttrs = attrs }
}

// WithValues renders the given input values instead of the stored form
// data, e.g. to echo what the client currently shows.
func WithValues(values map[string]string) RenderOption {
	return func(c *renderConfig) { c.values = values }
}

// FieldID returns the DOM id of the wrapper around a field.
func FieldID(name string) string {
	return "field-" + name
}

// Render returns a component rendering the bound view with inputs filled from
// the form data and each field's error indicator.
func (f *Form) Render(opts ...RenderOption) templ.Component {
	cfg := newRenderConfig(opts)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		r := &renderer{ctx: ctx, w: w, cfg: cfg, data: f.State().FormData}
		r.view(f.Bind(), true)
		return r.err
	})
}

// RenderField returns a component rendering only the wrapper of the named
// field, suitable as a partial update target.
func (f *Form) RenderField(name string, opts ...RenderOption) templ.Component {
	cfg := newRenderConfig(opts)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		v, ok := f.Bind().FieldView(name)
		if !ok {
			return ErrUnknownField
		}
		r := &renderer{ctx: ctx, w: w, cfg: cfg, data: f.State().FormData}
		r.view(v, false)
		return r.err
	})
}

func newRenderConfig(opts []RenderOption) renderConfig {
	var cfg renderConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

type renderer struct {
	ctx  context.Context
	w    io.Writer
	cfg  renderConfig
	data map[string]string
	err  error
}

func (r *renderer) write(s string) {
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.w, s)
}

func (r *renderer) attrs(a Attrs) {
	for _, k := range slices.Sorted(maps.Keys(a)) {
		r.write(" " + k + `="` + templ.EscapeString(a[k]) + `"`)
	}
}

func (r *renderer) view(v View, root bool) {
	n := v.Node
	switch n.Kind {
	case KindText:
		r.write(templ.EscapeString(n.Text))
	case KindField:
		r.field(v)
	case KindElement:
		a := n.Attrs
		if root && len(r.cfg.formAttrs) > 0 {
			a = maps.Clone(a)
			if a == nil {
				a = Attrs{}
			}
			maps.Copy(a, r.cfg.formAttrs)
		}
		r.write("<" + n.Tag)
		r.attrs(a)
		r.write(">")
		if voidElements[n.Tag] {
			return
		}
		for _, c := range v.Children {
			r.view(c, false)
		}
		r.write("</" + n.Tag + ">")
	}
}

func (r *renderer) field(v View) {
	if v.Binding == nil {
		return
	}
	fld := v.Binding.Field()
	name := fld.Name()
	value, ok := r.cfg.values[name]
	if !ok {
		value = r.data[name]
	}

	a := maps.Clone(v.Node.Attrs)
	if a == nil {
		a = Attrs{}
	}
	if r.cfg.inputAttrs != nil {
		maps.Copy(a, r.cfg.inputAttrs(name))
	}
	a["name"] = name

	r.write(`<span class="field" id="` + templ.EscapeString(FieldID(name)) + `">`)
	if v.Node.Tag == "textarea" {
		r.write("<textarea")
		r.attrs(a)
		r.write(">" + templ.EscapeString(value) + "</textarea>")
	} else {
		a["value"] = value
		r.write("<input")
		r.attrs(a)
		r.write(">")
	}
	for _, c := range v.Children {
		r.view(c, false)
	}
	if ev := fld.ErrorView(); ev != nil && r.err == nil {
		r.err = ev.Render(r.ctx, r.w)
	}
	r.write("</span>")
}
