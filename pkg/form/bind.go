package form

import "github.com/dmitrymomot/formkit/pkg/field"

// View is a rendered projection of a tree node. Field nodes carry a binding
// whose change notification feeds the form.
type View struct {
	Node     Node
	Binding  *field.Binding
	Children []View
}

// Bind projects the tree into views, injecting the form's change handler into
// every field node at any depth. The tree is not modified.
func (f *Form) Bind() View {
	f.mu.Lock()
	tree := f.tree
	f.mu.Unlock()

	return f.bindNode(tree, tree.Root())
}

func (f *Form) bindNode(t *Tree, id NodeID) View {
	n, _ := t.Node(id)
	v := View{Node: n}
	if n.Kind == KindField && n.Field != nil {
		b := n.Field.Bind(f.onFieldChange)
		v.Binding = &b
	}
	if len(n.Children) > 0 {
		v.Children = make([]View, 0, len(n.Children))
		for _, c := range n.Children {
			v.Children = append(v.Children, f.bindNode(t, c))
		}
	}
	return v
}

// Find returns the first view in document order for which match is true.
func (v View) Find(match func(View) bool) (View, bool) {
	if match(v) {
		return v, true
	}
	for _, c := range v.Children {
		if found, ok := c.Find(match); ok {
			return found, true
		}
	}
	return View{}, false
}

// FieldView returns the view of the named field.
func (v View) FieldView(name string) (View, bool) {
	return v.Find(func(c View) bool {
		return c.Binding != nil && c.Binding.Field().Name() == name
	})
}
