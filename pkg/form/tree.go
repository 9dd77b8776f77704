package form

import (
	"maps"
	"slices"

	"github.com/dmitrymomot/formkit/pkg/field"
)

// Kind is the type of a tree node.
type Kind uint8

const (
	KindElement Kind = iota + 1
	KindField
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindField:
		return "field"
	case KindText:
		return "text"
	}
	return "unknown"
}

// NodeID indexes a node in its tree. The root is always 0.
type NodeID int

// NoParent is the parent of the root node.
const NoParent NodeID = -1

// Attrs holds element attributes.
type Attrs map[string]string

// Node is one entry of the tree arena.
// For KindField nodes Tag is the input tag ("input" or "textarea").
type Node struct {
	ID       NodeID
	Kind     Kind
	Tag      string
	Attrs    Attrs
	Text     string
	Field    *field.Field
	Parent   NodeID
	Children []NodeID
}

// Child describes a subtree before it is flattened into a Tree.
type Child struct {
	kind     Kind
	tag      string
	attrs    Attrs
	text     string
	field    *field.Field
	children []Child
}

// Element describes a plain element.
func Element(tag string, attrs Attrs, children ...Child) Child {
	return Child{kind: KindElement, tag: tag, attrs: attrs, children: children}
}

// Text describes a text leaf.
func Text(s string) Child {
	return Child{kind: KindText, text: s}
}

// Input describes a field rendered as an <input>. Children are rendered
// after the input and before the error indicator.
func Input(f *field.Field, attrs Attrs, children ...Child) Child {
	return Child{kind: KindField, tag: "input", attrs: attrs, field: f, children: children}
}

// TextArea describes a field rendered as a <textarea>.
func TextArea(f *field.Field, attrs Attrs, children ...Child) Child {
	return Child{kind: KindField, tag: "textarea", attrs: attrs, field: f, children: children}
}

// Tree is an immutable element tree stored as an arena of nodes with parent
// and child indices. Node 0 is the <form> root.
type Tree struct {
	nodes []Node
}

// NewTree flattens specs under a <form> root carrying attrs.
func NewTree(attrs Attrs, children ...Child) *Tree {
	t := &Tree{}
	root := t.add(NoParent, Child{kind: KindElement, tag: "form", attrs: attrs})
	for _, c := range children {
		t.build(root, c)
	}
	return t
}

func (t *Tree) build(parent NodeID, s Child) {
	id := t.add(parent, s)
	for _, c := range s.children {
		t.build(id, c)
	}
}

func (t *Tree) add(parent NodeID, s Child) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{
		ID:     id,
		Kind:   s.kind,
		Tag:    s.tag,
		Attrs:  maps.Clone(s.attrs),
		Text:   s.text,
		Field:  s.field,
		Parent: parent,
	})
	if parent != NoParent {
		t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	}
	return id
}

// Root returns the id of the root node.
func (t *Tree) Root() NodeID {
	return 0
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns a copy of the node with the given id.
func (t *Tree) Node(id NodeID) (Node, bool) {
	if id < 0 || int(id) >= len(t.nodes) {
		return Node{}, false
	}
	n := t.nodes[id]
	n.Attrs = maps.Clone(n.Attrs)
	n.Children = slices.Clone(n.Children)
	return n, true
}

// Walk visits nodes depth-first in document order. Returning false from fn
// skips the node's children.
func (t *Tree) Walk(fn func(n Node, depth int) bool) {
	if len(t.nodes) == 0 {
		return
	}
	t.walk(t.Root(), 0, fn)
}

func (t *Tree) walk(id NodeID, depth int, fn func(Node, int) bool) {
	n, _ := t.Node(id)
	if !fn(n, depth) {
		return
	}
	for _, c := range t.nodes[id].Children {
		t.walk(c, depth+1, fn)
	}
}

// scanFields collects field nodes reachable from the root. A field node is
// kept and not descended; other elements are descended; text is skipped.
func (t *Tree) scanFields() []*field.Field {
	var out []*field.Field
	t.Walk(func(n Node, _ int) bool {
		switch n.Kind {
		case KindField:
			out = append(out, n.Field)
			return false
		case KindElement:
			return true
		}
		return false
	})
	return out
}

// Builder assembles a Tree node by node. It is the imperative counterpart of
// NewTree, used when the structure is not known up front (e.g. when loading
// a schema).
type Builder struct {
	t     *Tree
	built bool
}

// NewBuilder starts a tree with a <form> root carrying attrs.
func NewBuilder(attrs Attrs) *Builder {
	t := &Tree{}
	t.add(NoParent, Child{kind: KindElement, tag: "form", attrs: attrs})
	return &Builder{t: t}
}

// Root returns the id of the root node.
func (b *Builder) Root() NodeID {
	return 0
}

// Element appends an element under parent.
func (b *Builder) Element(parent NodeID, tag string, attrs Attrs) NodeID {
	return b.append(parent, Child{kind: KindElement, tag: tag, attrs: attrs})
}

// Text appends a text leaf under parent.
func (b *Builder) Text(parent NodeID, s string) NodeID {
	return b.append(parent, Child{kind: KindText, text: s})
}

// Field appends a field node under parent. tag is "input" or "textarea";
// anything else falls back to "input".
func (b *Builder) Field(parent NodeID, f *field.Field, tag string, attrs Attrs) NodeID {
	if tag != "textarea" {
		tag = "input"
	}
	return b.append(parent, Child{kind: KindField, tag: tag, attrs: attrs, field: f})
}

// Build returns the tree. The builder must not be used afterwards.
func (b *Builder) Build() *Tree {
	b.built = true
	return b.t
}

func (b *Builder) append(parent NodeID, s Child) NodeID {
	if b.built {
		panic("form: builder used after Build")
	}
	if parent < 0 || int(parent) >= len(b.t.nodes) {
		panic("form: unknown parent node")
	}
	if b.t.nodes[parent].Kind == KindText {
		panic("form: text nodes cannot have children")
	}
	return b.t.add(parent, s)
}
