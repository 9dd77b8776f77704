package schema

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/field"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Definition is a declarative form.
type Definition struct {
	Name     string            `yaml:"name" json:"name"`
	Attrs    map[string]string `yaml:"attrs,omitempty" json:"attrs,omitempty"`
	Data     map[string]string `yaml:"data,omitempty" json:"data,omitempty"`
	Children []Node            `yaml:"children" json:"children"`
}

// Node is an element, a text leaf or a field. Exactly one of Tag, Text and
// Field must be set.
type Node struct {
	Tag      string            `yaml:"tag,omitempty" json:"tag,omitempty"`
	Attrs    map[string]string `yaml:"attrs,omitempty" json:"attrs,omitempty"`
	Text     string            `yaml:"text,omitempty" json:"text,omitempty"`
	Field    *Field            `yaml:"field,omitempty" json:"field,omitempty"`
	Children []Node            `yaml:"children,omitempty" json:"children,omitempty"`
}

// Field declares a validated input.
type Field struct {
	Name             string            `yaml:"name" json:"name"`
	Input            string            `yaml:"input,omitempty" json:"input,omitempty"`
	Attrs            map[string]string `yaml:"attrs,omitempty" json:"attrs,omitempty"`
	NotifyWhileClean bool              `yaml:"notifyWhileClean,omitempty" json:"notifyWhileClean,omitempty"`
	validator.Config `yaml:",inline"`
}

// Load decodes and checks a definition.
func Load(r io.Reader) (Definition, error) {
	var def Definition
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return Definition{}, errors.Join(ErrInvalidSchema, err)
	}
	if err := def.Check(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// LoadFile loads a definition from a YAML file.
func LoadFile(path string) (Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return Definition{}, errors.Join(ErrReadFailed, err)
	}
	defer f.Close()

	def, err := Load(f)
	if err != nil {
		return Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// LoadDir loads every *.yaml and *.yml file in dir, keyed by form name.
func LoadDir(dir string) (map[string]Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Join(ErrReadFailed, err)
	}

	defs := make(map[string]Definition)
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		def, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		if _, ok := defs[def.Name]; ok {
			return nil, errors.Join(ErrInvalidSchema, fmt.Errorf("form %q defined twice", def.Name))
		}
		defs[def.Name] = def
	}
	return defs, nil
}

// Check validates the structure and rule configuration of the definition.
func (d Definition) Check() error {
	if d.Name == "" {
		return ErrEmptyName
	}
	var errs []error
	seen := make(map[string]bool)
	for i, n := range d.Children {
		errs = append(errs, n.check(fmt.Sprintf("children[%d]", i), seen))
	}
	return errors.Join(errs...)
}

func (n Node) check(path string, seen map[string]bool) error {
	set := 0
	for _, ok := range []bool{n.Tag != "", n.Text != "", n.Field != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("%s: %w", path, ErrInvalidNode)
	}
	if n.Text != "" && len(n.Children) > 0 {
		return fmt.Errorf("%s: %w", path, ErrInvalidNode)
	}

	var errs []error
	if f := n.Field; f != nil {
		errs = append(errs, f.check(path, seen))
	}
	for i, c := range n.Children {
		errs = append(errs, c.check(fmt.Sprintf("%s.children[%d]", path, i), seen))
	}
	return errors.Join(errs...)
}

func (f Field) check(path string, seen map[string]bool) error {
	if f.Name == "" {
		return fmt.Errorf("%s: %w", path, field.ErrEmptyName)
	}
	if seen[f.Name] {
		return fmt.Errorf("%s: %w: %q", path, form.ErrDuplicateField, f.Name)
	}
	seen[f.Name] = true

	if f.Input != "" && !slices.Contains([]string{"input", "textarea"}, f.Input) {
		return fmt.Errorf("%s: %w: unsupported input %q", path, ErrInvalidSchema, f.Input)
	}
	for name := range f.Messages {
		if !name.Valid() {
			return fmt.Errorf("%s: %w: %q", path, ErrUnknownRule, name)
		}
	}
	if err := f.Config.Check(); err != nil {
		return fmt.Errorf("%s: %w", path, errors.Join(ErrInvalidSchema, err))
	}
	return nil
}
