package live

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/dmitrymomot/formkit/pkg/schema"
)

// Registry holds form definitions by name.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]schema.Definition
}

// NewRegistry creates a registry holding defs.
func NewRegistry(defs ...schema.Definition) (*Registry, error) {
	r := &Registry{defs: make(map[string]schema.Definition, len(defs))}
	for _, d := range defs {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a checked definition.
func (r *Registry) Register(def schema.Definition) error {
	if err := def.Check(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.defs[def.Name]; ok {
		return errors.Join(ErrDuplicateForm, fmt.Errorf("form %q", def.Name))
	}
	r.defs[def.Name] = def
	return nil
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (schema.Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[name]
	return def, ok
}

// Names returns the registered form names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.defs))
}
