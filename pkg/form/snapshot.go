package form

import (
	"maps"
	"time"

	"github.com/dmitrymomot/formkit/pkg/field"
)

// Snapshot is the serialisable state of a form and its fields.
type Snapshot struct {
	ID        string                 `json:"id"`
	FormName  string                 `json:"formName"`
	FormData  map[string]string      `json:"formData"`
	Fields    map[string]field.State `json:"fields"`
	IsValid   bool                   `json:"isValid"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// Snapshot captures the current state under id.
func (f *Form) Snapshot(id string) Snapshot {
	st := f.State()
	fields := f.Fields()

	s := Snapshot{
		ID:        id,
		FormName:  f.name,
		FormData:  st.FormData,
		Fields:    make(map[string]field.State, len(fields)),
		IsValid:   st.IsValid,
		UpdatedAt: time.Now().UTC(),
	}
	for _, fld := range fields {
		s.Fields[fld.Name()] = fld.State()
	}
	return s
}

// Restore replaces form and field state from s. Field states for names not
// in the registry are ignored; registered fields missing from s are reset.
func (f *Form) Restore(s Snapshot) {
	data := maps.Clone(s.FormData)
	if data == nil {
		data = make(map[string]string)
	}

	f.mu.Lock()
	f.state = State{FormData: data, IsValid: s.IsValid}
	next := f.state.clone()
	registry := f.registry
	f.mu.Unlock()

	for _, fld := range registry {
		fld.Restore(s.Fields[fld.Name()])
	}
	f.updates.Publish(next)
}
