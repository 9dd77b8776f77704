package live

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrymomot/formkit/pkg/field"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/formstore"
	"github.com/dmitrymomot/formkit/pkg/schema"
)

// session is the in-memory form of one client. Events for a session are
// applied under mu in arrival order.
type session struct {
	mu       sync.Mutex
	form     *form.Form
	lastUsed time.Time
}

func (s *Server) build(def schema.Definition) (*form.Form, error) {
	return def.Build(
		schema.WithFormOptions(form.WithLogger(s.log)),
		schema.WithFieldOptions(field.WithLogger(s.log)),
	)
}

// create builds a fresh form, stores its first snapshot and caches it.
func (s *Server) create(ctx context.Context, def schema.Definition, id string) (*session, error) {
	f, err := s.build(def)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, f.Snapshot(id)); err != nil {
		f.Close()
		return nil, err
	}

	ss := &session{form: f, lastUsed: s.now()}
	s.mu.Lock()
	s.sessions[id] = ss
	s.mu.Unlock()
	return ss, nil
}

// acquire returns the locked session, restored from the store. The store is
// the source of truth; the cached form only keeps subscriptions alive.
// Callers must unlock ss.mu.
func (s *Server) acquire(ctx context.Context, formName, id string) (*session, error) {
	def, ok := s.registry.Lookup(formName)
	if !ok {
		return nil, ErrUnknownForm
	}
	snap, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if snap.FormName != formName {
		return nil, formstore.ErrSnapshotNotFound
	}

	s.sweep()

	s.mu.Lock()
	ss, ok := s.sessions[id]
	if !ok || ss.form.Name() != formName {
		s.mu.Unlock()
		f, err := s.build(def)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		if cur, ok := s.sessions[id]; ok && cur.form.Name() == formName {
			f.Close()
			ss = cur
		} else {
			ss = &session{form: f}
			s.sessions[id] = ss
		}
	}
	ss.lastUsed = s.now()
	s.mu.Unlock()

	ss.mu.Lock()
	ss.form.Restore(snap)
	return ss, nil
}

// save persists the session form.
func (s *Server) save(ctx context.Context, ss *session, id string) error {
	return s.store.Save(ctx, ss.form.Snapshot(id))
}

// sweep drops cached forms idle for longer than the timeout, at most once
// per half timeout.
func (s *Server) sweep() {
	if s.idleTimeout <= 0 {
		return
	}
	now := s.now()

	s.mu.Lock()
	if now.Sub(s.lastSweep) < s.idleTimeout/2 {
		s.mu.Unlock()
		return
	}
	s.lastSweep = now
	var idle []*session
	for id, ss := range s.sessions {
		if now.Sub(ss.lastUsed) > s.idleTimeout {
			idle = append(idle, ss)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, ss := range idle {
		ss.form.Close()
	}
}

// Sessions returns the number of cached session forms.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
