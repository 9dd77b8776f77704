package live

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit"
	"github.com/dmitrymomot/formkit/pkg/field"
	"github.com/dmitrymomot/formkit/pkg/formstore"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Server serves registered forms. Each page load starts a session whose
// snapshot lives in the store; change and blur events are applied to the
// restored form and answered with the re-rendered field.
type Server struct {
	registry    *Registry
	store       formstore.Store
	log         *slog.Logger
	basePath    string
	transport   Transport
	onSubmit    SubmitFunc
	onError     ErrorHandler
	idleTimeout time.Duration
	now         func() time.Time

	mu        sync.Mutex
	sessions  map[string]*session
	lastSweep time.Time
}

// New creates a server.
func New(registry *Registry, store formstore.Store, opts ...Option) *Server {
	s := &Server{
		registry:    registry,
		store:       store,
		log:         logger.Nop(),
		basePath:    "/forms",
		idleTimeout: 30 * time.Minute,
		now:         time.Now,
		sessions:    make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.onError == nil {
		s.onError = DefaultErrorHandler(s.log)
	}
	s.log = s.log.With(logger.Component("live"))
	return s
}

// Routes returns the router to mount at the base path:
//
//	GET  /{form}                    start a session and render the form
//	GET  /{form}/{session}          render an existing session
//	POST /{form}/{session}/change   field change (field, value)
//	POST /{form}/{session}/blur     field blur (field, value)
//	POST /{form}/{session}/submit   validate every field
//	GET  /{form}/{session}/stream   Datastar validity stream
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.withTransport)
	r.Get("/{form}", wrap(s.start, s.onError, bindForm))
	r.Route("/{form}/{session}", func(r chi.Router) {
		r.Get("/", wrap(s.show, s.onError, bindSession))
		r.Post("/change", wrap(s.event(eventChange), s.onError, bindEvent))
		r.Post("/blur", wrap(s.event(eventBlur), s.onError, bindEvent))
		r.Post("/submit", wrap(s.submit, s.onError, bindSubmit))
		r.Get("/stream", wrap(s.stream, s.onError, bindSession))
	})
	return r
}

// Close drops every cached session form, ending open streams.
func (s *Server) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*session)
	s.mu.Unlock()

	for _, ss := range sessions {
		ss.form.Close()
	}
}

// transportKey carries the transport picked for a request.
type transportKey struct{}

func (s *Server) withTransport(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), transportKey{}, s.transportFor(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) transportOf(ctx context.Context) Transport {
	if t, ok := ctx.Value(transportKey{}).(Transport); ok {
		return t
	}
	return s.transport
}

func (s *Server) start(ctx context.Context, req sessionRequest) Response {
	def, ok := s.registry.Lookup(req.Form)
	if !ok {
		return fail(ErrUnknownForm)
	}
	id := uuid.NewString()
	ss, err := s.create(ctx, def, id)
	if err != nil {
		return fail(err)
	}

	s.log.InfoContext(ctx, "form session started", logger.Form(req.Form), logger.Session(id))
	ss.mu.Lock()
	defer ss.mu.Unlock()
	st := ss.form.State()
	opts := s.renderOptions(s.transportOf(ctx), req.Form, id, st.IsValid)
	return capture(ctx, ss.form.Render(opts...), signals{Valid: st.IsValid}, 0)
}

func (s *Server) show(ctx context.Context, req sessionRequest) Response {
	ss, err := s.acquire(ctx, req.Form, req.Session)
	if err != nil {
		return fail(err)
	}
	defer ss.mu.Unlock()

	st := ss.form.State()
	opts := s.renderOptions(s.transportOf(ctx), req.Form, req.Session, st.IsValid)
	return capture(ctx, ss.form.Render(opts...), signals{Valid: st.IsValid}, 0)
}

type eventKind string

const (
	eventChange eventKind = "change"
	eventBlur   eventKind = "blur"
)

func (s *Server) event(kind eventKind) HandlerFunc[eventRequest] {
	return func(ctx context.Context, req eventRequest) Response {
		ss, err := s.acquire(ctx, req.Form, req.Session)
		if err != nil {
			return fail(err)
		}
		defer ss.mu.Unlock()

		var st field.State
		switch kind {
		case eventBlur:
			st, err = ss.form.Blur(ctx, req.Field, req.Value)
		default:
			st, err = ss.form.Change(ctx, req.Field, req.Value)
		}
		if err != nil {
			return fail(err)
		}
		if err := s.save(ctx, ss, req.Session); err != nil {
			return fail(err)
		}

		valid := ss.form.State().IsValid
		s.log.DebugContext(ctx, "field event applied",
			logger.Form(req.Form),
			logger.Session(req.Session),
			logger.Field(req.Field),
			logger.Event(string(kind)),
			slog.String("status", string(st.Status())),
			logger.Valid(valid),
		)

		opts := append(s.renderOptions(s.transportOf(ctx), req.Form, req.Session, valid),
			withValue(req.Field, req.Value))
		return capture(ctx, ss.form.RenderField(req.Field, opts...), signals{Valid: valid}, 0)
	}
}

func (s *Server) submit(ctx context.Context, req submitRequest) Response {
	ss, err := s.acquire(ctx, req.Form, req.Session)
	if err != nil {
		return fail(err)
	}
	defer ss.mu.Unlock()

	f := ss.form
	for _, fld := range f.Fields() {
		if v, ok := req.Values[fld.Name()]; ok {
			f.HandleFieldChange(ctx, v, fld.Name())
		}
	}

	verr := f.Validate(ctx)
	if verr != nil && !validator.IsValidationError(verr) {
		return fail(verr)
	}
	if err := s.save(ctx, ss, req.Session); err != nil {
		return fail(err)
	}

	st := f.State()
	submitted := verr == nil
	if submitted && s.onSubmit != nil {
		if err := s.onSubmit(ctx, req.Form, req.Session, st.FormData); err != nil {
			var ve validator.ValidationErrors
			if !errors.As(err, &ve) {
				return fail(err)
			}
			verr, submitted = err, false
		}
	}

	s.log.InfoContext(ctx, "form submitted",
		logger.Form(req.Form),
		logger.Session(req.Session),
		logger.Valid(submitted),
	)

	sig := signals{Valid: st.IsValid, Submitted: &submitted}
	status := http.StatusOK
	if !submitted {
		sig.Errors = formkit.FormErrorsFrom(verr)
		status = http.StatusUnprocessableEntity
	}
	opts := s.renderOptions(s.transportOf(ctx), req.Form, req.Session, st.IsValid)
	return capture(ctx, f.Render(opts...), sig, status)
}

func (s *Server) stream(ctx context.Context, req sessionRequest) Response {
	ss, err := s.acquire(ctx, req.Form, req.Session)
	if err != nil {
		return fail(err)
	}
	ss.mu.Unlock()
	return streamResponse{form: ss.form}
}
