package live

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/formkit"
	"github.com/dmitrymomot/formkit/pkg/form"
)

// errorResponse hands err to the error handler.
type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

func fail(err error) Response {
	return errorResponse{err: err}
}

type signals struct {
	Valid     bool               `json:"valid"`
	Submitted *bool              `json:"submitted,omitempty"`
	Errors    formkit.FormErrors `json:"errors,omitempty"`
}

// patch writes component as HTML, or as an SSE element patch followed by a
// signal patch for Datastar. htmx requests also get sig as an HX-Trigger
// event and always a 200, since htmx does not swap error responses.
func patch(w http.ResponseWriter, r *http.Request, c templ.Component, sig signals, status int) error {
	if formkit.IsDataStar(r) {
		b, err := json.Marshal(sig)
		if err != nil {
			return err
		}
		sse := datastar.NewSSE(w, r)
		if err := sse.PatchElementTempl(c); err != nil {
			return err
		}
		return sse.PatchSignals(b)
	}

	if formkit.IsHTMX(r) {
		if err := formkit.SetHTMXEvent(w, ValidityEvent, sig); err != nil {
			return err
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != 0 && status != http.StatusOK && !formkit.IsHTMX(r) {
		w.WriteHeader(status)
	}
	return c.Render(r.Context(), w)
}

// htmlResponse writes markup captured while the session was locked, so a
// later event on the same session cannot change what this response shows.
type htmlResponse struct {
	html   templ.Component
	sig    signals
	status int
}

func (hr htmlResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return patch(w, r, hr.html, hr.sig, hr.status)
}

// capture renders c immediately. The caller must hold the session lock.
func capture(ctx context.Context, c templ.Component, sig signals, status int) Response {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return fail(err)
	}
	return htmlResponse{html: templ.Raw(buf.String()), sig: sig, status: status}
}

// streamResponse pushes the validity signal after every form change until
// the client disconnects or the session is dropped.
type streamResponse struct {
	form *form.Form
}

func (sr streamResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !formkit.IsDataStar(r) {
		return ErrStreamNotAllowed
	}
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	updates := sr.form.Subscribe(ctx)
	sse := datastar.NewSSE(w, r)
	send := func(valid bool) error {
		b, err := json.Marshal(signals{Valid: valid})
		if err != nil {
			return err
		}
		return sse.PatchSignals(b)
	}

	if err := send(sr.form.State().IsValid); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case st, ok := <-updates:
			if !ok {
				return nil
			}
			if err := send(st.IsValid); err != nil {
				return err
			}
		}
	}
}
