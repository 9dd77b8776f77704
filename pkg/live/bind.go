package live

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/formkit"
)

// sessionRequest addresses a form session.
type sessionRequest struct {
	Form    string
	Session string
}

// eventRequest is a change or blur of one field.
type eventRequest struct {
	sessionRequest
	Field string
	Value string
}

// submitRequest carries every value the client sent.
type submitRequest struct {
	sessionRequest
	Values map[string]string
}

func bindForm(r *http.Request, req *sessionRequest) error {
	req.Form = chi.URLParam(r, "form")
	if req.Form == "" {
		return errors.Join(ErrInvalidRequest, errors.New("empty form name"))
	}
	return nil
}

func bindSession(r *http.Request, req *sessionRequest) error {
	if err := bindForm(r, req); err != nil {
		return err
	}
	req.Session = chi.URLParam(r, "session")
	if err := uuid.Validate(req.Session); err != nil {
		return errors.Join(ErrInvalidRequest, fmt.Errorf("session id %q", req.Session), err)
	}
	return nil
}

// readValues returns the request values: Datastar signals or form fields.
// Non-string signals are formatted with fmt.
func readValues(r *http.Request) (map[string]string, error) {
	values := make(map[string]string)
	if formkit.IsDataStar(r) {
		signals := make(map[string]any)
		if err := datastar.ReadSignals(r, &signals); err != nil {
			return nil, errors.Join(ErrInvalidRequest, err)
		}
		for k, v := range signals {
			switch v := v.(type) {
			case string:
				values[k] = v
			case nil:
				values[k] = ""
			case map[string]any, []any:
			default:
				values[k] = fmt.Sprint(v)
			}
		}
		return values, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, errors.Join(ErrInvalidRequest, err)
	}
	for k := range r.Form {
		values[k] = r.Form.Get(k)
	}
	return values, nil
}

// bindEvent reads the field name from "field" (query or body) and the value
// from "value" or, failing that, from the entry named after the field.
func bindEvent(r *http.Request, req *eventRequest) error {
	if err := bindSession(r, &req.sessionRequest); err != nil {
		return err
	}
	values, err := readValues(r)
	if err != nil {
		return err
	}

	req.Field = r.URL.Query().Get("field")
	if req.Field == "" {
		req.Field = values["field"]
	}
	if req.Field == "" {
		return ErrMissingField
	}
	if v, ok := values["value"]; ok && req.Field != "value" {
		req.Value = v
	} else {
		req.Value = values[req.Field]
	}
	return nil
}

func bindSubmit(r *http.Request, req *submitRequest) error {
	if err := bindSession(r, &req.sessionRequest); err != nil {
		return err
	}
	values, err := readValues(r)
	if err != nil {
		return err
	}
	req.Values = values
	return nil
}
