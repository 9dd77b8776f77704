package live

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrymomot/formkit"
	"github.com/dmitrymomot/formkit/pkg/form"
)

// Transport selects the client library the rendered markup targets.
type Transport int

const (
	TransportHTMX Transport = iota
	TransportDatastar
)

func (t Transport) String() string {
	if t == TransportDatastar {
		return "datastar"
	}
	return "htmx"
}

// ParseTransport converts "htmx" or "datastar".
func ParseTransport(s string) (Transport, error) {
	switch strings.ToLower(s) {
	case "htmx", "":
		return TransportHTMX, nil
	case "datastar":
		return TransportDatastar, nil
	}
	return TransportHTMX, fmt.Errorf("%w: transport %q", ErrInvalidRequest, s)
}

// transportFor picks Datastar for Datastar requests or an explicit
// ?transport=datastar, and the server default otherwise.
func (s *Server) transportFor(r *http.Request) Transport {
	if formkit.IsDataStar(r) {
		return TransportDatastar
	}
	if q := r.URL.Query().Get("transport"); q != "" {
		if t, err := ParseTransport(q); err == nil {
			return t
		}
	}
	return s.transport
}

// ValidityEvent is the htmx event carrying {"valid": bool}.
const ValidityEvent = "formkit:validity"

func (s *Server) sessionURL(formName, id string) string {
	return s.basePath + "/" + formName + "/" + id
}

// renderOptions binds inputs and the form element to the session endpoints.
func (s *Server) renderOptions(t Transport, formName, id string, valid bool) []form.RenderOption {
	base := s.sessionURL(formName, id)
	formAttrs := form.Attrs{"id": "form-" + id}
	var inputAttrs func(string) form.Attrs

	switch t {
	case TransportDatastar:
		signals, _ := json.Marshal(map[string]bool{"valid": valid})
		formAttrs["data-signals"] = string(signals)
		formAttrs["data-on-submit__prevent"] = fmt.Sprintf("@post('%s/submit')", base)
		inputAttrs = func(name string) form.Attrs {
			return form.Attrs{
				"id":                            "input-" + name,
				"data-bind-" + name:             "",
				"data-on-input__debounce.250ms": fmt.Sprintf("@post('%s/change?field=%s')", base, name),
				"data-on-blur":                  fmt.Sprintf("@post('%s/blur?field=%s')", base, name),
			}
		}
	default:
		formAttrs["hx-post"] = base + "/submit"
		formAttrs["hx-target"] = "this"
		formAttrs["hx-swap"] = "outerHTML"
		inputAttrs = func(name string) form.Attrs {
			vals, _ := json.Marshal(map[string]string{"field": name})
			target := "#" + form.FieldID(name)
			return form.Attrs{
				"id":         "input-" + name,
				"hx-post":    base + "/change",
				"hx-trigger": "input changed delay:250ms",
				"hx-target":  target,
				"hx-swap":    "outerHTML",
				"hx-vals":    string(vals),
				"hx-on:blur": fmt.Sprintf(
					"htmx.ajax('POST', '%s/blur', {source: this, target: '%s', swap: 'outerHTML', values: {field: '%s', value: this.value}})",
					base, target, name),
			}
		}
	}

	return []form.RenderOption{form.WithFormAttrs(formAttrs), form.WithInputAttrs(inputAttrs)}
}

func withValue(name, value string) form.RenderOption {
	return form.WithValues(map[string]string{name: value})
}
