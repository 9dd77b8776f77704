package formkit

import (
	"encoding/json"
	"net/http"
)

// htmx request headers.
const (
	HXRequest     = "HX-Request"
	HXTarget      = "HX-Target"
	HXTrigger     = "HX-Trigger"
	HXTriggerName = "HX-Trigger-Name"
	HXCurrentURL  = "HX-Current-URL"
)

// htmx response headers.
const (
	HXRefresh  = "HX-Refresh"
	HXReswap   = "HX-Reswap"
	HXRetarget = "HX-Retarget"
)

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HXRequest) == "true"
}

// HTMXTarget returns the id of the target element, if any.
func HTMXTarget(r *http.Request) string {
	return r.Header.Get(HXTarget)
}

// HTMXTriggerName returns the name of the element that triggered the request.
func HTMXTriggerName(r *http.Request) string {
	return r.Header.Get(HXTriggerName)
}

// SetHTMXEvent sets the HX-Trigger response header so htmx dispatches event
// with detail on the client. Must be called before the body is written.
func SetHTMXEvent(w http.ResponseWriter, event string, detail any) error {
	b, err := json.Marshal(map[string]any{event: detail})
	if err != nil {
		return err
	}
	w.Header().Set(HXTrigger, string(b))
	return nil
}
