package formkit

import (
	"net/http"
	"strings"
)

const (
	// DataStarRequestHeader is sent by the Datastar client on every request.
	DataStarRequestHeader = "Datastar-Request"

	// DataStarAcceptHeader is the Accept value of requests expecting SSE.
	DataStarAcceptHeader = "text/event-stream"

	// DataStarQueryParam carries signals on GET requests.
	DataStarQueryParam = "datastar"
)

// IsDataStar reports whether the request was issued by Datastar.
func IsDataStar(r *http.Request) bool {
	if r.Header.Get(DataStarRequestHeader) == "true" {
		return true
	}
	if strings.Contains(r.Header.Get("Accept"), DataStarAcceptHeader) {
		return true
	}
	return r.URL.Query().Has(DataStarQueryParam)
}
