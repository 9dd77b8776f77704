package live

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnknownForm      = errors.New("live: unknown form")
	ErrDuplicateForm    = errors.New("live: form already registered")
	ErrMissingField     = errors.New("live: missing field name")
	ErrInvalidRequest   = errors.New("live: invalid request")
	ErrNilResponse      = errors.New("live: handler returned nil response")
	ErrStreamNotAllowed = errors.New("live: streaming requires a Datastar request")
)

// HTTPError carries a status code for the error handler.
type HTTPError struct {
	Code int
	Err  error
}

func (e HTTPError) Error() string {
	return fmt.Sprintf("%d %s: %v", e.Code, http.StatusText(e.Code), e.Err)
}

func (e HTTPError) Unwrap() error {
	return e.Err
}

func httpError(code int, err error) HTTPError {
	return HTTPError{Code: code, Err: err}
}
