package service

import "fmt"

// HTTPError couples a service-layer failure with the status code the HTTP
// boundary should answer with, so handlers stay a thin mapping and the
// status decision lives next to the error itself.
type HTTPError struct {
	StatusCode int
	Wrapped    error
}

func (e *HTTPError) Error() string {
	return e.Wrapped.Error()
}

func (e *HTTPError) Unwrap() error {
	return e.Wrapped
}

func httpError(statusCode int, err error) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Wrapped: err}
}

func httpErrorf(statusCode int, format string, args ...any) *HTTPError {
	return httpError(statusCode, fmt.Errorf(format, args...))
}
