package errors

import "net/http"

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// NotFound is the single not-found error for every denied or missing gallery.
// Access failures, excluded categories and a disabled feature all return this
// same value so the response never reveals which check failed.
func NotFound() *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: "Not found", StatusCode: http.StatusNotFound}
}
