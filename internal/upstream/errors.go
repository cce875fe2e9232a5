package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a failed vendor call: a non-2xx status or a body that did not
// decode. Status is 0 when the request never got a response.
type APIError struct {
	Vendor string
	Method string
	Path   string
	Status int
	Body   string
	Err    error
}

func (e *APIError) Error() string {
	switch {
	case e.Status == 0:
		return fmt.Sprintf("%s api error: %s %s: %v", e.Vendor, e.Method, e.Path, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s api error: %d %s: %v: %s", e.Vendor, e.Status, http.StatusText(e.Status), e.Err, e.Body)
	default:
		return fmt.Sprintf("%s api error: %d %s: %s", e.Vendor, e.Status, http.StatusText(e.Status), e.Body)
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// StatusOf returns the vendor HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
