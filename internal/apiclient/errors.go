package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized matches any backend response with status 401.
var ErrUnauthorized = errors.New("backend rejected credentials")

// APIError is a non-2xx backend response. Body is kept raw so callers can
// decode whatever error shape the endpoint produced.
type APIError struct {
	Status  int
	Body    []byte
	Message string
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{
		Status:  status,
		Body:    body,
		Message: fmt.Sprintf("Request failed with status code %d", status),
	}
}

func (e *APIError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
