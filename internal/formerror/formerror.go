// Package formerror turns backend error responses into the per-field and
// form-level messages a submitted form displays.
package formerror

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/stemsi/sekolah-console/internal/apiclient"
)

// DefaultMessage is used when nothing better can be extracted from an error.
const DefaultMessage = "An unexpected error occurred"

// validationPrefixes are stripped from issue messages, case-insensitively.
var validationPrefixes = []string{"Value error, ", "Assertion failed, "}

// Result is the outcome of one form submission.
// FieldErrors is never nil; GeneralError is empty when there is none.
type Result struct {
	FieldErrors  map[string]string `json:"fields"`
	GeneralError string            `json:"general,omitempty"`
}

// HasErrors reports whether anything should be shown to the user.
func (r Result) HasErrors() bool {
	return len(r.FieldErrors) > 0 || r.GeneralError != ""
}

// Message returns the general error, or any one field error when there is no
// general error.
func (r Result) Message() string {
	if r.GeneralError != "" {
		return r.GeneralError
	}
	for _, msg := range r.FieldErrors {
		return msg
	}
	return ""
}

type body struct {
	Detail  json.RawMessage `json:"detail"`
	Message json.RawMessage `json:"message"`
}

type issue struct {
	Loc []interface{} `json:"loc"`
	Msg string        `json:"msg"`
}

// Normalize maps any error to a Result. It never panics.
func Normalize(err error) Result {
	res := Result{FieldErrors: map[string]string{}}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		var b body
		if json.Unmarshal(apiErr.Body, &b) == nil {
			if apiErr.Status == http.StatusUnprocessableEntity {
				var issues []issue
				if json.Unmarshal(b.Detail, &issues) == nil && len(issues) > 0 {
					for _, is := range issues {
						msg := stripPrefix(is.Msg)
						if field, ok := fieldName(is.Loc); ok {
							res.FieldErrors[field] = msg
						} else {
							res.GeneralError = msg
						}
					}
					return res
				}
			}

			if detail, ok := plainString(b.Detail); ok {
				res.GeneralError = detail
				return res
			}
			if message, ok := plainString(b.Message); ok {
				res.GeneralError = message
				return res
			}
		}
	}

	if err != nil && err.Error() != "" {
		res.GeneralError = err.Error()
		return res
	}

	res.GeneralError = DefaultMessage
	return res
}

// plainString decodes raw only when it is a JSON string; null, numbers and
// objects are rejected.
func plainString(raw json.RawMessage) (string, bool) {
	var v *string
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil || v == nil {
		return "", false
	}
	return *v, true
}

// fieldName returns the last location segment, or false for body-level issues
// whose location has at most one segment.
func fieldName(loc []interface{}) (string, bool) {
	if len(loc) <= 1 {
		return "", false
	}
	switch seg := loc[len(loc)-1].(type) {
	case string:
		return seg, true
	case float64:
		return strconv.FormatFloat(seg, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(seg), true
	default:
		return "", false
	}
}

func stripPrefix(msg string) string {
	for _, p := range validationPrefixes {
		if len(msg) >= len(p) && strings.EqualFold(msg[:len(p)], p) {
			return msg[len(p):]
		}
	}
	return msg
}
