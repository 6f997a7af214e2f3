// Package errs defines the error shapes the API returns to clients.
//
//   - Return consistent error bodies (JSON) for every failure.
//   - Carry field-level validation errors for request payloads.
//   - Play nicely with the standard errors package (errors.As / errors.Is).
package errs

import "strings"

// FieldError is a validation failure tied to one request field.
//
//	{ "field": "email", "error": "must be a valid email address" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionType names what the client should do next.
type ActionType string

const (
	// ActionTypeRetry asks the client to retry later. Value holds the delay.
	ActionTypeRetry ActionType = "retry"
)

// Action is an optional hint for the client.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the error type every handler, service and middleware returns
// when the failure has a known HTTP status.
//
// It is serialized as the response body by the global error handler, so the
// `message` key is always present.
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"errors"`

	// Action is an optional client instruction.
	Action *Action `json:"action"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is an *HTTPError, regardless of its status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
