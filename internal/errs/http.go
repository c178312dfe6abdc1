package errs

import (
	"strings"
)

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "rating", "error": "invalid rating: 7" }
type FieldError struct {
	// Field is the field name/key the error relates to (e.g. "rating").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// ActionType is a string-based enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRedirect tells the client it should redirect somewhere.
	// Usually "Value" holds the URL or route.
	ActionTypeRedirect ActionType = "redirect"
)

// Action describes an optional “what the client should do next” instruction.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// Format selects how the global error handler writes an HTTPError.
type Format int

const (
	// FormatJSON renders the full HTTPError as JSON.
	FormatJSON Format = iota

	// FormatText renders only Message as text/plain.
	FormatText

	// FormatEnvelope renders {"error": {"message": Message}}.
	FormatEnvelope
)

// HTTPError is the main custom error type for API responses.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: flag to let middleware decide whether to override the message.
//   - Errors: list of per-field errors (validation).
//   - Action: client instruction, action to be taken (optional).
//   - Format: response rendering, never serialized.
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"errors"`

	// Action is an optional client instruction (redirect, etc.).
	Action *Action `json:"action"`

	Format Format `json:"-"`
}

// Envelope is the body written for FormatEnvelope errors.
type Envelope struct {
	Error EnvelopeError `json:"error"`
}

// EnvelopeError is the inner object of an Envelope.
type EnvelopeError struct {
	Message string `json:"message"`
}

// Error returns the Message, so printing/logging the error shows it.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError.
//
// It does NOT compare Code/Status/etc, only the type.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a *copy* of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	c := e.clone()
	c.Message = message
	return c
}

// AsText returns a copy rendered as a plain-text body.
func (e *HTTPError) AsText() *HTTPError {
	c := e.clone()
	c.Format = FormatText
	return c
}

// AsEnvelope returns a copy rendered inside an {"error": {...}} envelope.
func (e *HTTPError) AsEnvelope() *HTTPError {
	c := e.clone()
	c.Format = FormatEnvelope
	return c
}

func (e *HTTPError) clone() *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  e.Message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
		Action:   e.Action,
		Format:   e.Format,
	}
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
