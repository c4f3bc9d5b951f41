package apierrors

import (
	"fmt"
	"net/http"
	"strings"
)

// RequestError is the wire-level error: a status code and a human-readable
// title, rendered inside the {"errors": [...]} envelope.
type RequestError struct {
	Status string `json:"status"`
	Title  string `json:"title"`
}

// Error implements the error interface
func (e *RequestError) Error() string {
	return e.Title
}

// HTTPStatus returns the HTTP status code for the error
func (e *RequestError) HTTPStatus() int {
	switch e.Status {
	case "400":
		return http.StatusBadRequest
	case "404":
		return http.StatusNotFound
	case "422":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Envelope is the error response body: {"errors":[{"status","title"}]}.
type Envelope struct {
	Errors []RequestError `json:"errors"`
}

// Payload wraps a single error in the envelope.
func Payload(e *RequestError) Envelope {
	return Envelope{Errors: []RequestError{*e}}
}

// NewNotFound reports a missing record, e.g.
// "Couldn't find Item with 'id'=999999".
func NewNotFound(resource, id string) *RequestError {
	return &RequestError{
		Status: "404",
		Title:  fmt.Sprintf("Couldn't find %s with 'id'=%s", resource, id),
	}
}

// NewNotFoundWithoutID reports a lookup attempted with no id at all, e.g. an
// item create request carrying no merchant_id.
func NewNotFoundWithoutID(resource string) *RequestError {
	return &RequestError{
		Status: "404",
		Title:  fmt.Sprintf("Couldn't find %s without an ID", resource),
	}
}

// NewValidationFailed aggregates field-level failures into a single 422,
// e.g. "Validation failed: Description can't be blank".
func NewValidationFailed(messages []string) *RequestError {
	return &RequestError{
		Status: "422",
		Title:  "Validation failed: " + strings.Join(messages, ", "),
	}
}

// NewBadRequest reports a query-parameter contract violation.
func NewBadRequest(title string) *RequestError {
	return &RequestError{
		Status: "400",
		Title:  title,
	}
}

// NewInternalError reports an unexpected failure.
func NewInternalError() *RequestError {
	return &RequestError{
		Status: "500",
		Title:  "Internal server error",
	}
}
