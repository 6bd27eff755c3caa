package users

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUserNotFound is returned by a UserStore when no record exists for a key
var ErrUserNotFound = errors.New("user not found")

// ValidationError represents a request body that failed the user schema.
// Errors holds one message per violated field, in field order.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// NewValidationError creates a validation error from the collected field messages
func NewValidationError(messages []string) *ValidationError {
	return &ValidationError{Errors: messages}
}

// MalformedInputError represents a request body that could not be parsed as JSON
type MalformedInputError struct {
	Cause error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("invalid request body format : \"%s\"", e.Cause.Error())
}

func (e *MalformedInputError) Unwrap() error {
	return e.Cause
}

// NewMalformedInputError creates an error for an unparseable request body
func NewMalformedInputError(cause error) *MalformedInputError {
	return &MalformedInputError{Cause: cause}
}

// HTTPError is an explicit failure that already knows its status code and body
type HTTPError struct {
	StatusCode int
	Body       map[string]any
}

func (e *HTTPError) Error() string {
	if msg, ok := e.Body["error"].(string); ok {
		return fmt.Sprintf("http error [%d]: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("http error [%d]", e.StatusCode)
}

// NewHTTPError creates an explicit status error
func NewHTTPError(statusCode int, body map[string]any) *HTTPError {
	if body == nil {
		body = map[string]any{}
	}
	return &HTTPError{
		StatusCode: statusCode,
		Body:       body,
	}
}

// NewNotFoundError creates the error raised when a lookup finds no record
func NewNotFoundError() *HTTPError {
	return NewHTTPError(http.StatusNotFound, map[string]any{"error": "not found"})
}
