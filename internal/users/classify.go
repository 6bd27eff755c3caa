package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const contentTypeJSON = "application/json"

// Request is a single inbound invocation of a user handler
type Request struct {
	PathParameters map[string]string
	Body           string
}

// PathParameter returns the named path parameter, or "" when absent
func (r *Request) PathParameter(name string) string {
	if r == nil || r.PathParameters == nil {
		return ""
	}
	return r.PathParameters[name]
}

// Response is the result of a user handler
type Response struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       string            `json:"body"`
}

// jsonResponse marshals body and wraps it in a response with the JSON content type
func jsonResponse(statusCode int, body any) (*Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response body: %w", err)
	}

	return &Response{
		StatusCode: statusCode,
		Headers:    map[string]string{"content-type": contentTypeJSON},
		Body:       string(data),
	}, nil
}

// HandleError maps a handler failure to its response.
// Errors that are not one of the known kinds are returned unchanged so the
// caller can surface them as a server error.
func HandleError(err error) (*Response, error) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		messages := validationErr.Errors
		if messages == nil {
			messages = []string{}
		}
		return jsonResponse(http.StatusBadRequest, map[string]any{"errors": messages})
	}

	var malformedErr *MalformedInputError
	if errors.As(err, &malformedErr) {
		return jsonResponse(http.StatusBadRequest, map[string]any{"error": malformedErr.Error()})
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return jsonResponse(httpErr.StatusCode, httpErr.Body)
	}

	return nil, err
}
