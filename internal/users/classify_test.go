package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	t.Run("ValidationError", func(t *testing.T) {
		resp, err := HandleError(NewValidationError([]string{"firstName is a required field", "email is a required field"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Headers["content-type"])
		assert.JSONEq(t, `{"errors":["firstName is a required field","email is a required field"]}`, resp.Body)
	})

	t.Run("MalformedInput", func(t *testing.T) {
		var decoded any
		parseErr := json.Unmarshal([]byte(`{"firstName":`), &decoded)
		require.Error(t, parseErr)

		resp, err := HandleError(NewMalformedInputError(parseErr))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
		assert.Equal(t, `invalid request body format : "unexpected end of JSON input"`, body["error"])
	})

	t.Run("NotFound", func(t *testing.T) {
		resp, err := HandleError(NewNotFoundError())
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, `{"error":"not found"}`, resp.Body)
	})

	t.Run("ExplicitStatusError", func(t *testing.T) {
		resp, err := HandleError(NewHTTPError(http.StatusConflict, map[string]any{"error": "conflict"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.JSONEq(t, `{"error":"conflict"}`, resp.Body)
	})

	t.Run("WrappedErrorKeepsItsKind", func(t *testing.T) {
		resp, err := HandleError(fmt.Errorf("lookup: %w", NewNotFoundError()))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("UnexpectedErrorIsReturned", func(t *testing.T) {
		boom := errors.New("connection reset")

		resp, err := HandleError(boom)
		assert.Nil(t, resp)
		assert.Same(t, boom, err)
	})
}
