package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBody() map[string]any {
	return map[string]any{
		"firstName":     "Ada",
		"middleInitial": "K",
		"lastName":      "Lovelace",
		"gender":        "female",
		"email":         "ada@example.com",
		"phoneNumber":   "555-0100",
	}
}

func TestValidateUserInput(t *testing.T) {
	t.Run("ValidBody", func(t *testing.T) {
		input, err := ValidateUserInput(validBody())
		require.NoError(t, err)
		assert.Equal(t, &UserInput{
			FirstName:     "Ada",
			MiddleInitial: "K",
			LastName:      "Lovelace",
			Gender:        "female",
			Email:         "ada@example.com",
			PhoneNumber:   "555-0100",
		}, input)
	})

	t.Run("EmailIsNotFormatChecked", func(t *testing.T) {
		body := validBody()
		body["email"] = "not an email"

		input, err := ValidateUserInput(body)
		require.NoError(t, err)
		assert.Equal(t, "not an email", input.Email)
	})

	t.Run("EachMissingFieldIsReported", func(t *testing.T) {
		for _, field := range requiredFields {
			t.Run(field, func(t *testing.T) {
				body := validBody()
				delete(body, field)

				_, err := ValidateUserInput(body)
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, []string{field + " is a required field"}, validationErr.Errors)
			})
		}
	})

	t.Run("AllViolationsReportedInFieldOrder", func(t *testing.T) {
		body := map[string]any{
			"middleInitial": "",
			"gender":        42,
			"email":         nil,
		}

		_, err := ValidateUserInput(body)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, []string{
			"firstName is a required field",
			"middleInitial is a required field",
			"lastName is a required field",
			"gender must be a string",
			"email is a required field",
			"phoneNumber is a required field",
		}, validationErr.Errors)
	})

	t.Run("NonObjectBody", func(t *testing.T) {
		for name, body := range map[string]any{
			"null":   nil,
			"array":  []any{"a"},
			"string": "user",
			"number": 3.0,
		} {
			t.Run(name, func(t *testing.T) {
				_, err := ValidateUserInput(body)
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, []string{"body must be a JSON object"}, validationErr.Errors)
			})
		}
	})

	t.Run("UnknownFieldsAreIgnored", func(t *testing.T) {
		body := validBody()
		body["userID"] = "client-chosen"
		body["nickname"] = "countess"

		input, err := ValidateUserInput(body)
		require.NoError(t, err)
		assert.Equal(t, "Ada", input.FirstName)
	})
}
