package users

import (
	"fmt"
)

// requiredFields lists the user body fields in the order they are checked
var requiredFields = []string{
	"firstName",
	"middleInitial",
	"lastName",
	"gender",
	"email",
	"phoneNumber",
}

// ValidateUserInput checks a decoded request body against the user schema.
// Every field is checked and all violations are reported together.
func ValidateUserInput(body any) (*UserInput, error) {
	obj, ok := body.(map[string]any)
	if !ok {
		return nil, NewValidationError([]string{"body must be a JSON object"})
	}

	values := make(map[string]string, len(requiredFields))
	var messages []string
	for _, field := range requiredFields {
		raw, present := obj[field]
		if !present || raw == nil {
			messages = append(messages, fmt.Sprintf("%s is a required field", field))
			continue
		}

		s, isString := raw.(string)
		if !isString {
			messages = append(messages, fmt.Sprintf("%s must be a string", field))
			continue
		}
		if s == "" {
			messages = append(messages, fmt.Sprintf("%s is a required field", field))
			continue
		}

		values[field] = s
	}

	if len(messages) > 0 {
		return nil, NewValidationError(messages)
	}

	return &UserInput{
		FirstName:     values["firstName"],
		MiddleInitial: values["middleInitial"],
		LastName:      values["lastName"],
		Gender:        values["gender"],
		Email:         values["email"],
		PhoneNumber:   values["phoneNumber"],
	}, nil
}
