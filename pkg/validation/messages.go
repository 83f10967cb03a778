package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CustomMessage returns field-specific overrides for validation messages
func CustomMessage(field string) map[string]string {
	var customValidationMessages = map[string]map[string]string{
		"Email": {
			"required": "email is required",
			"email":    "email is not a valid address",
		},
		"Mobile": {
			"required": "mobile number is required",
			"min":      "mobile number is too short",
			"max":      "mobile number is too long",
		},
		"Password": {
			"required": "password is required",
			"min":      "password must be at least 8 characters",
		},
		"NewPassword": {
			"required": "new password is required",
			"min":      "new password must be at least 8 characters",
		},
		"Name": {
			"required": "name is required",
		},
		"Role": {
			"required": "role is required",
			"oneof":    "role must be student, teacher or worker",
		},
		"OTP": {
			"required": "otp is required",
		},
		"Token": {
			"required": "reset token is required",
		},
	}
	return customValidationMessages[field]
}

// DefaultMessage builds a generic message for a validation tag
func DefaultMessage(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s is not a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// Translate converts a gin binding error into a per-field message map.
// Non-validator errors (malformed JSON) collapse into a single body message.
func Translate(err error) map[string]string {
	result := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		result["body"] = "request body is malformed"
		return result
	}

	for _, fe := range verrs {
		if custom := CustomMessage(fe.Field()); custom != nil {
			if msg, ok := custom[fe.Tag()]; ok {
				result[fe.Field()] = msg
				continue
			}
		}
		result[fe.Field()] = DefaultMessage(fe.Field(), fe.Tag(), fe.Param())
	}

	return result
}
