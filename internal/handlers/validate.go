package handlers

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validationMessage flattens the first field error into a human-readable
// message for the 400 response.
func validationMessage(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		e := errs[0]
		switch e.Tag() {
		case "required":
			return e.Field() + " is required"
		case "email":
			return e.Field() + " must be a valid email address"
		case "min":
			return e.Field() + " is too short"
		case "max":
			return e.Field() + " is too long"
		case "oneof":
			return e.Field() + " must be one of: " + e.Param()
		}
		return e.Field() + " is invalid"
	}
	return "Invalid request"
}
