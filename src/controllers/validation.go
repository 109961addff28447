package controllers

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validationErrors flattens validator output into field -> reason, the
// shape the dashboard forms expect.
func validationErrors(err error) map[string]string {
	out := map[string]string{}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["body"] = err.Error()
		return out
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			out[field] = "This field is required"
		case "min":
			out[field] = "Must be at least " + fe.Param() + " characters"
		case "gte":
			out[field] = "Must be at least " + fe.Param()
		case "oneof":
			out[field] = "Must be one of: " + fe.Param()
		default:
			out[field] = "Invalid value"
		}
	}
	return out
}
