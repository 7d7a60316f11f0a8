package usecase

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// isEmail applies the same rule as the request validator's email tag.
func isEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}
