package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerCustomValidations adds domain-specific binding validations to gin's
// validator engine. Must run before any route binds a request.
func registerCustomValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency", validCurrencyCode)
	}
}

// validCurrencyCode accepts ISO 4217 style codes: exactly three uppercase
// ASCII letters. The currency lock compares codes byte for byte, so the
// boundary normalizes nothing.
func validCurrencyCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}
