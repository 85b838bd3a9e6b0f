package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/velotrack/velotrack_backend/internal/utils"
)

// ValidatePhone backs the "phone" binding tag.
func ValidatePhone(fl validator.FieldLevel) bool {
	return utils.IsValidPhone(fl.Field().String())
}

// RegisterValidators installs the custom tags on v.
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("phone", ValidatePhone)
}
