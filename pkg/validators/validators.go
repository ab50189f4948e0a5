// Package validators adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate on bound request DTOs.
package validators

import (
	"github.com/adrisdev/fotogram/backend/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

// Validator wraps a single validator.Validate instance; it caches struct
// metadata and is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate checks struct tags and reports failures as a ValidationError
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return apperrors.Validation(err.Error())
	}
	return nil
}
