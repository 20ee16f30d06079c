package validation

import (
	"fmt"
	"strings"

	"github.com/biduedson/reservas-api/errors"
)

// Reason codes produced by the programmatic checks.
const (
	ReasonRequired = "required"
	ReasonEmail    = "email"
)

// Validator collects field errors.
type Validator struct {
	fields []errors.FieldError
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{}
}

// AddError adds a field error.
func (v *Validator) AddError(field, reason string) {
	v.fields = append(v.fields, errors.FieldError{Field: field, Reason: reason})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.fields) > 0
}

// Errors returns all collected field errors.
func (v *Validator) Errors() []errors.FieldError {
	return v.fields
}

// Validate returns a ValidationFailed AppError if any check failed, nil otherwise.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}
	return errors.ValidationFailed(v.fields...)
}

// Required checks that a string is non-blank.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, ReasonRequired)
	}
	return v
}

// MinLength checks that a non-empty string has at least minLen characters.
func (v *Validator) MinLength(field, value string, minLen int) *Validator {
	if value != "" && len([]rune(value)) < minLen {
		v.AddError(field, fmt.Sprintf("min=%d", minLen))
	}
	return v
}

// MaxBytes checks that a string is at most maxBytes long in UTF-8.
// A non-positive maxBytes disables the check.
func (v *Validator) MaxBytes(field, value string, maxBytes int) *Validator {
	if maxBytes > 0 && len(value) > maxBytes {
		v.AddError(field, fmt.Sprintf("max=%d", maxBytes))
	}
	return v
}

// Email checks that a non-empty string is a valid email address.
func (v *Validator) Email(field, value string) *Validator {
	if value == "" {
		return v
	}
	if err := getValidator().Var(value, "email"); err != nil {
		v.AddError(field, ReasonEmail)
	}
	return v
}

// Custom adds reason for field unless condition holds.
func (v *Validator) Custom(condition bool, field, reason string) *Validator {
	if !condition {
		v.AddError(field, reason)
	}
	return v
}

// Merge appends the field errors of a ValidationFailed error.
func (v *Validator) Merge(err error) *Validator {
	if appErr, ok := errors.AsAppError(err); ok && appErr.Code == errors.ErrCodeValidationFailed {
		v.fields = append(v.fields, appErr.Fields...)
	}
	return v
}
