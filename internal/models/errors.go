// internal/models/errors.go
package models

import (
	"errors"
	"fmt"

	"github.com/javajoker/storefront-catalog/internal/ordering"
	"github.com/javajoker/storefront-catalog/internal/utils"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrIntegrity  = errors.New("integrity violation")
	ErrNotFound   = errors.New("not found")
)

// ValidationError is a rejected write. It matches ErrValidation.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func NewValidationError(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IntegrityError wraps ErrIntegrity with a description.
func IntegrityError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrIntegrity, fmt.Sprintf(format, args...))
}

func validateFields(v interface{}) error {
	err := utils.ValidateStruct(v)
	if err == nil {
		return nil
	}
	if details := utils.GetValidationErrors(err); len(details) > 0 {
		return &ValidationError{Field: details[0].Field, Message: details[0].Message}
	}
	return &ValidationError{Message: err.Error()}
}

func orderingError(err error, groupField string) error {
	switch {
	case errors.Is(err, ordering.ErrDuplicateOrder):
		return &ValidationError{Field: "order", Message: "Duplicate value."}
	case errors.Is(err, ordering.ErrMissingGroup):
		return &ValidationError{Field: groupField, Message: groupField + " is required"}
	default:
		return err
	}
}
