package invoice

import (
	ierr "github.com/invoiceforge/invoiceforge/internal/errors"
)

// NewValidationError creates a field-scoped validation error
func NewValidationError(field, message string) error {
	return ierr.NewError("invoice validation failed").
		WithHint(message).
		WithReportableDetails(map[string]any{
			"field": field,
		}).
		Mark(ierr.ErrValidation)
}
