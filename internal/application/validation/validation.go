// Package validation wraps struct-tag based input validation for usecases.
// Every usecase validates its input before computing anything: validation
// failures fail closed, no partial computation happens.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Struct validates the given input struct against its `validate` tags.
// The returned error names the offending fields and constraints.
func Struct(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	parts := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		parts = append(parts, fmt.Sprintf("%s (%s)", fieldError.Field(), fieldError.Tag()))
	}
	return fmt.Errorf("invalid fields %s: %w", strings.Join(parts, ", "), validationErrors)
}

// FieldErrors flattens validation failures into a field to constraint map,
// for API error payloads.
func FieldErrors(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields[fieldError.Field()] = fieldError.Tag()
	}
	return fields
}
