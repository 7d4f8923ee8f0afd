package config

import (
	"fmt"
	"strings"

	"github.com/tycho-core/console-app/pkg/logging"
	"github.com/tycho-core/console-app/pkg/schema"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// ValidateOneOf checks if a value is in a list of allowed values
func ValidateOneOf(field, value string, allowed []string) error {
	for _, allowedValue := range allowed {
		if value == allowedValue {
			return nil
		}
	}
	return ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// Validate checks a loaded configuration.
func Validate(cfg ToolConfig) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(cfg.Vendor) == "" {
		errs.Add("vendor", "is required", cfg.Vendor)
	} else if strings.ContainsAny(cfg.Vendor, `/\`) {
		errs.Add("vendor", "must not contain path separators", cfg.Vendor)
	}

	if _, err := logging.ParseLogLevel(cfg.LogLevel); err != nil {
		errs.Add("logLevel", err.Error(), cfg.LogLevel)
	}

	if _, ok := schema.ParsePolicy(cfg.Policy); !ok {
		errs.Add("policy", "must be one of: override, fallback", cfg.Policy)
	}

	backends := []string{string(StoreBackendFile), string(StoreBackendConfigMap), string(StoreBackendNone)}
	if err := ValidateOneOf("store.backend", string(cfg.Store.Backend), backends); err != nil {
		errs = append(errs, err.(ValidationError))
	}

	return errs
}
