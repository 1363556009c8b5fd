package validation

import (
	"fmt"
	"strings"

	"github.com/kbukum/scenariokit/errors"
	"github.com/kbukum/scenariokit/naming"
)

// Validator collects validation errors.
type Validator struct {
	errors []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// String formats the error as "field: message".
func (e FieldError) String() string { return e.Field + ": " + e.Message }

// New creates a new Validator.
func New() *Validator {
	return &Validator{
		errors: make([]FieldError, 0),
	}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns an AppError if there are validation errors, nil otherwise.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}

	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = e.String()
	}

	appErr := errors.Validation(strings.Join(messages, "; "))
	appErr.Details = map[string]any{
		"fields": v.errors,
	}
	return appErr
}

// Error is Validate returned as a plain error, so a clean Validator yields
// a nil interface.
func (v *Validator) Error() error {
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// Merge folds the field errors of err into v, prefixing each field with
// prefix. Errors that carry no field details are recorded under prefix.
func (v *Validator) Merge(prefix string, err error) *Validator {
	if err == nil {
		return v
	}
	appErr, ok := errors.AsAppError(err)
	if ok {
		if fields, ok := appErr.Details["fields"].([]FieldError); ok {
			for _, f := range fields {
				v.AddError(joinField(prefix, f.Field), f.Message)
			}
			return v
		}
		if field, ok := appErr.Details["field"].(string); ok {
			v.AddError(joinField(prefix, field), appErr.Message)
			return v
		}
		v.AddError(prefix, appErr.Message)
		return v
	}
	v.AddError(prefix, err.Error())
	return v
}

func joinField(prefix, field string) string {
	switch {
	case prefix == "":
		return field
	case field == "":
		return prefix
	}
	return prefix + "." + field
}

// Required checks if a string is non-empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// ProtectedName checks that value keeps at least one character once
// protected.
func (v *Validator) ProtectedName(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
		return v
	}
	if naming.Protect(value) == "" {
		v.AddError(field, "must contain at least one letter or digit")
	}
	return v
}

// Unique checks that no two names collide after protection.
func (v *Validator) Unique(field string, names []string) *Validator {
	seen := make(map[string]string, len(names))
	for _, name := range names {
		key := naming.Protect(name)
		if key == "" {
			continue
		}
		if first, dup := seen[key]; dup {
			v.AddError(field, fmt.Sprintf("%q and %q both resolve to %q", first, name, key))
			continue
		}
		seen[key] = name
	}
	return v
}

// OneOf checks if a value is one of the allowed values.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.AddError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom applies a custom validation condition.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}

// Required validates a single required field and returns an error if empty.
func Required(field, value string) error {
	return New().Required(field, value).Error()
}
