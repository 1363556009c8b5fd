package validation

import (
	stderrors "errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/scenariokit/errors"
	"github.com/kbukum/scenariokit/frequency"
	"github.com/kbukum/scenariokit/naming"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Use yaml tag names so errors name the document keys
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" || name == "" {
				return toSnakeCase(fld.Name)
			}
			return name
		})
		_ = validate.RegisterValidation("name", func(fl validator.FieldLevel) bool {
			return naming.Protect(fl.Field().String()) != ""
		})
		_ = validate.RegisterValidation("frequency", func(fl validator.FieldLevel) bool {
			_, err := frequency.Parse(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// Validate validates a struct using struct tags such as
// `validate:"required,name"`. Failures are returned as an INVALID_INPUT
// AppError whose "fields" detail lists every offending field.
func Validate(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !stderrors.As(err, &validationErrors) {
		return errors.Validation("validation failed").WithCause(err)
	}

	v := New()
	for _, e := range validationErrors {
		v.AddError(fieldPath(e), formatValidationError(e))
	}
	return v.Error()
}

// fieldPath drops the root struct name from the validator namespace.
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "name":
		return "must contain at least one letter or digit"
	case "frequency":
		return "must be one of: " + strings.Join(frequencyNames(), ", ")
	case "min":
		return "must have at least " + e.Param() + " entries"
	case "oneof":
		return "must be one of: " + e.Param()
	case "dive":
		return "has an invalid entry"
	default:
		return "is invalid"
	}
}

func frequencyNames() []string {
	all := frequency.All()
	names := make([]string, len(all))
	for i, f := range all {
		names[i] = f.String()
	}
	return names
}

// toSnakeCase converts a field name to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		if r >= 'A' && r <= 'Z' {
			result.WriteRune(r + 32) // lowercase
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
