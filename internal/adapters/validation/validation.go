// Package validation holds the fragment field rules shared by every
// adapter that accepts fragment data from outside the core: the edit form
// and seed files. Both report failures with the same messages.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/fragments-cli/internal/core/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("fragmenttype", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseFragmentType(fl.Field().String())
		return err == nil
	})
	return v
}

// Struct checks v against its `validate` tags. The "fragmenttype" tag
// accepts any name domain.ParseFragmentType does. Failures wrap
// ErrInvalidInput, or ErrUnsupportedType when the type is unknown, and
// list every failing field in one message.
func Struct(v any) error {
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError turns validator errors into one readable message.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	sentinel := domain.ErrInvalidInput
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		if e.Tag() == "fragmenttype" {
			sentinel = domain.ErrUnsupportedType
		}
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("%w: %s", sentinel, strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "fragmenttype":
		names := make([]string, 0, len(domain.FragmentTypes()))
		for _, t := range domain.FragmentTypes() {
			names = append(names, t.String())
		}
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(names, ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
