package http

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"atelier/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// RequestValidator plugs validator/v10 struct tags into echo's Context.Validate.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

func (v *RequestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		return err
	}

	fields := make(map[string]string, len(failures))
	for _, fe := range failures {
		fields[fe.Field()] = fe.Tag()
	}
	return &validationError{fields: fields}
}

// validationError is a ValueIsInvalid error carrying the failed rule per field.
type validationError struct {
	fields map[string]string
}

func (e *validationError) Error() string {
	names := make([]string, 0, len(e.fields))
	for name, tag := range e.fields {
		names = append(names, fmt.Sprintf("%s (%s)", name, tag))
	}
	sort.Strings(names)
	return fmt.Sprintf("%s: %s", errs.ErrValueIsInvalid, strings.Join(names, ", "))
}

func (e *validationError) Unwrap() error {
	return errs.ErrValueIsInvalid
}
