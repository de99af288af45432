package config

import (
	"errors"
	"strings"
)

// ErrInvalidParameter is matched by every validation failure.
var ErrInvalidParameter = errors.New("invalid parameter")

// FieldError is one invalid field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + " " + e.Message
}

func (e FieldError) Unwrap() error { return ErrInvalidParameter }

// ValidationErrors collects every invalid field of a plan.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = e.Error()
	}
	return "invalid parameter: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the field errors to errors.Is and errors.As.
func (ve ValidationErrors) Unwrap() []error {
	errs := make([]error, len(ve))
	for i, e := range ve {
		errs[i] = e
	}
	return errs
}

// Fields returns the names of the invalid fields.
func (ve ValidationErrors) Fields() []string {
	fields := make([]string, len(ve))
	for i, e := range ve {
		fields[i] = e.Field
	}
	return fields
}

func (ve *ValidationErrors) add(field, message string) {
	*ve = append(*ve, FieldError{Field: field, Message: message})
}

func (ve ValidationErrors) orNil() error {
	if len(ve) == 0 {
		return nil
	}
	return ve
}
