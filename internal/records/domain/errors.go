package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrRecordNotFound       = errors.New("record not found")
	ErrEntityNotFound       = errors.New("entity not found")
	ErrDuplicateID          = errors.New("duplicate record id")
	ErrDuplicateColumnID    = errors.New("duplicate column id")
	ErrDuplicateFieldName   = errors.New("duplicate field name")
	ErrFieldNameRequired    = errors.New("field name is required")
	ErrSelectWithoutOptions = errors.New("select field requires at least one option")
	ErrUnknownFieldType     = errors.New("unknown field type")
	ErrIDExhausted          = errors.New("unable to allocate a unique id")
)

// FieldErrors holds validation messages keyed by field name.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

func (fe FieldErrors) Merge(other FieldErrors) {
	for field, messages := range other {
		for _, m := range messages {
			if !containsString(fe[field], m) {
				fe.Add(field, m)
			}
		}
	}
}

func (fe FieldErrors) HasErrors() bool {
	return len(fe) > 0
}

func (fe FieldErrors) Fields() []string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type ValidationError struct {
	Fields FieldErrors
}

func NewValidationError(fields FieldErrors) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], ", ")))
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
