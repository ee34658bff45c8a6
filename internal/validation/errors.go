// Package validation holds the field rules for aircraft, flights and
// reservations. Every rule is a pure function: anything it needs from the
// store (counts, whether a value is taken) is passed in by the caller.
package validation

import (
	"fmt"
	"strings"
)

const (
	MsgRequired = "This field is required."
	MsgBoolean  = "Must be a valid boolean."
	MsgInvalid  = "Invalid value."
)

// FieldError rejects a single field with a human-readable reason.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func reject(field, format string, args ...any) *FieldError {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Errors collects field errors in the order they were found.
type Errors []FieldError

// Add appends err, ignoring nil so rule results can be passed straight in.
func (es *Errors) Add(err *FieldError) {
	if err == nil {
		return
	}
	*es = append(*es, *err)
}

// Has reports whether field already has an error.
func (es Errors) Has(field string) bool {
	for _, e := range es {
		if e.Field == field {
			return true
		}
	}
	return false
}

// ByField groups messages by field name for API responses.
func (es Errors) ByField() map[string][]string {
	out := make(map[string][]string, len(es))
	for _, e := range es {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}

func (es Errors) Error() string {
	parts := make([]string, 0, len(es))
	for _, e := range es {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

// Err returns nil when no errors were collected.
func (es Errors) Err() error {
	if len(es) == 0 {
		return nil
	}
	return es
}

// Required rejects an absent or blank value.
func Required(field string, present bool) *FieldError {
	if !present {
		return &FieldError{Field: field, Message: MsgRequired}
	}
	return nil
}

func maxLength(field, value string, max int) *FieldError {
	if strings.TrimSpace(value) == "" {
		return &FieldError{Field: field, Message: MsgRequired}
	}
	if len([]rune(value)) > max {
		return reject(field, "Ensure this field has no more than %d characters.", max)
	}
	return nil
}
