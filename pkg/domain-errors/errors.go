// Package domainerrors defines coded errors returned by services. Handlers translate
// the code into an HTTP status; stores never return these directly (see sentinel).
package domainerrors

import (
	"errors"
	"fmt"
	"sort"
)

// Code classifies a domain error for transport mapping.
type Code string

const (
	CodeBadRequest         Code = "bad_request"
	CodeValidation         Code = "validation_error"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeUnauthorized       Code = "unauthorized"
	CodeInvariantViolation Code = "invariant_violation"
	CodeTimeout            Code = "timeout"
	CodeInternal           Code = "internal_error"
)

// FieldError is a single field-level validation message.
type FieldError struct {
	Field   string
	Message string
}

// Error carries a code, a client-safe message, optional field errors and the cause.
type Error struct {
	Code    Code
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// FieldMap flattens field errors for JSON responses. Multiple messages on the same
// field are joined in declaration order.
func (e *Error) FieldMap() map[string]string {
	if len(e.Fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if existing, ok := out[f.Field]; ok {
			out[f.Field] = existing + "; " + f.Message
			continue
		}
		out[f.Field] = f.Message
	}
	return out
}

// New creates a coded error.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

// NewValidation creates a validation error carrying field-level messages.
func NewValidation(msg string, fields ...FieldError) *Error {
	return &Error{Code: CodeValidation, Message: msg, Fields: fields}
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf returns the code of the first domain error in the chain, or CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// Fields returns the field errors attached to the first domain error in the chain.
func Fields(err error) []FieldError {
	var de *Error
	if errors.As(err, &de) {
		return de.Fields
	}
	return nil
}

// Collector accumulates field errors so request validation can report every
// failing field in one response.
type Collector struct {
	fields []FieldError
}

// Add records a field error.
func (c *Collector) Add(field, message string) {
	c.fields = append(c.fields, FieldError{Field: field, Message: message})
}

// Check records a field error when cond is false.
func (c *Collector) Check(cond bool, field, message string) {
	if !cond {
		c.Add(field, message)
	}
}

// Err returns a validation error if anything was collected, else nil.
func (c *Collector) Err(msg string) error {
	if len(c.fields) == 0 {
		return nil
	}
	return NewValidation(msg, c.fields...)
}

// SortedFieldNames returns the distinct field names of a validation error.
func SortedFieldNames(err error) []string {
	seen := map[string]struct{}{}
	for _, f := range Fields(err) {
		seen[f.Field] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
