package indexkit

import (
	"fmt"
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeDecode     ErrorType = "decode"
	ErrorTypeSchema     ErrorType = "schema"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeStorage    ErrorType = "storage"
	ErrorTypeInternal   ErrorType = "internal"
)

// Error codes used across the module.
const (
	ErrCodeKindConflict     = "KIND_CONFLICT"
	ErrCodeUnknownFieldType = "UNKNOWN_FIELD_TYPE"
	ErrCodeMalformedInteger = "MALFORMED_INTEGER"
	ErrCodeMalformedFloat   = "MALFORMED_FLOAT"
	ErrCodeMalformedTime    = "MALFORMED_TIMESTAMP"
	ErrCodeWriteOnlyField   = "WRITE_ONLY_FIELD"
	ErrCodeSchemaNotFound   = "SCHEMA_NOT_FOUND"
	ErrCodeSchemaInvalid    = "SCHEMA_INVALID"
	ErrCodeDocNotFound      = "DOC_NOT_FOUND"
	ErrCodeStorageFailure   = "STORAGE_FAILURE"
)

// Error represents unified errors from the indexkit module
type Error struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Cause   error     `json:"-"`
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s:%s] field '%s': %s", e.Type, e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithField attaches the field name the error relates to
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

// NewValidationError creates a validation error
func NewValidationError(code, message string) *Error {
	return &Error{Type: ErrorTypeValidation, Code: code, Message: message}
}

// NewDecodeError creates a decode error wrapping the underlying parse failure
func NewDecodeError(code, message string, cause error) *Error {
	return &Error{Type: ErrorTypeDecode, Code: code, Message: message, Cause: cause}
}

// NewSchemaError creates a schema error
func NewSchemaError(code, message string) *Error {
	return &Error{Type: ErrorTypeSchema, Code: code, Message: message}
}

// NewNotFoundError creates a not-found error
func NewNotFoundError(code, message string) *Error {
	return &Error{Type: ErrorTypeNotFound, Code: code, Message: message}
}

// NewStorageError creates a storage error wrapping the underlying cause
func NewStorageError(code, message string, cause error) *Error {
	return &Error{Type: ErrorTypeStorage, Code: code, Message: message, Cause: cause}
}
