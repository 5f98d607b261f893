// Package errors provides error code definitions shared across ScanBench.
package errors

import "fmt"

// ErrorCode represents a unique error code surfaced to the control UI.
type ErrorCode string

const (
	// General errors
	ErrInternal   ErrorCode = "INTERNAL_ERROR"
	ErrInvalid    ErrorCode = "INVALID_INPUT"
	ErrNotFound   ErrorCode = "NOT_FOUND"
	ErrValidation ErrorCode = "VALIDATION_ERROR"

	// Encoding errors
	ErrMissingGoodsID     ErrorCode = "MISSING_GOODS_ID"
	ErrInvalidProductType ErrorCode = "INVALID_PRODUCT_TYPE"
	ErrInvalidPrefix      ErrorCode = "INVALID_PREFIX"
	ErrUnknownTemplate    ErrorCode = "UNKNOWN_TEMPLATE"
	ErrUnknownFieldConfig ErrorCode = "UNKNOWN_FIELD_CONFIG"
	ErrEncodingSkipped    ErrorCode = "ENCODING_SKIPPED"

	// Mutation errors
	ErrUnknownMutation ErrorCode = "UNKNOWN_MUTATION"

	// Rotation errors
	ErrNothingSelected ErrorCode = "NOTHING_SELECTED"
	ErrNoSession       ErrorCode = "NO_SESSION"
	ErrRenderFailed    ErrorCode = "RENDER_FAILED"

	// Catalog errors
	ErrDatabase       ErrorCode = "DATABASE_ERROR"
	ErrItemNotFound   ErrorCode = "ITEM_NOT_FOUND"
	ErrFolderNotFound ErrorCode = "FOLDER_NOT_FOUND"
)

// AppError represents an application error with code and message.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an error code.
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Is checks if an error is of a specific code.
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// CodeOf returns the error code of err, or ErrInternal for plain errors.
func CodeOf(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return ErrInternal
}
