package service

import (
	"fmt"
	"taskPlanner/internal/datetime"
)

const (
	CodeMissingParameter = "MISSING_MANDATORY_PARAMETER"
	CodeInvalidDateTime  = "INVALID_DATETIME_FORMAT"
	CodeValidation       = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodePermissionDenied = "PERMISSION_DENIED"
)

// Sentinels for errors.Is, matching is done on Code.
var (
	ErrMissingMandatoryParameter = &BusinessError{Code: CodeMissingParameter}
	ErrInvalidDateTimeFormat     = &BusinessError{Code: CodeInvalidDateTime}
	ErrValidation                = &BusinessError{Code: CodeValidation}
	ErrNotFound                  = &BusinessError{Code: CodeNotFound}
	ErrPermissionDenied          = &BusinessError{Code: CodePermissionDenied}
)

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

type Detail struct {
	Key     string
	Payload any
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Is(target error) bool {
	t, ok := target.(*BusinessError)
	return ok && t.Code == b.Code
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func ToDetail(key string, payload any) Detail {
	return Detail{
		Key:     key,
		Payload: payload,
	}
}

func NewBusinessError(code string, message string, details ...Detail) *BusinessError {
	busErr := &BusinessError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
	}

	for _, detail := range details {
		busErr.Details[detail.Key] = detail.Payload
	}

	return busErr
}

func NewMissingMandatoryParameter() *BusinessError {
	return NewBusinessError(CodeMissingParameter, "Missing mandatory parameters.",
		ToDetail("required", []string{KeyTitle, KeyDescription, KeyStartDate, KeyDueDate}))
}

func NewInvalidDateTimeFormat(field string, err error) *BusinessError {
	busErr := NewBusinessError(CodeInvalidDateTime,
		fmt.Sprintf("Invalid DateTime format. Expected format is '%s'", datetime.Pattern),
		ToDetail("field", field),
		ToDetail("expected", datetime.Pattern),
	)
	busErr.Err = err
	return busErr
}

func NewNotFound(resource string, id string) *BusinessError {
	return NewBusinessError(CodeNotFound,
		fmt.Sprintf("The requested %s is not found.", resource),
		ToDetail("resource", resource),
		ToDetail("id", id),
	)
}

func NewPermissionDenied(resource string, id string) *BusinessError {
	return NewBusinessError(CodePermissionDenied,
		fmt.Sprintf("Access denied for the requested %s.", resource),
		ToDetail("resource", resource),
		ToDetail("id", id),
	)
}

func NewValidationError(field, reason string) *BusinessError {
	return NewBusinessError(CodeValidation,
		fmt.Sprintf("Invalid value of field '%s': %s", field, reason),
		ToDetail("field", field),
		ToDetail("reason", reason),
	)
}

// StoreFailure wraps an unexpected persistence error. The cause is for logs
// only, clients get a generic message.
type StoreFailure struct {
	Op  string
	Err error
}

func (e *StoreFailure) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
}

func (e *StoreFailure) Unwrap() error {
	return e.Err
}
