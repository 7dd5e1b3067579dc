package apperror

import (
	"errors"
	"fmt"
)

// Error kinds. Domain errors wrap one of these so handlers can map them
// with errors.Is without knowing every domain sentinel.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrConflict        = errors.New("already exists")
	ErrExternalService = errors.New("external service error")
)

// ValidationError wraps field errors (thường là validation.Errors của ozzo).
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, e.Err}
}

// Validation trả về nil khi err nil, để dùng trực tiếp với Validate().
func Validation(err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Err: err}
}

// ExternalServiceError là lỗi từ auth provider hoặc object storage.
// Cause chỉ dùng cho log, không bao giờ trả về client.
type ExternalServiceError struct {
	Service string
	Op      string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Service, e.Op, e.Err)
}

func (e *ExternalServiceError) Unwrap() []error {
	return []error{ErrExternalService, e.Err}
}

// External wraps err as an ExternalServiceError for service/op.
func External(service, op string, err error) error {
	if err == nil {
		return nil
	}
	return &ExternalServiceError{Service: service, Op: op, Err: err}
}
