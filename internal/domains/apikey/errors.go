package apikey

import (
	"fmt"

	"library-catalog/internal/shared/apperror"
)

var (
	// Rejected: request không có api_key
	ErrAPIKeyMissing = fmt.Errorf("api key required: %w", apperror.ErrUnauthorized)
	// Rejected: key không nằm trong bảng api_key
	ErrAPIKeyInvalid = fmt.Errorf("invalid api key: %w", apperror.ErrUnauthorized)

	ErrAPIKeyExists   = fmt.Errorf("api key for this email %w", apperror.ErrConflict)
	ErrAPIKeyNotFound = fmt.Errorf("api key for this email %w", apperror.ErrNotFound)
	ErrInvalidEmail   = fmt.Errorf("invalid email: %w", apperror.ErrValidation)
)
