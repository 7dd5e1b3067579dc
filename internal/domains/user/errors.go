package user

import (
	"fmt"

	"library-catalog/internal/shared/apperror"
)

// LoginFailedMessage là thông báo chung khi đăng nhập thất bại
const LoginFailedMessage = "Oops! Please check the email address or password you entered and try again."

var (
	ErrUserNotFound       = fmt.Errorf("user %w", apperror.ErrNotFound)
	ErrEmailAlreadyExists = fmt.Errorf("email %w", apperror.ErrConflict)

	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", apperror.ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("invalid or expired session: %w", apperror.ErrUnauthorized)
	ErrSessionRevoked     = fmt.Errorf("session has been signed out: %w", apperror.ErrUnauthorized)

	ErrPasswordMismatch = fmt.Errorf("passwords do not match: %w", apperror.ErrValidation)
)
