package model

import (
	"fmt"

	"library-catalog/internal/shared/apperror"
)

var (
	ErrBookNotFound   = fmt.Errorf("book %w", apperror.ErrNotFound)
	ErrInvalidBookID  = fmt.Errorf("invalid book id: %w", apperror.ErrValidation)
	ErrInvalidSlug    = fmt.Errorf("invalid book slug: %w", apperror.ErrValidation)
	ErrSessionMissing = fmt.Errorf("valid session required: %w", apperror.ErrUnauthorized)
	ErrCoverTooLarge  = fmt.Errorf("cover image too large: %w", apperror.ErrValidation)
	ErrNoCover        = fmt.Errorf("book cover %w", apperror.ErrNotFound)
)
