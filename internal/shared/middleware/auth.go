package middleware

import (
	"context"
	"errors"
	"strings"

	"library-catalog/internal/shared/apperror"
	"library-catalog/internal/shared/auth"
	"library-catalog/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// SessionVerifier là phần của identity provider mà middleware cần
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Caller, error)
}

// SessionAuth - Middleware xác thực session token (Authorization: Bearer <token>)
func SessionAuth(verifier SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ Authorization header
		token, err := BearerToken(c)
		if err != nil {
			response.Unauthorized(c, err.Error())
			c.Abort()
			return
		}

		// 2. Verify với identity provider
		caller, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, apperror.ErrUnauthorized) {
				response.Unauthorized(c, "invalid or expired session")
			} else {
				response.FromError(c, err)
			}
			c.Abort()
			return
		}

		// 3. Gắn caller vào request context, service đọc từ đây
		c.Set("userID", caller.UserID)
		c.Request = c.Request.WithContext(auth.WithCaller(c.Request.Context(), caller))

		c.Next()
	}
}

var (
	errMissingAuthHeader = errors.New("missing authorization header")
	errInvalidAuthHeader = errors.New("invalid authorization header format")
)

// BearerToken extract token từ "Bearer <token>"
func BearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errMissingAuthHeader
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errInvalidAuthHeader
	}
	return parts[1], nil
}
