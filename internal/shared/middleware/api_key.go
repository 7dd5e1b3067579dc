package middleware

import (
	"errors"
	"net/http"

	"library-catalog/internal/domains/apikey"
	"library-catalog/internal/shared/auth"
	"library-catalog/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// APIKey - Middleware metering cho JSON API, key lấy từ query ?api_key=
func APIKey(svc apikey.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := svc.Authorize(c.Request.Context(), c.Query("api_key"))
		if err != nil {
			switch {
			case errors.Is(err, apikey.ErrAPIKeyMissing):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "api key required"})
			case errors.Is(err, apikey.ErrAPIKeyInvalid):
				log.Warn().Str("request_id", c.GetString("request_id")).Msg("rejected unknown api key")
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
			default:
				_ = c.Error(err)
				status, _ := response.StatusFor(err)
				c.JSON(status, gin.H{"error": response.ClientMessage(err)})
			}
			c.Abort()
			return
		}

		c.Set("api_key_email", key.Email)
		c.Request = c.Request.WithContext(auth.WithCaller(c.Request.Context(), &auth.Caller{
			Email: key.Email,
		}))

		c.Next()
	}
}
