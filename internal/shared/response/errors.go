package response

import (
	"errors"
	"net/http"

	"library-catalog/internal/shared/apperror"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RetryPrompt là message chung khi auth provider hoặc storage lỗi.
// Nguyên nhân gốc chỉ nằm trong log.
const RetryPrompt = "Oops! Something went wrong on our side. Please try again in a moment."

var errorKindMap = []struct {
	Kind   error
	Status int
	Title  string
}{
	{apperror.ErrValidation, http.StatusBadRequest, "Validation failed"},
	{apperror.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	{apperror.ErrNotFound, http.StatusNotFound, "Not found"},
	{apperror.ErrConflict, http.StatusConflict, "Conflict"},
	{apperror.ErrExternalService, http.StatusBadGateway, "Service unavailable"},
}

// StatusFor map error kind sang HTTP status + title. Lỗi lạ → 500.
func StatusFor(err error) (int, string) {
	for _, e := range errorKindMap {
		if errors.Is(err, e.Kind) {
			return e.Status, e.Title
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

// ClientMessage là phần an toàn để trả về client
func ClientMessage(err error) interface{} {
	status, _ := StatusFor(err)
	switch status {
	case http.StatusBadRequest:
		if fields := ValidationFields(err); fields != nil {
			return fields
		}
		return err.Error()
	case http.StatusBadGateway:
		return RetryPrompt
	case http.StatusInternalServerError:
		return "Internal server error"
	default:
		return err.Error()
	}
}

// ValidationFields trả về map field → message nếu err chứa validation.Errors
func ValidationFields(err error) map[string]string {
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return nil
	}
	out := make(map[string]string, len(fieldErrs))
	for field, fe := range fieldErrs {
		if fe != nil {
			out[field] = fe.Error()
		}
	}
	return out
}

// FromError gửi envelope lỗi theo error kind, log lỗi 5xx
func FromError(c *gin.Context, err error) {
	status, title := StatusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString("request_id")).
			Msg("request failed")
	}
	Error(c, status, title, ClientMessage(err))
}
