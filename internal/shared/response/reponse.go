package response

import (
	"github.com/gin-gonic/gin"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody là phần "error" của envelope
type ErrorBody struct {
	Title   string      `json:"title"`
	Details interface{} `json:"details,omitempty"`
}

// Success gửi envelope thành công kèm message và data
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error gửi envelope lỗi. details có thể là string, error hoặc map field → lỗi
func Error(c *gin.Context, statusCode int, title string, details interface{}) {
	if err, ok := details.(error); ok {
		details = err.Error()
	}
	c.JSON(statusCode, Response{
		Success: false,
		Error: &ErrorBody{
			Title:   title,
			Details: details,
		},
	})
}

// Common error responses
func BadRequest(c *gin.Context, details interface{}) {
	Error(c, 400, "Bad request", details)
}

func Unauthorized(c *gin.Context, details interface{}) {
	Error(c, 401, "Unauthorized", details)
}

func NotFound(c *gin.Context, details interface{}) {
	Error(c, 404, "Not found", details)
}

func InternalServerError(c *gin.Context, details interface{}) {
	Error(c, 500, "Internal server error", details)
}
