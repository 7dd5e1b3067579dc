package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"library-catalog/internal/shared/apperror"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperror.Validation(errors.New("bad")), http.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("book %w", apperror.ErrNotFound), http.StatusNotFound},
		{"unauthorized", apperror.ErrUnauthorized, http.StatusUnauthorized},
		{"external", apperror.External("object storage", "put", errors.New("dial tcp")), http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := StatusFor(tt.err)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestClientMessage_HidesCause(t *testing.T) {
	err := apperror.External("object storage", "put", errors.New("secret-host:9000 refused"))
	assert.Equal(t, RetryPrompt, ClientMessage(err))

	assert.Equal(t, "Internal server error", ClientMessage(errors.New("pq: relation missing")))
}

func TestValidationFields(t *testing.T) {
	err := apperror.Validation(validation.Errors{
		"title":  errors.New("title is required"),
		"author": nil,
	})
	assert.Equal(t, map[string]string{"title": "title is required"}, ValidationFields(err))
	assert.Nil(t, ValidationFields(errors.New("plain")))
}

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	FromError(c, fmt.Errorf("user %w", apperror.ErrNotFound))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "Not found", body.Error.Title)
	assert.Equal(t, "user not found", body.Error.Details)
}

func TestError_Envelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, http.StatusBadRequest, "Invalid request body", errors.New("EOF"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":{"title":"Invalid request body","details":"EOF"}}`, w.Body.String())

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, &ErrorBody{Title: "Invalid request body", Details: "EOF"}, body.Error)
}
