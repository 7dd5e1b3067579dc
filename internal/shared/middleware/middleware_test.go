package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"library-catalog/internal/domains/apikey"
	"library-catalog/internal/shared/apperror"
	"library-catalog/internal/shared/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ========================================
// MOCKS
// ========================================

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(ctx context.Context, token string) (*auth.Caller, error) {
	args := m.Called(ctx, token)
	caller, _ := args.Get(0).(*auth.Caller)
	return caller, args.Error(1)
}

type mockKeyService struct {
	mock.Mock
}

func (m *mockKeyService) Issue(ctx context.Context, email string) (*apikey.ApiKey, error) {
	args := m.Called(ctx, email)
	key, _ := args.Get(0).(*apikey.ApiKey)
	return key, args.Error(1)
}

func (m *mockKeyService) Authorize(ctx context.Context, key string) (*apikey.ApiKey, error) {
	args := m.Called(ctx, key)
	k, _ := args.Get(0).(*apikey.ApiKey)
	return k, args.Error(1)
}

func (m *mockKeyService) GetByEmail(ctx context.Context, email string) (*apikey.ApiKey, error) {
	args := m.Called(ctx, email)
	key, _ := args.Get(0).(*apikey.ApiKey)
	return key, args.Error(1)
}

// echoCaller trả về caller trong request context
func echoCaller(c *gin.Context) {
	caller := auth.FromContext(c.Request.Context())
	if caller == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": caller.UserID, "email": caller.Email, "session": caller.HasSession()})
}

// ========================================
// SESSION AUTH
// ========================================

func TestSessionAuth(t *testing.T) {
	verifier := &mockVerifier{}
	verifier.On("Verify", mock.Anything, "good").
		Return(&auth.Caller{UserID: "u-1", Email: "a@example.com", SessionToken: "good"}, nil)
	verifier.On("Verify", mock.Anything, "revoked").
		Return(nil, fmt.Errorf("signed out: %w", apperror.ErrUnauthorized))
	verifier.On("Verify", mock.Anything, "store-down").
		Return(nil, apperror.External("session store", "exists", errors.New("refused")))

	r := gin.New()
	r.GET("/me", SessionAuth(verifier), echoCaller)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer good", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"revoked", "Bearer revoked", http.StatusUnauthorized},
		{"store down", "Bearer store-down", http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	t.Run("caller in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "bearer good")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "u-1", body["user_id"])
		assert.Equal(t, true, body["session"])
	})
}

// ========================================
// API KEY
// ========================================

func TestAPIKey(t *testing.T) {
	svc := &mockKeyService{}
	svc.On("Authorize", mock.Anything, "").Return(nil, apikey.ErrAPIKeyMissing)
	svc.On("Authorize", mock.Anything, "unknown").Return(nil, apikey.ErrAPIKeyInvalid)
	svc.On("Authorize", mock.Anything, "good").
		Return(&apikey.ApiKey{Email: "client@example.com", RequestsCount: 4}, nil)
	svc.On("Authorize", mock.Anything, "db-down").Return(nil, errors.New("conn reset"))

	r := gin.New()
	r.GET("/books", APIKey(svc), echoCaller)

	do := func(query string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books"+query, nil))
		return w
	}

	w := do("")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"api key required"}`, w.Body.String())

	w = do("?api_key=unknown")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid api key"}`, w.Body.String())

	w = do("?api_key=good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"","email":"client@example.com","session":false}`, w.Body.String())

	w = do("?api_key=db-down")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "conn reset")
}

// ========================================
// REQUEST ID / RECOVERY
// ========================================

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "client-id-1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "client-id-1", w.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Logger(), Recovery())
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
	assert.NotContains(t, w.Body.String(), "boom")
}
