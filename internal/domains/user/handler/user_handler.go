package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/apikey"
	"library-catalog/internal/domains/user"
	"library-catalog/internal/shared/apperror"
	"library-catalog/internal/shared/middleware"
	"library-catalog/internal/shared/response"
)

// UserHandler xử lý register / login / logout
// Struct này là stateless - chỉ chứa dependencies
type UserHandler struct {
	provider user.IdentityProvider
	apiKeys  apikey.Service
}

// NewUserHandler tạo handler instance
func NewUserHandler(provider user.IdentityProvider, apiKeys apikey.Service) *UserHandler {
	return &UserHandler{
		provider: provider,
		apiKeys:  apiKeys,
	}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register xử lý POST /register
// Tạo account rồi cấp api key cho email (đúng một lần)
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.Normalize()

	if err := req.Validate(); err != nil {
		response.FromError(c, apperror.Validation(err))
		return
	}
	if req.Password != req.RepeatPassword {
		response.FromError(c, user.ErrPasswordMismatch)
		return
	}

	account, err := h.provider.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	key, err := h.apiKeys.Issue(c.Request.Context(), account.Email)
	if err != nil {
		log.Error().Err(err).Str("user_id", account.ID).Msg("api key issue failed after sign-up")
		h.rollbackSignUp(c.Request.Context(), account)
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Account created successfully", user.RegisterResponse{
		Account: account,
		APIKey:  key.Key,
	})
}

// rollbackSignUp xoá account khi không cấp được api key,
// để client đăng ký lại với cùng email
func (h *UserHandler) rollbackSignUp(ctx context.Context, account *user.Account) {
	if err := h.provider.DeleteAccount(ctx, account.ID); err != nil {
		log.Error().Err(err).Str("user_id", account.ID).Msg("failed to roll back sign-up")
	}
}

// Login xử lý POST /login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.Normalize()

	if err := req.Validate(); err != nil {
		response.FromError(c, apperror.Validation(err))
		return
	}

	session, err := h.provider.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Không tiết lộ email có tồn tại hay không
		if errors.Is(err, apperror.ErrUnauthorized) {
			response.Error(c, http.StatusUnauthorized, "Login failed", user.LoginFailedMessage)
			return
		}
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", session)
}

// Logout xử lý POST /logout
// Không có token hợp lệ vẫn trả về success
func (h *UserHandler) Logout(c *gin.Context) {
	token, err := middleware.BearerToken(c)
	if err != nil {
		response.Success(c, http.StatusOK, "Logged out successfully", nil)
		return
	}

	if err := h.provider.SignOut(c.Request.Context(), token); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Logged out successfully", nil)
}
