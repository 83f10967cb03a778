package handler

import (
	"net/http"

	"github.com/edustack/academy-api/internal/constants"
	"github.com/edustack/academy-api/internal/dto"
	apperrors "github.com/edustack/academy-api/internal/errors"
	"github.com/edustack/academy-api/internal/middleware"
	"github.com/edustack/academy-api/internal/service"
	"github.com/edustack/academy-api/pkg/logger"
	"github.com/edustack/academy-api/pkg/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles new user signup and OTP dispatch
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().Warn("Invalid registration request",
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(apperrors.ErrMissingField.Message, validation.Translate(err)))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		logger.GetLogger().Warn("Registration failed",
			zap.String("email", req.Email),
			zap.Error(err),
		)
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse("Registration failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusCreated, constants.BuildDataResponse("Registration pending, otp sent", user))
}

// VerifyOTP confirms the signup code and activates the account
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(apperrors.ErrMissingField.Message, validation.Translate(err)))
		return
	}

	user, err := h.authService.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		logger.GetLogger().Warn("OTP verification failed",
			zap.String("email", req.Email),
			zap.Error(err),
		)
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse("Verification failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse("Account verified", user))
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(apperrors.ErrMissingField.Message, validation.Translate(err)))
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.GetLogger().Warn("Login failed",
			zap.String("email", req.Email),
			zap.Error(err),
		)
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse("Authentication failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, response)
}

// Logout revokes the presented bearer token
func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := middleware.TokenFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, "missing bearer token"))
		return
	}

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		logger.GetLogger().Error("Logout failed",
			zap.Error(err),
		)
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse("Logout failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Logout successful"))
}

// ForgotPassword issues a reset token and mails the reset link
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(apperrors.ErrMissingField.Message, validation.Translate(err)))
		return
	}

	if err := h.authService.RequestReset(c.Request.Context(), req.Email); err != nil {
		logger.GetLogger().Warn("Password reset request failed",
			zap.String("email", req.Email),
			zap.Error(err),
		)
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse("Reset request failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Reset link sent"))
}

// ResetPassword consumes a reset token and sets the new password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(apperrors.ErrMissingField.Message, validation.Translate(err)))
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		logger.GetLogger().Warn("Password reset failed",
			zap.Error(err),
		)
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse("Reset failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Password updated"))
}
