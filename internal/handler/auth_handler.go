package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/aews-api/internal/models"
	"github.com/noah-isme/aews-api/internal/service"
	appErrors "github.com/noah-isme/aews-api/pkg/errors"
	"github.com/noah-isme/aews-api/pkg/response"
)

// AuthHandler exposes signup, login and token lifecycle endpoints.
type AuthHandler struct {
	auth     *service.AuthService
	smtpFrom string
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *service.AuthService, smtpFrom string) *AuthHandler {
	return &AuthHandler{auth: auth, smtpFrom: smtpFrom}
}

// Signup godoc
// @Summary Register an account
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.SignupRequest true "Signup payload"
// @Success 201 {object} response.Envelope
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.auth.Signup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Login godoc
// @Summary Authenticate and issue an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// VerifyEmail godoc
// @Summary Consume an email verification token
// @Tags Auth
// @Produce json
// @Param token query string true "Verification token"
// @Success 200 {object} response.Envelope
// @Router /auth/verify-email [get]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	info, err := h.auth.VerifyEmail(c.Request.Context(), c.Query("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Email verified", "account": info}, nil)
}

// ForgotPassword godoc
// @Summary Start the password reset flow
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.ForgotPasswordRequest true "Email"
// @Success 200 {object} response.Envelope
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.auth.ForgotPassword(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	// Always the same message, whether or not the email exists.
	response.JSON(c, http.StatusOK, gin.H{"message": "If the email is registered, a reset link has been sent"}, nil)
}

// ResetPassword godoc
// @Summary Consume a password reset token
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.ResetPasswordRequest true "Token and new password"
// @Success 200 {object} response.Envelope
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.auth.ResetPassword(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Password updated"}, nil)
}

// EmailStatus godoc
// @Summary Report SMTP configuration state
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/email-status [get]
func (h *AuthHandler) EmailStatus(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.auth.EmailStatus(h.smtpFrom), nil)
}

// TestEmail godoc
// @Summary Send a test email
// @Tags Auth
// @Produce json
// @Param to query string false "Recipient, defaults to the SMTP user"
// @Success 200 {object} response.Envelope
// @Router /auth/test-email [post]
func (h *AuthHandler) TestEmail(c *gin.Context) {
	to := strings.TrimSpace(c.Query("to"))
	if to == "" {
		to = h.smtpFrom
	}
	if to == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "no recipient available"))
		return
	}
	sent, reason := h.auth.SendTestEmail(to)
	response.JSON(c, http.StatusOK, gin.H{"sent": sent, "to": to, "error": reason}, nil)
}
