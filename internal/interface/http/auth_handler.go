package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/foodstore-auth/internal/application"
	"github.com/oksasatya/foodstore-auth/internal/domain/entity"
	"github.com/oksasatya/foodstore-auth/internal/verification"
	"github.com/oksasatya/foodstore-auth/pkg/response"
	"github.com/oksasatya/foodstore-auth/pkg/validation"
)

// AuthHandler translates inbound requests into state-machine operations and
// maps every outcome onto the uniform {success, message} envelope at HTTP
// 200. Clients branch on the success boolean, never on status codes, so the
// envelope must stay stable.
type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name               string `json:"name" binding:"required"`
	Email              string `json:"email" binding:"required"`
	Password           string `json:"password" binding:"required"`
	PhoneNumber        string `json:"phoneNumber"`
	VerificationMethod string `json:"verificationMethod" binding:"required"`
}

// Register POST /api/user/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logBinding(c, err)
		response.Fail(c, "Missing required fields")
		return
	}

	err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Method:      entity.VerificationMethod(req.VerificationMethod),
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserExists):
			response.Fail(c, "User already exists")
		case errors.Is(err, application.ErrInvalidEmail):
			response.Fail(c, "Please enter valid email")
		case errors.Is(err, application.ErrWeakPassword):
			response.Fail(c, "Please enter a strong password")
		case errors.Is(err, application.ErrPhoneRequired):
			response.Fail(c, "Please enter a phone number for SMS verification")
		case errors.Is(err, application.ErrUnknownMethod):
			response.Fail(c, "Invalid verification method.")
		default:
			h.logInternal(c, "registration failed", err)
			response.Fail(c, "Error during registration")
		}
		return
	}

	switch entity.VerificationMethod(req.VerificationMethod) {
	case entity.MethodSMSOTP:
		response.OK(c, "User registered successfully. OTP sent to your phone.")
	case entity.MethodEmailLink:
		response.OK(c, "User registered successfully. Verification link sent to your email.")
	default:
		response.OK(c, "User registered successfully. OTP sent to your email.")
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/user/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logBinding(c, err)
		response.Fail(c, "Missing required fields")
		return
	}

	token, role, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Fail(c, "User doesn't exist")
		case errors.Is(err, application.ErrInvalidCredentials):
			response.Fail(c, "Invalid Credentials")
		default:
			h.logInternal(c, "login failed", err)
			response.Fail(c, "Error")
		}
		return
	}
	response.OKToken(c, "", token, string(role))
}

type verifyOTPRequest struct {
	VerificationMethod string `json:"verificationMethod" binding:"required"`
	Email              string `json:"email"`
	PhoneNumber        string `json:"phoneNumber"`
	OTP                string `json:"otp" binding:"required"`
}

// VerifyOTP POST /api/user/verify-otp
// Routes to email-code or phone-code verification based on the method.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logBinding(c, err)
		response.Fail(c, "Missing required fields")
		return
	}

	method := entity.VerificationMethod(req.VerificationMethod)
	token, err := h.Svc.VerifyOTP(c.Request.Context(), method, req.Email, req.PhoneNumber, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUnknownMethod):
			response.Fail(c, "Invalid verification method.")
		case errors.Is(err, application.ErrUserNotFound):
			response.Fail(c, "User doesn't exist")
		case errors.Is(err, application.ErrOTPMismatch):
			response.Fail(c, "Invalid OTP")
		default:
			h.logInternal(c, "otp verification failed", err)
			response.Fail(c, "Error during OTP verification")
		}
		return
	}
	response.OKToken(c, "OTP verified. You can now log in.", token, "")
}

// VerifyEmailLink GET /api/user/verify-email?token=...
func (h *AuthHandler) VerifyEmailLink(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Fail(c, "Invalid or expired verification link.")
		return
	}
	if err := h.Svc.VerifyLink(c.Request.Context(), token); err != nil {
		switch {
		case errors.Is(err, application.ErrTokenInvalid):
			response.Fail(c, "Invalid or expired verification link.")
		case errors.Is(err, application.ErrUserNotFound):
			response.Fail(c, "User doesn't exist")
		default:
			h.logInternal(c, "link verification failed", err)
			response.Fail(c, "Error during email verification")
		}
		return
	}
	response.OK(c, "Email verified successfully. You can now log in.")
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ForgotPassword POST /api/user/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logBinding(c, err)
		response.Fail(c, "Missing required fields")
		return
	}

	if err := h.Svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Fail(c, "User doesn't exist")
		default:
			h.logInternal(c, "forgot password failed", err)
			response.Fail(c, "Error during OTP generation")
		}
		return
	}
	response.OK(c, "OTP sent to your email for password reset.")
}

type verifyResetOTPRequest struct {
	Email string `json:"email" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

// VerifyResetOTP POST /api/user/verify-otp-reset
// Read-only check; no token is issued and no state changes.
func (h *AuthHandler) VerifyResetOTP(c *gin.Context) {
	var req verifyResetOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logBinding(c, err)
		response.Fail(c, "Missing required fields")
		return
	}

	if err := h.Svc.VerifyResetOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Fail(c, "User doesn't exist")
		case errors.Is(err, application.ErrOTPMismatch):
			response.Fail(c, "Invalid OTP")
		default:
			h.logInternal(c, "reset otp verification failed", err)
			response.Fail(c, "Error during OTP verification")
		}
		return
	}
	response.OK(c, "OTP verified. You can now reset your password.")
}

type resetPasswordRequest struct {
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ResetPassword POST /api/user/reset-password
// Accepts the new password under either key for client compatibility.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logBinding(c, err)
		response.Fail(c, "Missing required fields")
		return
	}
	password := req.Password
	if password == "" {
		password = req.NewPassword
	}
	if password == "" {
		response.Fail(c, "Missing required fields")
		return
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != password {
		response.Fail(c, "Passwords do not match")
		return
	}

	if err := h.Svc.ResetPassword(c.Request.Context(), req.Email, password); err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Fail(c, "User doesn't exist")
		case errors.Is(err, application.ErrWeakPassword):
			response.Fail(c, "Please enter a strong password")
		default:
			h.logInternal(c, "password reset failed", err)
			response.Fail(c, "Error during password reset")
		}
		return
	}
	response.OK(c, "Password reset successfully.")
}

func (h *AuthHandler) logBinding(c *gin.Context, err error) {
	if h.Logger == nil {
		return
	}
	h.Logger.WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"path":       c.FullPath(),
		"details":    validation.ToDetails(err),
	}).Debug("payload binding rejected")
}

// logInternal records unexpected failures (store, provider, signing) with
// full detail server-side; the caller only ever sees a generic message.
func (h *AuthHandler) logInternal(c *gin.Context, msg string, err error) {
	if h.Logger == nil {
		return
	}
	entry := h.Logger.WithError(err).WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"path":       c.FullPath(),
	})
	if errors.Is(err, verification.ErrDelivery) {
		entry.Warn("challenge delivery failed")
		return
	}
	entry.Error(msg)
}
