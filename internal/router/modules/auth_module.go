package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/foodstore-auth/internal/container"
	handlers "github.com/oksasatya/foodstore-auth/internal/interface/http"
	"github.com/oksasatya/foodstore-auth/internal/interface/middleware"
)

// AuthModule registers the public verification surface under /api/user.
// Route shapes and payloads are part of the client wire contract.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	registerLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath())
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP())
	otpLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath())
	resetLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath())

	user := rg.Group("/user")
	{
		user.POST("/register", registerLimiter, m.Handler.Register)
		user.POST("/login", loginLimiter, m.Handler.Login)
		user.POST("/verify-otp", otpLimiter, m.Handler.VerifyOTP)
		user.GET("/verify-email", otpLimiter, m.Handler.VerifyEmailLink)
		user.POST("/forgot-password", resetLimiter, m.Handler.ForgotPassword)
		user.POST("/verify-otp-reset", otpLimiter, m.Handler.VerifyResetOTP)
		user.POST("/reset-password", otpLimiter, m.Handler.ResetPassword)
	}
}
