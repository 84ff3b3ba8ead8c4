package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/foodstore-auth/internal/container"
	handlers "github.com/oksasatya/foodstore-auth/internal/interface/http"
	"github.com/oksasatya/foodstore-auth/internal/interface/middleware"
	"github.com/oksasatya/foodstore-auth/pkg/helpers"
)

// UserModule registers the authenticated user surface.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/user")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP()))
	{
		auth.GET("/profile", m.Handler.Profile)
	}
}
