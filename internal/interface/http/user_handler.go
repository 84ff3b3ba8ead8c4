package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/foodstore-auth/internal/application"
	"github.com/oksasatya/foodstore-auth/pkg/response"
)

// UserHandler serves the authenticated surface behind a session credential.
type UserHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.AuthService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// Profile GET /api/user/profile (auth required)
func (h *UserHandler) Profile(c *gin.Context) {
	uid := c.GetString("userID")
	u, err := h.Svc.Profile(c.Request.Context(), uid)
	if err != nil {
		response.Fail(c, "User doesn't exist")
		return
	}
	response.OKData(c, "profile", gin.H{
		"id":                 u.ID,
		"name":               u.Name,
		"email":              u.Email,
		"phoneNumber":        u.PhoneNumber,
		"role":               u.Role,
		"verificationStatus": u.Status,
		"createdAt":          u.CreatedAt,
	})
}
