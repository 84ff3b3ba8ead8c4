package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/foodstore-auth/pkg/helpers"
	"github.com/oksasatya/foodstore-auth/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth validates the bearer session token and injects the user id and role
// into the Gin context. Session tokens are stateless; there is no
// server-side session to consult.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "missing token")
			return
		}
		claims, err := jwt.ParseSessionToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid token")
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set("userRole", claims.Role)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		// legacy clients send the raw token in a "token" header
		return c.GetHeader("token")
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(h)
}
