package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response body for every auth endpoint. The wire
// contract always answers HTTP 200 and signals the outcome with the
// success boolean; clients depend on this shape, so it must not change.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
	Role    string `json:"role,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// OK writes a success envelope.
func OK(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

// OKData writes a success envelope with a data payload.
func OKData(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// OKToken writes a success envelope carrying a session credential.
func OKToken(c *gin.Context, message, token string, role string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Token: token, Role: role})
}

// Fail writes a failure envelope. Still HTTP 200 per the wire contract.
func Fail(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Success: false, Message: message})
}

// Abort writes a failure envelope with a real HTTP status and stops the
// chain. Used only by middleware (rate limits, protected routes), which
// sit outside the uniform-envelope contract.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message})
}
