package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kotobukicho/kotobuki/pkg/helpers"
	"github.com/kotobukicho/kotobuki/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
)

// Auth validates the Authorization bearer token. The token is
// self-contained; no session store is consulted. It sets userID and
// userEmail in the Gin context on success.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			response.Message(c, http.StatusUnauthorized, "No token provided")
			c.Abort()
			return
		}
		claims, err := jwt.Parse(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			response.Message(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Next()
	}
}
