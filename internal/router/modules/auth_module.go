package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kotobukicho/kotobuki/internal/container"
	handlers "github.com/kotobukicho/kotobuki/internal/interface/http"
	"github.com/kotobukicho/kotobuki/internal/interface/middleware"
)

// AuthModule wires the credential endpoints.
// Public: POST /api/auth/signup, POST /api/auth/login, GET /api/auth/user
// (the last verifies its own bearer token so it can distinguish 401 from 404).
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/signup", signupLimiter, m.Handler.SignUp)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.GET("/auth/user", m.Handler.CurrentUser)
}
