package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kotobukicho/kotobuki/internal/container"
	handlers "github.com/kotobukicho/kotobuki/internal/interface/http"
	"github.com/kotobukicho/kotobuki/internal/interface/middleware"
	"github.com/kotobukicho/kotobuki/pkg/helpers"
)

// CardModule wires the card catalog.
// Public: GET /api/cards, GET /api/cards/:cardId
// Protected: POST /api/cards, DELETE /api/cards/:id
type CardModule struct {
	Handler *handlers.CardHandler
	JWT     *helpers.JWTManager
}

func NewCardModule(h *handlers.CardHandler, jwt *helpers.JWTManager) *CardModule {
	return &CardModule{Handler: h, JWT: jwt}
}

func (m *CardModule) Register(rg *gin.RouterGroup) {
	listLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/cards", listLimiter, m.Handler.List)
	rg.GET("/cards/:cardId", listLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/cards", m.Handler.Create)
		auth.DELETE("/cards/:id", m.Handler.Delete)
	}
}
