package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kotobukicho/kotobuki/internal/container"
	handlers "github.com/kotobukicho/kotobuki/internal/interface/http"
	"github.com/kotobukicho/kotobuki/internal/interface/middleware"
	"github.com/kotobukicho/kotobuki/pkg/helpers"
)

// UploadModule wires the upload gateway.
// Public: GET /api/blobs/:bucket/:fileName (passthrough serving)
// Protected: POST /api/upload-file, POST /api/delete-file
type UploadModule struct {
	Handler *handlers.UploadHandler
	JWT     *helpers.JWTManager
}

func NewUploadModule(h *handlers.UploadHandler, jwt *helpers.JWTManager) *UploadModule {
	return &UploadModule{Handler: h, JWT: jwt}
}

func (m *UploadModule) Register(rg *gin.RouterGroup) {
	serveLimiter := middleware.RateLimit(container.GetRedis(), 600, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/blobs/:bucket/:fileName", serveLimiter, m.Handler.ServeBlob)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/upload-file", m.Handler.Upload)
		auth.POST("/delete-file", m.Handler.DeleteFile)
	}
}
