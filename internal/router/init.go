package router

import (
	"github.com/kotobukicho/kotobuki/internal/application"
	"github.com/kotobukicho/kotobuki/internal/container"
	pginfra "github.com/kotobukicho/kotobuki/internal/infrastructure/postgres"
	handlers "github.com/kotobukicho/kotobuki/internal/interface/http"
	"github.com/kotobukicho/kotobuki/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it. Called once during startup.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	logger := container.GetLogger()
	jwt := container.GetJWT()

	userRepo := pginfra.NewUserRepository(pool)
	cardRepo := pginfra.NewCardRepository(pool)

	uploadSvc := application.NewUploadService(container.GetBlobStore(), logger)
	authSvc := application.NewAuthService(userRepo, jwt, logger)
	cardSvc := application.NewCardService(cardRepo, uploadSvc, container.GetCleanupPub(), logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewCardModule(handlers.NewCardHandler(cardSvc, logger), jwt))
	r.Add(modules.NewUploadModule(handlers.NewUploadHandler(uploadSvc, logger), jwt))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
