package app

import (
	"github.com/gin-gonic/gin"

	"github.com/venturegate/validation-backend/internal/pkg/logger"
	"github.com/venturegate/validation-backend/internal/server"
)

func wireRouter(log *logger.Logger, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:               log,
		AuthMiddleware:    middleware.Auth,
		HealthHandler:     handlers.Health,
		ProjectHandler:    handlers.Project,
		GateHandler:       handlers.Gate,
		PolicyHandler:     handlers.Policy,
		OnboardingHandler: handlers.Onboarding,
		JobHandler:        handlers.Job,
	})
}
