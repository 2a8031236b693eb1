package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/venturegate/validation-backend/internal/http/handlers"
	"github.com/venturegate/validation-backend/internal/http/middleware"
	"github.com/venturegate/validation-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log               *logger.Logger
	AuthMiddleware    *middleware.AuthMiddleware
	HealthHandler     *handlers.HealthHandler
	ProjectHandler    *handlers.ProjectHandler
	GateHandler       *handlers.GateHandler
	PolicyHandler     *handlers.PolicyHandler
	OnboardingHandler *handlers.OnboardingHandler
	JobHandler        *handlers.JobHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.AttachRequestContext())
	router.Use(middleware.RequestLogger(cfg.Log))

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Request-ID"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthz", cfg.HealthHandler.Health)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	// Projects & gates
	api.POST("/projects", cfg.ProjectHandler.Create)
	api.GET("/projects", cfg.ProjectHandler.List)
	api.GET("/projects/:id", cfg.ProjectHandler.Get)
	api.POST("/projects/:id/evidence", cfg.GateHandler.RecordEvidence)
	api.POST("/projects/:id/gate/evaluate", cfg.GateHandler.Evaluate)
	api.POST("/projects/:id/gate/evaluate-async", cfg.GateHandler.EvaluateAsync)
	api.GET("/projects/:id/gate/readiness", cfg.GateHandler.Readiness)
	api.POST("/projects/:id/gate/advance", cfg.GateHandler.Advance)
	api.GET("/projects/:id/gate/jobs/latest", cfg.JobHandler.GetLatestEvaluation)

	// Gate policies
	api.GET("/policies", cfg.PolicyHandler.ListOverrides)
	api.GET("/policies/:gate", cfg.PolicyHandler.GetEffective)
	api.PUT("/policies/:gate", cfg.PolicyHandler.SetOverride)
	api.DELETE("/policies/:gate", cfg.PolicyHandler.ClearOverride)

	// Onboarding
	api.GET("/onboarding/stages", cfg.OnboardingHandler.Stages)
	api.POST("/onboarding/sessions", cfg.OnboardingHandler.StartSession)
	api.GET("/onboarding/sessions", cfg.OnboardingHandler.ListSessions)
	api.GET("/onboarding/sessions/:id", cfg.OnboardingHandler.GetSession)
	api.POST("/onboarding/sessions/:id/turns", cfg.OnboardingHandler.ProcessTurn)
	api.POST("/onboarding/sessions/:id/complete", cfg.OnboardingHandler.MarkComplete)
	api.GET("/onboarding/sessions/:id/progress", cfg.OnboardingHandler.Progress)

	// Jobs
	api.GET("/jobs/:id", cfg.JobHandler.GetJob)

	return router
}
