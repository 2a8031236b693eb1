package app

import (
	"github.com/venturegate/validation-backend/internal/http/handlers"
	"github.com/venturegate/validation-backend/internal/pkg/logger"
)

type Handlers struct {
	Health     *handlers.HealthHandler
	Project    *handlers.ProjectHandler
	Gate       *handlers.GateHandler
	Policy     *handlers.PolicyHandler
	Onboarding *handlers.OnboardingHandler
	Job        *handlers.JobHandler
}

func wireHandlers(log *logger.Logger, services Services, repos Repos) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     handlers.NewHealthHandler(),
		Project:    handlers.NewProjectHandler(services.Project),
		Gate:       handlers.NewGateHandler(services.Gate),
		Policy:     handlers.NewPolicyHandler(services.Policy),
		Onboarding: handlers.NewOnboardingHandler(services.Onboarding),
		Job:        handlers.NewJobHandler(repos.JobRun),
	}
}
