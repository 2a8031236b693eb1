package app

import (
	"fmt"
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/venturegate/validation-backend/internal/clients/redis"
	jobruntime "github.com/venturegate/validation-backend/internal/jobs/runtime"
	validationjobs "github.com/venturegate/validation-backend/internal/jobs/validation"
	"github.com/venturegate/validation-backend/internal/jobs/worker"
	"github.com/venturegate/validation-backend/internal/pkg/logger"
	"github.com/venturegate/validation-backend/internal/services"
)

type Services struct {
	Auth       services.AuthService
	Project    services.ProjectService
	Policy     services.PolicyService
	Gate       services.GateService
	Onboarding services.OnboardingService

	// Job infra
	JobRegistry *jobruntime.Registry
	JobWorker   *worker.Worker

	AssessmentCache redis.AssessmentCache
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos) (Services, error) {
	log.Info("Wiring services...")

	authService := services.NewAuthService(log, cfg.JWTSecretKey, cfg.AccessTokenTTL)
	projectService := services.NewProjectService(db, log, repos.Project)

	policyService, err := services.NewPolicyService(db, log, repos.PolicyOverride)
	if err != nil {
		return Services{}, fmt.Errorf("init policy service: %w", err)
	}

	gateService := services.NewGateService(db, log, repos.Project, repos.Evidence, policyService, repos.JobRun)

	// Assessment cache is optional: without REDIS_ADDR every turn falls back
	// to the caller-supplied assessment.
	var assessmentCache redis.AssessmentCache
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		assessmentCache, err = redis.NewAssessmentCache(log)
		if err != nil {
			log.Warn("Assessment cache init failed, continuing without cache", "error", err)
			assessmentCache = nil
		}
	}

	onboardingService := services.NewOnboardingService(db, log, repos.Session, assessmentCache)

	registry := jobruntime.NewRegistry()
	if err := registry.Register(validationjobs.NewEvaluateHandler(log, gateService)); err != nil {
		return Services{}, fmt.Errorf("register gate evaluate job: %w", err)
	}
	jobWorker := worker.NewWorker(db, log, repos.JobRun, registry)

	return Services{
		Auth:            authService,
		Project:         projectService,
		Policy:          policyService,
		Gate:            gateService,
		Onboarding:      onboardingService,
		JobRegistry:     registry,
		JobWorker:       jobWorker,
		AssessmentCache: assessmentCache,
	}, nil
}
