package repos

import (
	"gorm.io/gorm"

	"github.com/venturegate/validation-backend/internal/data/repos/jobs"
	"github.com/venturegate/validation-backend/internal/data/repos/onboarding"
	"github.com/venturegate/validation-backend/internal/data/repos/validation"
	"github.com/venturegate/validation-backend/internal/pkg/logger"
)

type ProjectRepo = validation.ProjectRepo
type EvidenceRepo = validation.EvidenceRepo
type PolicyOverrideRepo = validation.PolicyOverrideRepo

type SessionRepo = onboarding.SessionRepo

type JobRunRepo = jobs.JobRunRepo

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	return validation.NewProjectRepo(db, baseLog)
}
func NewEvidenceRepo(db *gorm.DB, baseLog *logger.Logger) EvidenceRepo {
	return validation.NewEvidenceRepo(db, baseLog)
}
func NewPolicyOverrideRepo(db *gorm.DB, baseLog *logger.Logger) PolicyOverrideRepo {
	return validation.NewPolicyOverrideRepo(db, baseLog)
}
func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	return onboarding.NewSessionRepo(db, baseLog)
}
func NewJobRunRepo(db *gorm.DB, baseLog *logger.Logger) JobRunRepo {
	return jobs.NewJobRunRepo(db, baseLog)
}
