package app

import (
	"gorm.io/gorm"

	"github.com/venturegate/validation-backend/internal/data/repos"
	"github.com/venturegate/validation-backend/internal/pkg/logger"
)

type Repos struct {
	Project        repos.ProjectRepo
	Evidence       repos.EvidenceRepo
	PolicyOverride repos.PolicyOverrideRepo
	Session        repos.SessionRepo
	JobRun         repos.JobRunRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Project:        repos.NewProjectRepo(db, log),
		Evidence:       repos.NewEvidenceRepo(db, log),
		PolicyOverride: repos.NewPolicyOverrideRepo(db, log),
		Session:        repos.NewSessionRepo(db, log),
		JobRun:         repos.NewJobRunRepo(db, log),
	}
}
