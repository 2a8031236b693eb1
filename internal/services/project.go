package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturegate/validation-backend/internal/data/repos"
	types "github.com/venturegate/validation-backend/internal/domain"
	"github.com/venturegate/validation-backend/internal/pkg/dbctx"
	"github.com/venturegate/validation-backend/internal/pkg/errors"
	"github.com/venturegate/validation-backend/internal/pkg/logger"
)

type ProjectService interface {
	Create(dbc dbctx.Context, tenantID, ownerUserID uuid.UUID, name string) (*types.Project, error)
	Get(dbc dbctx.Context, projectID uuid.UUID) (*types.Project, error)
	ListForTenant(dbc dbctx.Context, tenantID uuid.UUID) ([]*types.Project, error)
}

type projectService struct {
	db       *gorm.DB
	log      *logger.Logger
	projects repos.ProjectRepo
}

func NewProjectService(db *gorm.DB, baseLog *logger.Logger, projects repos.ProjectRepo) ProjectService {
	return &projectService{
		db:       db,
		log:      baseLog.With("service", "ProjectService"),
		projects: projects,
	}
}

// Create starts a venture at the first gate with a fresh Pending state.
func (s *projectService) Create(dbc dbctx.Context, tenantID, ownerUserID uuid.UUID, name string) (*types.Project, error) {
	if tenantID == uuid.Nil || ownerUserID == uuid.Nil {
		return nil, errors.ErrInvalidArgument
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: missing project name", errors.ErrInvalidArgument)
	}
	project := &types.Project{
		ID:          uuid.New(),
		TenantID:    tenantID,
		OwnerUserID: ownerUserID,
		Name:        name,
		Stage:       types.GateDesirability,
		GateStatus:  types.StatusPending,
	}
	if _, err := s.projects.Create(dbc, []*types.Project{project}); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	s.log.Info("Project created", "project_id", project.ID, "tenant_id", tenantID)
	return project, nil
}

func (s *projectService) Get(dbc dbctx.Context, projectID uuid.UUID) (*types.Project, error) {
	return s.projects.GetByID(dbc, projectID)
}

func (s *projectService) ListForTenant(dbc dbctx.Context, tenantID uuid.UUID) ([]*types.Project, error) {
	if tenantID == uuid.Nil {
		return nil, errors.ErrInvalidArgument
	}
	return s.projects.ListByTenant(dbc, tenantID)
}
