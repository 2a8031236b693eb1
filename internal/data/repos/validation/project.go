package validation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/venturegate/validation-backend/internal/domain"
	"github.com/venturegate/validation-backend/internal/pkg/dbctx"
	"github.com/venturegate/validation-backend/internal/pkg/errors"
	"github.com/venturegate/validation-backend/internal/pkg/logger"
)

type ProjectRepo interface {
	Create(dbc dbctx.Context, projects []*types.Project) ([]*types.Project, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Project, error)
	ListByTenant(dbc dbctx.Context, tenantID uuid.UUID) ([]*types.Project, error)
	UpdateEvaluation(dbc dbctx.Context, id uuid.UUID, expectedVersion int64, updates map[string]any) error
	AdvanceStage(dbc dbctx.Context, id uuid.UUID, expectedVersion int64, nextStage types.GateID) error
}

type projectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	return &projectRepo{db: db, log: baseLog.With("repo", "ProjectRepo")}
}

func (r *projectRepo) Create(dbc dbctx.Context, projects []*types.Project) ([]*types.Project, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(projects) == 0 {
		return []*types.Project{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Project, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, errors.ErrNotFound
	}
	var project types.Project
	err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&project).Error
	if err != nil {
		return nil, err
	}
	if project.ID == uuid.Nil {
		return nil, errors.ErrNotFound
	}
	return &project, nil
}

func (r *projectRepo) ListByTenant(dbc dbctx.Context, tenantID uuid.UUID) ([]*types.Project, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Project
	if tenantID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateEvaluation writes evaluation results with a compare-and-swap on the
// version column. Zero rows affected means another writer got there first;
// callers re-read and retry.
func (r *projectRepo) UpdateEvaluation(dbc dbctx.Context, id uuid.UUID, expectedVersion int64, updates map[string]any) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return errors.ErrNotFound
	}
	if updates == nil {
		updates = map[string]any{}
	}
	updates["version"] = gorm.Expr("version + 1")
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.Project{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.ErrConflict
	}
	return nil
}

func (r *projectRepo) AdvanceStage(dbc dbctx.Context, id uuid.UUID, expectedVersion int64, nextStage types.GateID) error {
	return r.UpdateEvaluation(dbc, id, expectedVersion, map[string]any{
		"stage":       nextStage,
		"gate_status": types.StatusPending,
	})
}
