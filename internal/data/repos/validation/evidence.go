package validation

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/venturegate/validation-backend/internal/domain"
	"github.com/venturegate/validation-backend/internal/pkg/dbctx"
	"github.com/venturegate/validation-backend/internal/pkg/logger"
)

type EvidenceRepo interface {
	Create(dbc dbctx.Context, items []*types.EvidenceItem) ([]*types.EvidenceItem, error)
	ListByProject(dbc dbctx.Context, projectID uuid.UUID) ([]*types.EvidenceItem, error)
	CountByProject(dbc dbctx.Context, projectID uuid.UUID) (int64, error)
}

type evidenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEvidenceRepo(db *gorm.DB, baseLog *logger.Logger) EvidenceRepo {
	return &evidenceRepo{db: db, log: baseLog.With("repo", "EvidenceRepo")}
}

func (r *evidenceRepo) Create(dbc dbctx.Context, items []*types.EvidenceItem) ([]*types.EvidenceItem, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(items) == 0 {
		return []*types.EvidenceItem{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *evidenceRepo) ListByProject(dbc dbctx.Context, projectID uuid.UUID) ([]*types.EvidenceItem, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.EvidenceItem
	if projectID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *evidenceRepo) CountByProject(dbc dbctx.Context, projectID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if projectID == uuid.Nil {
		return 0, nil
	}
	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.EvidenceItem{}).
		Where("project_id = ?", projectID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
