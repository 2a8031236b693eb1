package validation

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/venturegate/validation-backend/internal/domain"
	"github.com/venturegate/validation-backend/internal/pkg/dbctx"
	"github.com/venturegate/validation-backend/internal/pkg/logger"
)

type PolicyOverrideRepo interface {
	Upsert(dbc dbctx.Context, override *types.PolicyOverride) (*types.PolicyOverride, error)
	GetByTenantGate(dbc dbctx.Context, tenantID uuid.UUID, gate types.GateID) (*types.PolicyOverride, error)
	ListByTenant(dbc dbctx.Context, tenantID uuid.UUID) ([]*types.PolicyOverride, error)
	DeleteByTenantGate(dbc dbctx.Context, tenantID uuid.UUID, gate types.GateID) error
}

type policyOverrideRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPolicyOverrideRepo(db *gorm.DB, baseLog *logger.Logger) PolicyOverrideRepo {
	return &policyOverrideRepo{db: db, log: baseLog.With("repo", "PolicyOverrideRepo")}
}

func (r *policyOverrideRepo) Upsert(dbc dbctx.Context, override *types.PolicyOverride) (*types.PolicyOverride, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if override == nil {
		return nil, nil
	}
	err := transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "gate"}},
			DoUpdates: clause.AssignmentColumns([]string{"fields", "updated_at"}),
		}).
		Create(override).Error
	if err != nil {
		return nil, err
	}
	return override, nil
}

func (r *policyOverrideRepo) GetByTenantGate(dbc dbctx.Context, tenantID uuid.UUID, gate types.GateID) (*types.PolicyOverride, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if tenantID == uuid.Nil || gate == "" {
		return nil, nil
	}
	var override types.PolicyOverride
	err := transaction.WithContext(dbc.Ctx).
		Where("tenant_id = ? AND gate = ?", tenantID, gate).
		Limit(1).
		Find(&override).Error
	if err != nil {
		return nil, err
	}
	if override.ID == uuid.Nil {
		return nil, nil
	}
	return &override, nil
}

func (r *policyOverrideRepo) ListByTenant(dbc dbctx.Context, tenantID uuid.UUID) ([]*types.PolicyOverride, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.PolicyOverride
	if tenantID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("tenant_id = ?", tenantID).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *policyOverrideRepo) DeleteByTenantGate(dbc dbctx.Context, tenantID uuid.UUID, gate types.GateID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if tenantID == uuid.Nil || gate == "" {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Where("tenant_id = ? AND gate = ?", tenantID, gate).
		Delete(&types.PolicyOverride{}).Error
}
