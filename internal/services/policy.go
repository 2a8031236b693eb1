package services

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/venturegate/validation-backend/internal/data/repos"
	types "github.com/venturegate/validation-backend/internal/domain"
	"github.com/venturegate/validation-backend/internal/modules/validation"
	"github.com/venturegate/validation-backend/internal/pkg/dbctx"
	"github.com/venturegate/validation-backend/internal/pkg/errors"
	"github.com/venturegate/validation-backend/internal/pkg/logger"
)

// PolicyService resolves the effective gate policy for a tenant. Resolution
// layers, lowest to highest precedence: built-in defaults, the optional
// deployment policy file (GATE_POLICY_FILE), then the tenant's stored
// override.
type PolicyService interface {
	Resolve(dbc dbctx.Context, tenantID uuid.UUID, gate types.GateID) (types.GatePolicy, error)
	SetOverride(dbc dbctx.Context, tenantID uuid.UUID, gate types.GateID, fields validation.OverrideFields) (*types.PolicyOverride, error)
	ClearOverride(dbc dbctx.Context, tenantID uuid.UUID, gate types.GateID) error
	ListOverrides(dbc dbctx.Context, tenantID uuid.UUID) ([]*types.PolicyOverride, error)
}

type policyService struct {
	db            *gorm.DB
	log           *logger.Logger
	overrides     repos.PolicyOverrideRepo
	fileOverrides map[types.GateID]validation.OverrideFields
}

func NewPolicyService(db *gorm.DB, baseLog *logger.Logger, overrides repos.PolicyOverrideRepo) (PolicyService, error) {
	log := baseLog.With("service", "PolicyService")

	var fileOverrides map[types.GateID]validation.OverrideFields
	if path := strings.TrimSpace(os.Getenv("GATE_POLICY_FILE")); path != "" {
		loaded, err := validation.LoadPolicyFile(path)
		if err != nil {
			return nil, fmt.Errorf("load gate policy file: %w", err)
		}
		fileOverrides = loaded
		log.Info("Loaded gate policy file", "path", path, "gates", len(loaded))
	}

	return &policyService{
		db:            db,
		log:           log,
		overrides:     overrides,
		fileOverrides: fileOverrides,
	}, nil
}

func (s *policyService) Resolve(dbc dbctx.Context, tenantID uuid.UUID, gate types.GateID) (types.GatePolicy, error) {
	policy, known := validation.DefaultPolicy(gate)
	if !known {
		s.log.Warn("Unknown gate, using least-restrictive defaults", "gate", gate)
		return policy, nil
	}

	if fo, ok := s.fileOverrides[gate]; ok {
		policy = validation.ApplyOverride(policy, fo)
	}

	if tenantID == uuid.Nil {
		return policy, nil
	}
	row, err := s.overrides.GetByTenantGate(dbc, tenantID, gate)
	if err != nil {
		return types.GatePolicy{}, fmt.Errorf("load tenant policy override: %w", err)
	}
	if row == nil {
		return policy, nil
	}

	var fields validation.OverrideFields
	if err := json.Unmarshal(row.Fields, &fields); err != nil {
		// A corrupt override must not change evaluation outcomes silently.
		return types.GatePolicy{}, fmt.Errorf("parse tenant policy override: %w", err)
	}
	return validation.ApplyOverride(policy, fields), nil
}

func (s *policyService) SetOverride(dbc dbctx.Context, tenantID uuid.UUID, gate types.GateID, fields validation.OverrideFields) (*types.PolicyOverride, error) {
	if tenantID == uuid.Nil {
		return nil, errors.ErrInvalidArgument
	}
	if !gate.Valid() {
		return nil, fmt.Errorf("%w: unknown gate %q", errors.ErrInvalidArgument, gate)
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	override := &types.PolicyOverride{
		ID:       uuid.New(),
		TenantID: tenantID,
		Gate:     gate,
		Fields:   datatypes.JSON(raw),
	}
	return s.overrides.Upsert(dbc, override)
}

func (s *policyService) ClearOverride(dbc dbctx.Context, tenantID uuid.UUID, gate types.GateID) error {
	if tenantID == uuid.Nil || !gate.Valid() {
		return errors.ErrInvalidArgument
	}
	return s.overrides.DeleteByTenantGate(dbc, tenantID, gate)
}

func (s *policyService) ListOverrides(dbc dbctx.Context, tenantID uuid.UUID) ([]*types.PolicyOverride, error) {
	if tenantID == uuid.Nil {
		return nil, errors.ErrInvalidArgument
	}
	return s.overrides.ListByTenant(dbc, tenantID)
}
