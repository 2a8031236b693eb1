package validation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project carries the persisted validation state of one venture. Rows are
// created with all-zero/Pending defaults at project creation and are only
// superseded, never deleted. Version guards concurrent writers: every
// update goes through a compare-and-swap on it.
type Project struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID         uuid.UUID      `gorm:"type:uuid;not null;index;column:tenant_id" json:"tenant_id"`
	OwnerUserID      uuid.UUID      `gorm:"type:uuid;not null;index;column:owner_user_id" json:"owner_user_id"`
	Name             string         `gorm:"column:name;not null" json:"name"`
	Stage            GateID         `gorm:"column:stage;not null;default:'DESIRABILITY'" json:"stage"`
	GateStatus       GateStatus     `gorm:"column:gate_status;not null;default:'Pending'" json:"gate_status"`
	EvidenceQuality  float64        `gorm:"column:evidence_quality;not null;default:0" json:"evidence_quality"`
	ReadinessScore   float64        `gorm:"column:readiness_score;not null;default:0" json:"readiness_score"`
	EvidenceCount    int            `gorm:"column:evidence_count;not null;default:0" json:"evidence_count"`
	ExperimentsCount int            `gorm:"column:experiments_count;not null;default:0" json:"experiments_count"`
	HypothesesCount  int            `gorm:"column:hypotheses_count;not null;default:0" json:"hypotheses_count"`
	Version          int64          `gorm:"column:version;not null;default:0" json:"version"`
	CreatedAt        time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Project) TableName() string { return "project" }

// ValidationState is the in-memory slice of Project the gate evaluator
// consumes. Keeping it separate from the row type keeps the evaluator free
// of persistence concerns.
type ValidationState struct {
	Stage            GateID
	GateStatus       GateStatus
	EvidenceQuality  float64
	ExperimentsCount int
	EvidenceCount    int
	HypothesesCount  int
}

func (p *Project) State() ValidationState {
	return ValidationState{
		Stage:            p.Stage,
		GateStatus:       p.GateStatus,
		EvidenceQuality:  p.EvidenceQuality,
		ExperimentsCount: p.ExperimentsCount,
		EvidenceCount:    p.EvidenceCount,
		HypothesesCount:  p.HypothesesCount,
	}
}
