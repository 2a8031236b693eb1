package validation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PolicyOverride is a tenant-scoped partial GatePolicy. Fields is a JSON
// object holding only the keys the tenant overrides; the resolver merges it
// over the built-in defaults.
type PolicyOverride struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index:idx_policy_tenant_gate,unique;column:tenant_id" json:"tenant_id"`
	Gate      GateID         `gorm:"column:gate;not null;index:idx_policy_tenant_gate,unique" json:"gate"`
	Fields    datatypes.JSON `gorm:"column:fields;type:jsonb;not null;default:'{}'" json:"fields"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (PolicyOverride) TableName() string { return "gate_policy_override" }
