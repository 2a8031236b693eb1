package onboarding

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Session is one structured onboarding conversation. StageNumber walks the
// fixed 1..7 catalog; CollectedData accumulates merged extracted fields.
// Version guards concurrent turn submissions with a compare-and-swap.
type Session struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID      uuid.UUID      `gorm:"type:uuid;not null;index;column:tenant_id" json:"tenant_id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	StageNumber   int            `gorm:"column:stage_number;not null;default:1" json:"stage_number"`
	MessageCount  int            `gorm:"column:message_count;not null;default:0" json:"message_count"`
	CollectedData datatypes.JSON `gorm:"column:collected_data;type:jsonb;not null;default:'{}'" json:"collected_data"`
	CompletedAt   *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
	Version       int64          `gorm:"column:version;not null;default:0" json:"version"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Session) TableName() string { return "onboarding_session" }

func (s *Session) Completed() bool { return s.CompletedAt != nil }
