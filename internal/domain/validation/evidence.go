package validation

import (
	"time"

	"github.com/google/uuid"
)

type EvidenceType string

const (
	EvidenceInterview  EvidenceType = "interview"
	EvidenceDesk       EvidenceType = "desk"
	EvidenceAnalytics  EvidenceType = "analytics"
	EvidenceExperiment EvidenceType = "experiment"
)

type EvidenceStrength string

const (
	StrengthWeak   EvidenceStrength = "weak"
	StrengthMedium EvidenceStrength = "medium"
	StrengthStrong EvidenceStrength = "strong"
)

// EvidenceItem is immutable once recorded; updates create new rows.
type EvidenceItem struct {
	ID              uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProjectID       uuid.UUID        `gorm:"type:uuid;not null;index;column:project_id" json:"project_id"`
	Type            EvidenceType     `gorm:"column:type;not null;index" json:"type"`
	Strength        EvidenceStrength `gorm:"column:strength;not null" json:"strength"`
	QualityScore    float64          `gorm:"column:quality_score;not null;default:0" json:"quality_score"`
	IsContradiction bool             `gorm:"column:is_contradiction;not null;default:false" json:"is_contradiction"`
	CreatedAt       time.Time        `gorm:"not null;default:now();index" json:"created_at"`
}

func (EvidenceItem) TableName() string { return "evidence_item" }
