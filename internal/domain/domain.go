package domain

import (
	"github.com/venturegate/validation-backend/internal/domain/jobs"
	"github.com/venturegate/validation-backend/internal/domain/onboarding"
	"github.com/venturegate/validation-backend/internal/domain/validation"
)

type GateID = validation.GateID
type GateStatus = validation.GateStatus
type GatePolicy = validation.GatePolicy
type Project = validation.Project
type ValidationState = validation.ValidationState
type EvidenceItem = validation.EvidenceItem
type EvidenceType = validation.EvidenceType
type EvidenceStrength = validation.EvidenceStrength
type PolicyOverride = validation.PolicyOverride

type Session = onboarding.Session
type QualityAssessment = onboarding.QualityAssessment
type Clarity = onboarding.Clarity
type Completeness = onboarding.Completeness

type JobRun = jobs.JobRun

const (
	GateDesirability = validation.GateDesirability
	GateFeasibility  = validation.GateFeasibility
	GateViability    = validation.GateViability
	GateScale        = validation.GateScale

	StatusPending = validation.StatusPending
	StatusPassed  = validation.StatusPassed
	StatusFailed  = validation.StatusFailed

	EvidenceInterview  = validation.EvidenceInterview
	EvidenceDesk       = validation.EvidenceDesk
	EvidenceAnalytics  = validation.EvidenceAnalytics
	EvidenceExperiment = validation.EvidenceExperiment

	StrengthWeak   = validation.StrengthWeak
	StrengthMedium = validation.StrengthMedium
	StrengthStrong = validation.StrengthStrong

	ClarityLow    = onboarding.ClarityLow
	ClarityMedium = onboarding.ClarityMedium
	ClarityHigh   = onboarding.ClarityHigh

	CompletenessPartial  = onboarding.CompletenessPartial
	CompletenessComplete = onboarding.CompletenessComplete

	JobStatusQueued    = jobs.StatusQueued
	JobStatusRunning   = jobs.StatusRunning
	JobStatusSucceeded = jobs.StatusSucceeded
	JobStatusFailed    = jobs.StatusFailed

	JobTypeGateEvaluate = jobs.JobTypeGateEvaluate
)

// GateOrder is the canonical gate progression sequence.
var GateOrder = validation.GateOrder
