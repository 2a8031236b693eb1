package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/venturegate/validation-backend/internal/data/repos"
	types "github.com/venturegate/validation-backend/internal/domain"
	"github.com/venturegate/validation-backend/internal/modules/validation"
	"github.com/venturegate/validation-backend/internal/pkg/dbctx"
	"github.com/venturegate/validation-backend/internal/pkg/errors"
	"github.com/venturegate/validation-backend/internal/pkg/logger"
)

// casRetries bounds how often an evaluation re-reads and retries after losing
// a version race. Races are rare; three attempts is plenty.
const casRetries = 3

// GateResult is the full outcome of one gate evaluation: the binary decision,
// the continuous readiness score, blocking reasons, and non-blocking
// advisories.
type GateResult struct {
	ProjectID  uuid.UUID        `json:"project_id"`
	Gate       types.GateID     `json:"gate"`
	Status     types.GateStatus `json:"status"`
	Readiness  float64          `json:"readiness_score"`
	Reasons    []string         `json:"reasons,omitempty"`
	Advisories []string         `json:"advisories,omitempty"`
	CanAdvance bool             `json:"can_advance"`
	NextGate   types.GateID     `json:"next_gate,omitempty"`
}

// GateReadiness is one gate's row in a cross-gate readiness snapshot.
type GateReadiness struct {
	Gate      types.GateID `json:"gate"`
	Readiness float64      `json:"readiness_score"`
}

type GateService interface {
	EvaluateGate(dbc dbctx.Context, projectID uuid.UUID) (*GateResult, error)
	EnqueueEvaluation(dbc dbctx.Context, ownerUserID, projectID uuid.UUID) (*types.JobRun, bool, error)
	ReadinessSnapshot(dbc dbctx.Context, projectID uuid.UUID) ([]GateReadiness, error)
	AdvanceStage(dbc dbctx.Context, projectID uuid.UUID) (*types.Project, error)
	RecordEvidence(dbc dbctx.Context, items []*types.EvidenceItem) ([]*types.EvidenceItem, int64, error)
}

type gateService struct {
	db       *gorm.DB
	log      *logger.Logger
	projects repos.ProjectRepo
	evidence repos.EvidenceRepo
	policies PolicyService
	jobs     repos.JobRunRepo
}

func NewGateService(
	db *gorm.DB,
	baseLog *logger.Logger,
	projects repos.ProjectRepo,
	evidence repos.EvidenceRepo,
	policies PolicyService,
	jobs repos.JobRunRepo,
) GateService {
	return &gateService{
		db:       db,
		log:      baseLog.With("service", "GateService"),
		projects: projects,
		evidence: evidence,
		policies: policies,
		jobs:     jobs,
	}
}

// EvaluateGate recomputes aggregates from the evidence ledger, judges them
// against the project's current gate policy, and persists the result behind a
// version compare-and-swap. The persisted counts are always refreshed, even
// on a Fail, so readiness reporting stays current.
func (s *gateService) EvaluateGate(dbc dbctx.Context, projectID uuid.UUID) (*GateResult, error) {
	var lastErr error
	for attempt := 0; attempt < casRetries; attempt++ {
		project, err := s.projects.GetByID(dbc, projectID)
		if err != nil {
			return nil, err
		}

		items, err := s.evidence.ListByProject(dbc, projectID)
		if err != nil {
			return nil, fmt.Errorf("list evidence: %w", err)
		}
		deref := make([]types.EvidenceItem, 0, len(items))
		for _, it := range items {
			deref = append(deref, *it)
		}
		agg := validation.Aggregate(deref)

		policy, err := s.policies.Resolve(dbc, project.TenantID, project.Stage)
		if err != nil {
			return nil, err
		}

		state := types.ValidationState{
			Stage:            project.Stage,
			EvidenceQuality:  agg.AverageQuality,
			ExperimentsCount: agg.Experiments,
			EvidenceCount:    agg.Count,
		}
		eval := validation.Evaluate(state, policy)
		advisories := validation.Advisories(agg, policy)

		err = s.projects.UpdateEvaluation(dbc, project.ID, project.Version, map[string]any{
			"gate_status":       eval.Status,
			"readiness_score":   eval.Readiness,
			"evidence_quality":  agg.AverageQuality,
			"evidence_count":    agg.Count,
			"experiments_count": agg.Experiments,
		})
		if err == errors.ErrConflict {
			lastErr = err
			s.log.Debug("Evaluation lost version race, retrying", "project_id", projectID, "attempt", attempt+1)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("persist evaluation: %w", err)
		}

		next, hasNext := validation.NextGate(project.Stage)
		result := &GateResult{
			ProjectID:  project.ID,
			Gate:       project.Stage,
			Status:     eval.Status,
			Readiness:  eval.Readiness,
			Reasons:    eval.Reasons,
			Advisories: advisories,
			CanAdvance: validation.CanProgress(project.Stage, eval.Status),
		}
		if hasNext {
			result.NextGate = next
		}
		s.log.Info("Gate evaluated",
			"project_id", project.ID,
			"gate", project.Stage,
			"status", eval.Status,
			"readiness", eval.Readiness,
		)
		return result, nil
	}
	return nil, fmt.Errorf("evaluate gate: %w", lastErr)
}

// EnqueueEvaluation queues a background evaluation unless one is already
// runnable for the project. Returns (job, created, err).
func (s *gateService) EnqueueEvaluation(dbc dbctx.Context, ownerUserID, projectID uuid.UUID) (*types.JobRun, bool, error) {
	if ownerUserID == uuid.Nil {
		return nil, false, fmt.Errorf("missing owner_user_id")
	}
	if projectID == uuid.Nil {
		return nil, false, fmt.Errorf("missing project_id")
	}
	has, err := s.jobs.HasRunnableForEntity(dbc, ownerUserID, "project", projectID, types.JobTypeGateEvaluate)
	if err != nil {
		return nil, false, err
	}
	if has {
		return nil, false, nil
	}

	payload, _ := json.Marshal(map[string]any{"project_id": projectID.String()})
	now := time.Now()
	job := &types.JobRun{
		ID:          uuid.New(),
		OwnerUserID: ownerUserID,
		JobType:     types.JobTypeGateEvaluate,
		EntityType:  "project",
		EntityID:    &projectID,
		Status:      types.JobStatusQueued,
		Stage:       "queued",
		Payload:     datatypes.JSON(payload),
		Result:      datatypes.JSON([]byte(`{}`)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.jobs.Create(dbc, []*types.JobRun{job}); err != nil {
		return nil, false, fmt.Errorf("create job: %w", err)
	}
	return job, true, nil
}

// ReadinessSnapshot reports readiness against every gate's policy at once, so
// a venture sees how far it is from each future bar, not just the current
// one. Evidence is loaded once; per-gate resolution fans out concurrently
// because tenant overrides live in separate rows.
func (s *gateService) ReadinessSnapshot(dbc dbctx.Context, projectID uuid.UUID) ([]GateReadiness, error) {
	project, err := s.projects.GetByID(dbc, projectID)
	if err != nil {
		return nil, err
	}
	items, err := s.evidence.ListByProject(dbc, projectID)
	if err != nil {
		return nil, fmt.Errorf("list evidence: %w", err)
	}
	deref := make([]types.EvidenceItem, 0, len(items))
	for _, it := range items {
		deref = append(deref, *it)
	}
	agg := validation.Aggregate(deref)
	state := types.ValidationState{
		EvidenceQuality:  agg.AverageQuality,
		ExperimentsCount: agg.Experiments,
		EvidenceCount:    agg.Count,
	}

	out := make([]GateReadiness, len(types.GateOrder))
	g, gctx := errgroup.WithContext(dbc.Ctx)
	for i, gate := range types.GateOrder {
		i, gate := i, gate
		g.Go(func() error {
			policy, err := s.policies.Resolve(dbctx.Context{Ctx: gctx}, project.TenantID, gate)
			if err != nil {
				return err
			}
			out[i] = GateReadiness{
				Gate:      gate,
				Readiness: validation.Readiness(state, policy),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// AdvanceStage moves a project to its next gate. Only a Passed current gate
// advances; SCALE is terminal.
func (s *gateService) AdvanceStage(dbc dbctx.Context, projectID uuid.UUID) (*types.Project, error) {
	var advanced *types.Project
	var lastErr error
	for attempt := 0; attempt < casRetries; attempt++ {
		project, err := s.projects.GetByID(dbc, projectID)
		if err != nil {
			return nil, err
		}
		if !validation.CanProgress(project.Stage, project.GateStatus) {
			return nil, fmt.Errorf("%w: gate %s not passed or terminal", errors.ErrConflict, project.Stage)
		}
		next, _ := validation.NextGate(project.Stage)

		err = s.projects.AdvanceStage(dbc, project.ID, project.Version, next)
		if err == errors.ErrConflict {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}
		project.Stage = next
		project.GateStatus = types.StatusPending
		advanced = project
		s.log.Info("Project advanced", "project_id", project.ID, "stage", next)
		return advanced, nil
	}
	return nil, fmt.Errorf("advance stage: %w", lastErr)
}

// RecordEvidence appends immutable evidence rows and reports the project's
// total afterwards.
func (s *gateService) RecordEvidence(dbc dbctx.Context, items []*types.EvidenceItem) ([]*types.EvidenceItem, int64, error) {
	if len(items) == 0 {
		return nil, 0, fmt.Errorf("%w: no evidence items", errors.ErrInvalidArgument)
	}
	for _, it := range items {
		if it.ProjectID == uuid.Nil {
			return nil, 0, fmt.Errorf("%w: evidence missing project_id", errors.ErrInvalidArgument)
		}
		if it.QualityScore < 0 || it.QualityScore > 1 {
			return nil, 0, fmt.Errorf("%w: quality_score outside [0,1]", errors.ErrInvalidArgument)
		}
	}
	created, err := s.evidence.Create(dbc, items)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.evidence.CountByProject(dbc, created[0].ProjectID)
	if err != nil {
		return nil, 0, fmt.Errorf("count evidence: %w", err)
	}
	return created, total, nil
}
