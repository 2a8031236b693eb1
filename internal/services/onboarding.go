package services

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/venturegate/validation-backend/internal/clients/redis"
	"github.com/venturegate/validation-backend/internal/data/repos"
	types "github.com/venturegate/validation-backend/internal/domain"
	"github.com/venturegate/validation-backend/internal/modules/onboarding"
	"github.com/venturegate/validation-backend/internal/pkg/dbctx"
	"github.com/venturegate/validation-backend/internal/pkg/errors"
	"github.com/venturegate/validation-backend/internal/pkg/logger"
)

// TurnResult is what one processed conversational turn reports back to the
// client: the stage the session is now in, whether it just advanced, and the
// display progress.
type TurnResult struct {
	SessionID       uuid.UUID                `json:"session_id"`
	StageNumber     int                      `json:"stage_number"`
	StageName       string                   `json:"stage_name"`
	Advanced        bool                     `json:"advanced"`
	ProgressPercent int                      `json:"progress_percent"`
	Coverage        float64                  `json:"coverage"`
	TopicsCovered   []string                 `json:"topics_covered"`
	CollectedData   map[string]any           `json:"collected_data"`
	Assessment      *types.QualityAssessment `json:"assessment,omitempty"`
	FromCache       bool                     `json:"from_cache"`
}

type OnboardingService interface {
	StartSession(dbc dbctx.Context, tenantID, userID uuid.UUID) (*types.Session, error)
	GetSession(dbc dbctx.Context, sessionID uuid.UUID) (*types.Session, error)
	ListSessions(dbc dbctx.Context, userID uuid.UUID) ([]*types.Session, error)
	ProcessTurn(dbc dbctx.Context, sessionID uuid.UUID, message string, assessment *types.QualityAssessment) (*TurnResult, error)
	MarkComplete(dbc dbctx.Context, sessionID uuid.UUID) (*types.Session, error)
	Progress(dbc dbctx.Context, sessionID uuid.UUID) (int, error)
}

type onboardingService struct {
	db       *gorm.DB
	log      *logger.Logger
	sessions repos.SessionRepo
	cache    redis.AssessmentCache
}

// NewOnboardingService wires the conversation progression flow. cache may be
// nil; turns then always use the supplied assessment.
func NewOnboardingService(db *gorm.DB, baseLog *logger.Logger, sessions repos.SessionRepo, cache redis.AssessmentCache) OnboardingService {
	return &onboardingService{
		db:       db,
		log:      baseLog.With("service", "OnboardingService"),
		sessions: sessions,
		cache:    cache,
	}
}

func (s *onboardingService) StartSession(dbc dbctx.Context, tenantID, userID uuid.UUID) (*types.Session, error) {
	if tenantID == uuid.Nil || userID == uuid.Nil {
		return nil, errors.ErrInvalidArgument
	}
	session := &types.Session{
		ID:            uuid.New(),
		TenantID:      tenantID,
		UserID:        userID,
		StageNumber:   1,
		MessageCount:  0,
		CollectedData: datatypes.JSON([]byte(`{}`)),
	}
	if _, err := s.sessions.Create(dbc, []*types.Session{session}); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s.log.Info("Onboarding session started", "session_id", session.ID, "user_id", userID)
	return session, nil
}

func (s *onboardingService) GetSession(dbc dbctx.Context, sessionID uuid.UUID) (*types.Session, error) {
	return s.sessions.GetByID(dbc, sessionID)
}

func (s *onboardingService) ListSessions(dbc dbctx.Context, userID uuid.UUID) ([]*types.Session, error) {
	if userID == uuid.Nil {
		return nil, errors.ErrInvalidArgument
	}
	return s.sessions.ListByUser(dbc, userID)
}

// ProcessTurn runs the full per-turn pipeline: assessment lookup (cache,
// falling back to the caller-supplied result), data merge, stage advancement,
// and display progress, persisted behind the session's version
// compare-and-swap. A lost race replays the whole pipeline against the fresh
// row.
func (s *onboardingService) ProcessTurn(dbc dbctx.Context, sessionID uuid.UUID, message string, assessment *types.QualityAssessment) (*TurnResult, error) {
	var lastErr error
	for attempt := 0; attempt < casRetries; attempt++ {
		session, err := s.sessions.GetByID(dbc, sessionID)
		if err != nil {
			return nil, err
		}
		if session.Completed() {
			return nil, fmt.Errorf("%w: session already completed", errors.ErrConflict)
		}

		key := onboarding.AssessmentCacheKey(session.ID.String(), session.MessageCount, session.StageNumber, message)
		effective := assessment
		fromCache := false
		if s.cache != nil {
			if cached, cerr := s.cache.Get(dbc.Ctx, key); cerr != nil {
				// Cache trouble never blocks a turn.
				s.log.Warn("Assessment cache read failed", "error", cerr)
			} else if cached != nil {
				effective = cached
				fromCache = true
			}
		}
		if effective == nil {
			return nil, fmt.Errorf("%w: missing assessment", errors.ErrInvalidArgument)
		}
		if s.cache != nil && !fromCache {
			if cerr := s.cache.Set(dbc.Ctx, key, effective); cerr != nil {
				s.log.Warn("Assessment cache write failed", "error", cerr)
			}
		}

		var existing map[string]any
		if len(session.CollectedData) > 0 {
			if err := json.Unmarshal(session.CollectedData, &existing); err != nil {
				return nil, fmt.Errorf("parse collected data: %w", err)
			}
		}
		merged := onboarding.Merge(existing, effective.ExtractedData)
		mergedJSON, err := json.Marshal(merged)
		if err != nil {
			return nil, err
		}

		messageCount := session.MessageCount + 1
		topicsRequired := onboarding.TopicsRequired(session.StageNumber)
		advanced := onboarding.ShouldAdvance(*effective, session.StageNumber, &messageCount, topicsRequired)

		nextStage := session.StageNumber
		nextMessageCount := messageCount
		if advanced {
			nextStage++
			// Message pacing restarts per stage so the fallback rule judges
			// engagement within the current stage only.
			nextMessageCount = 0
		}

		coverage := effective.Coverage
		if topicsRequired > 0 {
			coverage = float64(len(effective.TopicsCovered)) / float64(topicsRequired)
		}

		err = s.sessions.UpdateTurn(dbc, session.ID, session.Version, map[string]any{
			"stage_number":   nextStage,
			"message_count":  nextMessageCount,
			"collected_data": datatypes.JSON(mergedJSON),
		})
		if err == errors.ErrConflict {
			lastErr = err
			s.log.Debug("Turn lost version race, retrying", "session_id", sessionID, "attempt", attempt+1)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("persist turn: %w", err)
		}

		displayCoverage := coverage
		if advanced {
			displayCoverage = 0
		}
		stageName := ""
		if cfg, ok := onboarding.StageByNumber(nextStage); ok {
			stageName = cfg.Name
		}
		result := &TurnResult{
			SessionID:       session.ID,
			StageNumber:     nextStage,
			StageName:       stageName,
			Advanced:        advanced,
			ProgressPercent: onboarding.Percent(nextStage, displayCoverage, false),
			Coverage:        coverage,
			TopicsCovered:   effective.TopicsCovered,
			CollectedData:   merged,
			Assessment:      effective,
			FromCache:       fromCache,
		}
		s.log.Info("Turn processed",
			"session_id", session.ID,
			"stage", nextStage,
			"advanced", advanced,
			"progress", result.ProgressPercent,
			"message", message,
		)
		return result, nil
	}
	return nil, fmt.Errorf("process turn: %w", lastErr)
}

// MarkComplete is the only path to a completed session; stage progression
// alone never gets there because the final stage does not advance.
func (s *onboardingService) MarkComplete(dbc dbctx.Context, sessionID uuid.UUID) (*types.Session, error) {
	var lastErr error
	for attempt := 0; attempt < casRetries; attempt++ {
		session, err := s.sessions.GetByID(dbc, sessionID)
		if err != nil {
			return nil, err
		}
		if session.Completed() {
			return session, nil
		}
		if session.StageNumber < onboarding.TotalStages {
			return nil, fmt.Errorf("%w: session at stage %d of %d", errors.ErrConflict, session.StageNumber, onboarding.TotalStages)
		}
		err = s.sessions.MarkComplete(dbc, session.ID, session.Version)
		if err == errors.ErrConflict {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}
		s.log.Info("Onboarding session completed", "session_id", session.ID)
		return s.sessions.GetByID(dbc, sessionID)
	}
	return nil, fmt.Errorf("mark complete: %w", lastErr)
}

func (s *onboardingService) Progress(dbc dbctx.Context, sessionID uuid.UUID) (int, error) {
	session, err := s.sessions.GetByID(dbc, sessionID)
	if err != nil {
		return 0, err
	}
	if session.Completed() {
		return onboarding.Percent(session.StageNumber, 0, true), nil
	}

	var collected map[string]any
	if len(session.CollectedData) > 0 {
		if err := json.Unmarshal(session.CollectedData, &collected); err != nil {
			return 0, fmt.Errorf("parse collected data: %w", err)
		}
	}

	coverage := 0.0
	if cfg, ok := onboarding.StageByNumber(session.StageNumber); ok && len(cfg.DataToCollect) > 0 {
		covered := 0
		for _, topic := range cfg.DataToCollect {
			if _, ok := collected[topic]; ok {
				covered++
			}
		}
		coverage = float64(covered) / float64(len(cfg.DataToCollect))
	}
	return onboarding.Percent(session.StageNumber, coverage, false), nil
}
