package onboarding

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/venturegate/validation-backend/internal/domain"
	"github.com/venturegate/validation-backend/internal/pkg/dbctx"
	"github.com/venturegate/validation-backend/internal/pkg/errors"
	"github.com/venturegate/validation-backend/internal/pkg/logger"
)

type SessionRepo interface {
	Create(dbc dbctx.Context, sessions []*types.Session) ([]*types.Session, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Session, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Session, error)
	UpdateTurn(dbc dbctx.Context, id uuid.UUID, expectedVersion int64, updates map[string]any) error
	MarkComplete(dbc dbctx.Context, id uuid.UUID, expectedVersion int64) error
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	return &sessionRepo{db: db, log: baseLog.With("repo", "SessionRepo")}
}

func (r *sessionRepo) Create(dbc dbctx.Context, sessions []*types.Session) ([]*types.Session, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(sessions) == 0 {
		return []*types.Session{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Session, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, errors.ErrNotFound
	}
	var session types.Session
	err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&session).Error
	if err != nil {
		return nil, err
	}
	if session.ID == uuid.Nil {
		return nil, errors.ErrNotFound
	}
	return &session, nil
}

func (r *sessionRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Session, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Session
	if userID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateTurn persists the outcome of one processed turn (stage, message
// count, merged data) behind a compare-and-swap on the version column. Zero
// rows affected means a concurrent turn won; callers re-read and retry.
func (r *sessionRepo) UpdateTurn(dbc dbctx.Context, id uuid.UUID, expectedVersion int64, updates map[string]any) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return errors.ErrNotFound
	}
	if updates == nil {
		updates = map[string]any{}
	}
	updates["version"] = gorm.Expr("version + 1")
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.Session{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.ErrConflict
	}
	return nil
}

func (r *sessionRepo) MarkComplete(dbc dbctx.Context, id uuid.UUID, expectedVersion int64) error {
	return r.UpdateTurn(dbc, id, expectedVersion, map[string]any{
		"completed_at": time.Now(),
	})
}
