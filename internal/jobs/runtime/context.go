package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/venturegate/validation-backend/internal/data/repos"
	types "github.com/venturegate/validation-backend/internal/domain"
	"github.com/venturegate/validation-backend/internal/pkg/dbctx"
)

// Context is the execution handle for a single claimed job run. Handlers
// never touch the job_run row directly; Progress, Fail and Succeed are the
// only sanctioned lifecycle transitions.
type Context struct {
	Ctx     context.Context
	DB      *gorm.DB
	Job     *types.JobRun
	Repo    repos.JobRunRepo
	payload map[string]any
}

// NewContext eagerly decodes the job payload so handlers access inputs via
// Payload()/PayloadUUID(). A malformed payload decodes to an empty map;
// handlers validate their required fields.
func NewContext(ctx context.Context, db *gorm.DB, job *types.JobRun, repo repos.JobRunRepo) *Context {
	c := &Context{
		Ctx:  ctx,
		DB:   db,
		Job:  job,
		Repo: repo,
	}
	_ = c.decodePayload()
	return c
}

func (c *Context) decodePayload() error {
	if c.Job == nil {
		return nil
	}
	if len(c.Job.Payload) == 0 {
		c.payload = map[string]any{}
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(c.Job.Payload, &m); err != nil {
		c.payload = map[string]any{}
		return err
	}
	c.payload = m
	return nil
}

// Payload never returns nil.
func (c *Context) Payload() map[string]any {
	if c.payload == nil {
		c.payload = map[string]any{}
	}
	return c.payload
}

// PayloadUUID reads a payload field and parses it as a UUID; (uuid.Nil,
// false) on anything missing or unparseable.
func (c *Context) PayloadUUID(key string) (uuid.UUID, bool) {
	v, ok := c.Payload()[key]
	if !ok || v == nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(fmt.Sprint(v))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Progress publishes a non-terminal status update.
func (c *Context) Progress(stage string, pct int) {
	if c == nil || c.Repo == nil || c.Job == nil || c.Job.ID == uuid.Nil {
		return
	}
	ctx := c.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	now := time.Now()
	_ = c.Repo.UpdateFields(dbctx.Context{Ctx: ctx}, c.Job.ID, map[string]any{
		"stage":        stage,
		"progress":     pct,
		"heartbeat_at": now,
		"updated_at":   now,
	})
	c.Job.Stage = stage
	c.Job.Progress = pct
	c.Job.HeartbeatAt = &now
	c.Job.UpdatedAt = now
}

// Fail marks the run terminally failed and clears the worker lock so retry
// eligibility is decided by the claim query alone.
func (c *Context) Fail(stage string, err error) {
	if c == nil || c.Repo == nil || c.Job == nil || c.Job.ID == uuid.Nil {
		return
	}
	ctx := c.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	now := time.Now()
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	_ = c.Repo.UpdateFields(dbctx.Context{Ctx: ctx}, c.Job.ID, map[string]any{
		"status":        types.JobStatusFailed,
		"stage":         stage,
		"error":         msg,
		"last_error_at": now,
		"locked_at":     nil,
		"updated_at":    now,
	})
	c.Job.Status = types.JobStatusFailed
	c.Job.Stage = stage
	c.Job.Error = msg
	c.Job.LastErrorAt = &now
	c.Job.LockedAt = nil
	c.Job.UpdatedAt = now
}

// Succeed marks the run terminally succeeded with a serialized result.
func (c *Context) Succeed(finalStage string, result any) {
	if c == nil || c.Repo == nil || c.Job == nil || c.Job.ID == uuid.Nil {
		return
	}
	ctx := c.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	now := time.Now()
	var res datatypes.JSON
	if result != nil {
		b, _ := json.Marshal(result)
		res = datatypes.JSON(b)
	}
	_ = c.Repo.UpdateFields(dbctx.Context{Ctx: ctx}, c.Job.ID, map[string]any{
		"status":       types.JobStatusSucceeded,
		"stage":        finalStage,
		"progress":     100,
		"error":        "",
		"result":       res,
		"locked_at":    nil,
		"heartbeat_at": now,
		"updated_at":   now,
	})
	c.Job.Status = types.JobStatusSucceeded
	c.Job.Stage = finalStage
	c.Job.Progress = 100
	c.Job.Error = ""
	c.Job.Result = res
	c.Job.LockedAt = nil
	c.Job.HeartbeatAt = &now
	c.Job.UpdatedAt = now
}
