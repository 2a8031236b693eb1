package validation

import (
	"fmt"

	types "github.com/venturegate/validation-backend/internal/domain"
	"github.com/venturegate/validation-backend/internal/jobs/runtime"
	"github.com/venturegate/validation-backend/internal/pkg/dbctx"
	"github.com/venturegate/validation-backend/internal/pkg/logger"
	"github.com/venturegate/validation-backend/internal/services"
)

// EvaluateHandler runs queued gate evaluations. It delegates to the same
// GateService flow the synchronous endpoint uses, so both paths share one set
// of semantics.
type EvaluateHandler struct {
	log   *logger.Logger
	gates services.GateService
}

func NewEvaluateHandler(baseLog *logger.Logger, gates services.GateService) *EvaluateHandler {
	return &EvaluateHandler{
		log:   baseLog.With("handler", "GateEvaluateJob"),
		gates: gates,
	}
}

func (h *EvaluateHandler) Type() string { return types.JobTypeGateEvaluate }

func (h *EvaluateHandler) Run(jc *runtime.Context) error {
	projectID, ok := jc.PayloadUUID("project_id")
	if !ok {
		err := fmt.Errorf("payload missing project_id")
		jc.Fail("validate", err)
		return nil
	}

	jc.Progress("evaluating", 10)

	result, err := h.gates.EvaluateGate(dbctx.Context{Ctx: jc.Ctx}, projectID)
	if err != nil {
		h.log.Warn("Background gate evaluation failed", "project_id", projectID, "error", err)
		jc.Fail("evaluate", err)
		return nil
	}

	jc.Succeed("done", result)
	h.log.Info("Background gate evaluation finished",
		"project_id", projectID,
		"gate", result.Gate,
		"status", result.Status,
	)
	return nil
}
