package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/venturegate/validation-backend/internal/domain"
	"github.com/venturegate/validation-backend/internal/http/response"
	"github.com/venturegate/validation-backend/internal/pkg/ctxutil"
	"github.com/venturegate/validation-backend/internal/pkg/dbctx"
	pkgerrors "github.com/venturegate/validation-backend/internal/pkg/errors"
	"github.com/venturegate/validation-backend/internal/services"
)

type GateHandler struct {
	gates services.GateService
}

func NewGateHandler(gates services.GateService) *GateHandler {
	return &GateHandler{gates: gates}
}

// POST /api/projects/:id/gate/evaluate
func (h *GateHandler) Evaluate(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_project_id", err)
		return
	}
	result, err := h.gates.EvaluateGate(dbctx.Context{Ctx: c.Request.Context()}, projectID)
	if err != nil {
		respondServiceError(c, "evaluate_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"evaluation": result})
}

// POST /api/projects/:id/gate/evaluate-async
func (h *GateHandler) EvaluateAsync(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_project_id", err)
		return
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", pkgerrors.ErrUnauthorized)
		return
	}
	job, created, err := h.gates.EnqueueEvaluation(dbctx.Context{Ctx: c.Request.Context()}, rd.UserID, projectID)
	if err != nil {
		respondServiceError(c, "enqueue_failed", err)
		return
	}
	if !created {
		response.RespondOK(c, gin.H{"queued": false})
		return
	}
	response.RespondAccepted(c, gin.H{"queued": true, "job": job})
}

// GET /api/projects/:id/gate/readiness
func (h *GateHandler) Readiness(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_project_id", err)
		return
	}
	snapshot, err := h.gates.ReadinessSnapshot(dbctx.Context{Ctx: c.Request.Context()}, projectID)
	if err != nil {
		respondServiceError(c, "readiness_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"readiness": snapshot})
}

// POST /api/projects/:id/gate/advance
func (h *GateHandler) Advance(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_project_id", err)
		return
	}
	project, err := h.gates.AdvanceStage(dbctx.Context{Ctx: c.Request.Context()}, projectID)
	if err != nil {
		respondServiceError(c, "advance_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"project": project})
}

type recordEvidenceRequest struct {
	Items []struct {
		Type            string  `json:"type" binding:"required"`
		Strength        string  `json:"strength" binding:"required"`
		QualityScore    float64 `json:"quality_score"`
		IsContradiction bool    `json:"is_contradiction"`
	} `json:"items" binding:"required,min=1"`
}

// POST /api/projects/:id/evidence
func (h *GateHandler) RecordEvidence(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_project_id", err)
		return
	}
	var req recordEvidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	items := make([]*types.EvidenceItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, &types.EvidenceItem{
			ID:              uuid.New(),
			ProjectID:       projectID,
			Type:            types.EvidenceType(it.Type),
			Strength:        types.EvidenceStrength(it.Strength),
			QualityScore:    it.QualityScore,
			IsContradiction: it.IsContradiction,
		})
	}
	created, total, err := h.gates.RecordEvidence(dbctx.Context{Ctx: c.Request.Context()}, items)
	if err != nil {
		respondServiceError(c, "record_evidence_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"items": created, "total_evidence": total})
}

func respondServiceError(c *gin.Context, code string, err error) {
	switch {
	case errors.Is(err, pkgerrors.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, code, err)
	case errors.Is(err, pkgerrors.ErrConflict):
		response.RespondError(c, http.StatusConflict, code, err)
	case errors.Is(err, pkgerrors.ErrInvalidArgument):
		response.RespondError(c, http.StatusBadRequest, code, err)
	case errors.Is(err, pkgerrors.ErrUnauthorized):
		response.RespondError(c, http.StatusUnauthorized, code, err)
	default:
		response.RespondError(c, http.StatusInternalServerError, code, err)
	}
}
