package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/venturegate/validation-backend/internal/domain"
	"github.com/venturegate/validation-backend/internal/http/response"
	"github.com/venturegate/validation-backend/internal/modules/validation"
	"github.com/venturegate/validation-backend/internal/pkg/ctxutil"
	"github.com/venturegate/validation-backend/internal/pkg/dbctx"
	pkgerrors "github.com/venturegate/validation-backend/internal/pkg/errors"
	"github.com/venturegate/validation-backend/internal/services"
)

type PolicyHandler struct {
	policies services.PolicyService
}

func NewPolicyHandler(policies services.PolicyService) *PolicyHandler {
	return &PolicyHandler{policies: policies}
}

// GET /api/policies/:gate
func (h *PolicyHandler) GetEffective(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", pkgerrors.ErrUnauthorized)
		return
	}
	gate := types.GateID(c.Param("gate"))
	policy, err := h.policies.Resolve(dbctx.Context{Ctx: c.Request.Context()}, rd.TenantID, gate)
	if err != nil {
		respondServiceError(c, "resolve_policy_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"policy": policy})
}

// PUT /api/policies/:gate
func (h *PolicyHandler) SetOverride(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", pkgerrors.ErrUnauthorized)
		return
	}
	gate := types.GateID(c.Param("gate"))
	var fields validation.OverrideFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	override, err := h.policies.SetOverride(dbctx.Context{Ctx: c.Request.Context()}, rd.TenantID, gate, fields)
	if err != nil {
		respondServiceError(c, "set_override_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"override": override})
}

// DELETE /api/policies/:gate
func (h *PolicyHandler) ClearOverride(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", pkgerrors.ErrUnauthorized)
		return
	}
	gate := types.GateID(c.Param("gate"))
	if err := h.policies.ClearOverride(dbctx.Context{Ctx: c.Request.Context()}, rd.TenantID, gate); err != nil {
		respondServiceError(c, "clear_override_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"cleared": true})
}

// GET /api/policies
func (h *PolicyHandler) ListOverrides(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", pkgerrors.ErrUnauthorized)
		return
	}
	overrides, err := h.policies.ListOverrides(dbctx.Context{Ctx: c.Request.Context()}, rd.TenantID)
	if err != nil {
		respondServiceError(c, "list_overrides_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"overrides": overrides})
}
