package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/venturegate/validation-backend/internal/domain"
	"github.com/venturegate/validation-backend/internal/http/response"
	"github.com/venturegate/validation-backend/internal/modules/onboarding"
	"github.com/venturegate/validation-backend/internal/pkg/ctxutil"
	"github.com/venturegate/validation-backend/internal/pkg/dbctx"
	pkgerrors "github.com/venturegate/validation-backend/internal/pkg/errors"
	"github.com/venturegate/validation-backend/internal/services"
)

type OnboardingHandler struct {
	sessions services.OnboardingService
}

func NewOnboardingHandler(sessions services.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{sessions: sessions}
}

// POST /api/onboarding/sessions
func (h *OnboardingHandler) StartSession(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", pkgerrors.ErrUnauthorized)
		return
	}
	session, err := h.sessions.StartSession(dbctx.Context{Ctx: c.Request.Context()}, rd.TenantID, rd.UserID)
	if err != nil {
		respondServiceError(c, "start_session_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"session": session})
}

// GET /api/onboarding/sessions
func (h *OnboardingHandler) ListSessions(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", pkgerrors.ErrUnauthorized)
		return
	}
	sessions, err := h.sessions.ListSessions(dbctx.Context{Ctx: c.Request.Context()}, rd.UserID)
	if err != nil {
		respondServiceError(c, "list_sessions_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"sessions": sessions})
}

// GET /api/onboarding/sessions/:id
func (h *OnboardingHandler) GetSession(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	session, err := h.sessions.GetSession(dbctx.Context{Ctx: c.Request.Context()}, sessionID)
	if err != nil {
		respondServiceError(c, "session_not_found", err)
		return
	}
	response.RespondOK(c, gin.H{"session": session})
}

type turnRequest struct {
	Message    string                   `json:"message" binding:"required"`
	Assessment *types.QualityAssessment `json:"assessment" binding:"required"`
}

// POST /api/onboarding/sessions/:id/turns
func (h *OnboardingHandler) ProcessTurn(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	var req turnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	result, err := h.sessions.ProcessTurn(dbctx.Context{Ctx: c.Request.Context()}, sessionID, req.Message, req.Assessment)
	if err != nil {
		respondServiceError(c, "process_turn_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"turn": result})
}

// POST /api/onboarding/sessions/:id/complete
func (h *OnboardingHandler) MarkComplete(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	session, err := h.sessions.MarkComplete(dbctx.Context{Ctx: c.Request.Context()}, sessionID)
	if err != nil {
		respondServiceError(c, "mark_complete_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"session": session})
}

// GET /api/onboarding/sessions/:id/progress
func (h *OnboardingHandler) Progress(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	percent, err := h.sessions.Progress(dbctx.Context{Ctx: c.Request.Context()}, sessionID)
	if err != nil {
		respondServiceError(c, "progress_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"progress_percent": percent})
}

// GET /api/onboarding/stages
func (h *OnboardingHandler) Stages(c *gin.Context) {
	response.RespondOK(c, gin.H{"stages": onboarding.Catalog()})
}
