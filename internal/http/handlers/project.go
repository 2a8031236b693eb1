package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/venturegate/validation-backend/internal/http/response"
	"github.com/venturegate/validation-backend/internal/pkg/ctxutil"
	"github.com/venturegate/validation-backend/internal/pkg/dbctx"
	pkgerrors "github.com/venturegate/validation-backend/internal/pkg/errors"
	"github.com/venturegate/validation-backend/internal/services"
)

type ProjectHandler struct {
	projects services.ProjectService
}

func NewProjectHandler(projects services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type createProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", pkgerrors.ErrUnauthorized)
		return
	}
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	project, err := h.projects.Create(dbctx.Context{Ctx: c.Request.Context()}, rd.TenantID, rd.UserID, req.Name)
	if err != nil {
		respondServiceError(c, "create_project_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"project": project})
}

// GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_project_id", err)
		return
	}
	project, err := h.projects.Get(dbctx.Context{Ctx: c.Request.Context()}, projectID)
	if err != nil {
		respondServiceError(c, "project_not_found", err)
		return
	}
	response.RespondOK(c, gin.H{"project": project})
}

// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", pkgerrors.ErrUnauthorized)
		return
	}
	projects, err := h.projects.ListForTenant(dbctx.Context{Ctx: c.Request.Context()}, rd.TenantID)
	if err != nil {
		respondServiceError(c, "list_projects_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"projects": projects})
}
