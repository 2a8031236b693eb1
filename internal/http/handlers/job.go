package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/venturegate/validation-backend/internal/data/repos"
	types "github.com/venturegate/validation-backend/internal/domain"
	"github.com/venturegate/validation-backend/internal/http/response"
	"github.com/venturegate/validation-backend/internal/pkg/ctxutil"
	"github.com/venturegate/validation-backend/internal/pkg/dbctx"
	pkgerrors "github.com/venturegate/validation-backend/internal/pkg/errors"
)

type JobHandler struct {
	jobs repos.JobRunRepo
}

func NewJobHandler(jobs repos.JobRunRepo) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// GET /api/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_job_id", err)
		return
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", pkgerrors.ErrUnauthorized)
		return
	}
	rows, err := h.jobs.GetByIDs(dbctx.Context{Ctx: c.Request.Context()}, []uuid.UUID{jobID})
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "job_lookup_failed", err)
		return
	}
	if len(rows) == 0 || rows[0] == nil || rows[0].OwnerUserID != rd.UserID {
		response.RespondError(c, http.StatusNotFound, "job_not_found", pkgerrors.ErrNotFound)
		return
	}
	response.RespondOK(c, gin.H{"job": rows[0]})
}

// GET /api/projects/:id/gate/jobs/latest
func (h *JobHandler) GetLatestEvaluation(c *gin.Context) {
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
	job, err := h.jobs.GetLatestByEntity(dbctx.Context{Ctx: c.Request.Context()}, rd.UserID, "project", projectID, types.JobTypeGateEvaluate)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "job_lookup_failed", err)
		return
	}
	if job == nil {
		response.RespondError(c, http.StatusNotFound, "job_not_found", pkgerrors.ErrNotFound)
		return
	}
	response.RespondOK(c, gin.H{"job": job})
}
