package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	redisbus "github.com/luminakids/storyreel-backend/internal/clients/redis"
	"github.com/luminakids/storyreel-backend/internal/http/response"
	"github.com/luminakids/storyreel-backend/internal/services"
)

type JobHandler struct {
	renders services.RenderJobService
	bus     redisbus.StatusBus
}

func NewJobHandler(renders services.RenderJobService, bus redisbus.StatusBus) *JobHandler {
	return &JobHandler{renders: renders, bus: bus}
}

type submitJobRequest struct {
	ProjectID  uuid.UUID  `json:"project_id"`
	TemplateID uuid.UUID  `json:"template_id"`
	ChildID    *uuid.UUID `json:"child_id,omitempty"`
}

// POST /api/jobs
func (h *JobHandler) Submit(c *gin.Context) {
	var req submitJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	job, err := h.renders.Submit(requestDBC(c), req.ProjectID, req.TemplateID, req.ChildID)
	if err != nil {
		respondServiceError(c, "submit_job_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"job": job})
}

// GET /api/jobs?status=&limit=
func (h *JobHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", err)
			return
		}
		limit = n
	}
	jobs, err := h.renders.List(requestDBC(c), c.Query("status"), limit)
	if err != nil {
		respondServiceError(c, "list_jobs_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"jobs": jobs})
}

// GET /api/jobs/:id
func (h *JobHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_job_id", err)
		return
	}
	job, err := h.renders.Get(requestDBC(c), id)
	if err != nil {
		respondServiceError(c, "job_not_found", err)
		return
	}
	response.RespondOK(c, gin.H{"job": job})
}

// GET /api/jobs/stream streams job status transitions as server-sent events.
func (h *JobHandler) Stream(c *gin.Context) {
	if h.bus == nil {
		response.RespondError(c, http.StatusServiceUnavailable, "stream_unavailable", fmt.Errorf("status bus not configured"))
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	events := make(chan redisbus.JobStatusEvent, 16)
	err := h.bus.StartForwarder(ctx, func(evt redisbus.JobStatusEvent) {
		select {
		case events <- evt:
		default:
			// Slow client, drop rather than block the bus.
		}
	})
	if err != nil {
		respondServiceError(c, "stream_failed", err)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case evt := <-events:
			c.SSEvent("job-status", evt)
			return true
		}
	})
}

// POST /api/jobs/:id/retry
func (h *JobHandler) Retry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_job_id", err)
		return
	}
	job, err := h.renders.Retry(requestDBC(c), id)
	if err != nil {
		respondServiceError(c, "retry_job_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"job": job})
}

// POST /api/jobs/:id/cancel
func (h *JobHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_job_id", err)
		return
	}
	job, err := h.renders.Cancel(requestDBC(c), id)
	if err != nil {
		respondServiceError(c, "cancel_job_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"job": job})
}
