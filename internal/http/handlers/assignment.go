package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/luminakids/storyreel-backend/internal/http/response"
	"github.com/luminakids/storyreel-backend/internal/services"
)

type AssignmentHandler struct {
	publisher services.PublishService
}

func NewAssignmentHandler(publisher services.PublishService) *AssignmentHandler {
	return &AssignmentHandler{publisher: publisher}
}

type publishRequest struct {
	VideoID     uuid.UUID                    `json:"video_id"`
	Assignments []services.AssignmentInput   `json:"assignments"`
}

// POST /api/assignments/preview
func (h *AssignmentHandler) Preview(c *gin.Context) {
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	rows, err := h.publisher.PreviewAssignments(req.VideoID, req.Assignments)
	if err != nil {
		respondServiceError(c, "preview_assignments_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"assignments": rows})
}

// POST /api/assignments
func (h *AssignmentHandler) Publish(c *gin.Context) {
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	rows, err := h.publisher.Publish(requestDBC(c), req.VideoID, req.Assignments)
	if err != nil {
		respondServiceError(c, "publish_assignments_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"assignments": rows})
}

// GET /api/assignments?status=
func (h *AssignmentHandler) List(c *gin.Context) {
	rows, err := h.publisher.List(requestDBC(c), c.Query("status"))
	if err != nil {
		respondServiceError(c, "list_assignments_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"assignments": rows})
}

// GET /api/videos/:id/assignments
func (h *AssignmentHandler) ListByVideo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_video_id", err)
		return
	}
	rows, err := h.publisher.ListByVideo(requestDBC(c), id)
	if err != nil {
		respondServiceError(c, "list_assignments_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"assignments": rows})
}

// POST /api/assignments/:id/archive
func (h *AssignmentHandler) Archive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_assignment_id", err)
		return
	}
	if err := h.publisher.Archive(requestDBC(c), id); err != nil {
		respondServiceError(c, "archive_assignment_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"archived": true})
}
