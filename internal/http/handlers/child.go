package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/luminakids/storyreel-backend/internal/http/response"
	"github.com/luminakids/storyreel-backend/internal/services"
)

type ChildHandler struct {
	children services.ChildService
}

func NewChildHandler(children services.ChildService) *ChildHandler {
	return &ChildHandler{children: children}
}

type createParentRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// POST /api/parents
func (h *ChildHandler) CreateParent(c *gin.Context) {
	var req createParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	parent, err := h.children.CreateParent(requestDBC(c), req.Email, req.Name)
	if err != nil {
		respondServiceError(c, "create_parent_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"parent": parent})
}

// GET /api/parents
func (h *ChildHandler) ListParents(c *gin.Context) {
	parents, err := h.children.ListParents(requestDBC(c))
	if err != nil {
		respondServiceError(c, "list_parents_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"parents": parents})
}

type createChildRequest struct {
	ParentID        uuid.UUID `json:"parent_id"`
	Name            string    `json:"name"`
	Age             int       `json:"age"`
	PrimaryInterest string    `json:"primary_interest"`
}

// POST /api/children
func (h *ChildHandler) Create(c *gin.Context) {
	var req createChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	child, err := h.children.Create(requestDBC(c), req.ParentID, req.Name, req.Age, req.PrimaryInterest)
	if err != nil {
		respondServiceError(c, "create_child_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"child": child})
}

// GET /api/children?theme=
func (h *ChildHandler) List(c *gin.Context) {
	if theme := c.Query("theme"); theme != "" {
		children, err := h.children.ListByTheme(requestDBC(c), theme)
		if err != nil {
			respondServiceError(c, "list_children_failed", err)
			return
		}
		response.RespondOK(c, gin.H{"children": children})
		return
	}
	children, err := h.children.List(requestDBC(c))
	if err != nil {
		respondServiceError(c, "list_children_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"children": children})
}

// GET /api/children/:id
func (h *ChildHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_child_id", err)
		return
	}
	child, err := h.children.Get(requestDBC(c), id)
	if err != nil {
		respondServiceError(c, "child_not_found", err)
		return
	}
	response.RespondOK(c, gin.H{"child": child})
}

// GET /api/children/:id/personalized-image?safe_zone=
func (h *ChildHandler) PersonalizedImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_child_id", err)
		return
	}
	safeZone := c.DefaultQuery("safe_zone", "all_ok")
	asset, err := h.children.PersonalizedImage(requestDBC(c), id, safeZone)
	if err != nil {
		respondServiceError(c, "personalized_image_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"asset": asset})
}
