package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/luminakids/storyreel-backend/internal/http/response"
	"github.com/luminakids/storyreel-backend/internal/services"
)

type ProjectHandler struct {
	projects services.ProjectService
	assets   services.AssetService
}

func NewProjectHandler(projects services.ProjectService, assets services.AssetService) *ProjectHandler {
	return &ProjectHandler{projects: projects, assets: assets}
}

type createProjectRequest struct {
	Title     string `json:"title"`
	Theme     string `json:"theme"`
	TargetAge string `json:"target_age"`
}

// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	project, err := h.projects.Create(requestDBC(c), req.Title, req.Theme, req.TargetAge)
	if err != nil {
		respondServiceError(c, "create_project_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"project": project})
}

// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projects.List(requestDBC(c))
	if err != nil {
		respondServiceError(c, "list_projects_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"projects": projects})
}

// GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_project_id", err)
		return
	}
	project, err := h.projects.Get(requestDBC(c), id)
	if err != nil {
		respondServiceError(c, "project_not_found", err)
		return
	}
	response.RespondOK(c, gin.H{"project": project})
}

type advanceStatusRequest struct {
	Status string `json:"status"`
}

// POST /api/projects/:id/status
func (h *ProjectHandler) AdvanceStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_project_id", err)
		return
	}
	var req advanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	project, err := h.projects.AdvanceStatus(requestDBC(c), id, req.Status)
	if err != nil {
		respondServiceError(c, "advance_status_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"project": project})
}

type promptsRequest struct {
	Template    string   `json:"template"`
	PromptCount int      `json:"prompt_count"`
	AspectRatio string   `json:"aspect_ratio"`
	SafeZones   []string `json:"safe_zones"`
}

// POST /api/projects/:id/prompts
func (h *ProjectHandler) BuildPrompts(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_project_id", err)
		return
	}
	var req promptsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	project, err := h.projects.Get(requestDBC(c), id)
	if err != nil {
		respondServiceError(c, "project_not_found", err)
		return
	}
	groups, err := h.assets.BuildPromptGroups(c.Request.Context(), project, req.Template, req.PromptCount, req.AspectRatio, req.SafeZones)
	if err != nil {
		respondServiceError(c, "build_prompts_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"groups": groups})
}

type generateRequest struct {
	Groups []services.PromptGroup `json:"groups"`
}

// POST /api/projects/:id/generate
func (h *ProjectHandler) Generate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_project_id", err)
		return
	}
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	assets, err := h.assets.GenerateForProject(requestDBC(c), id, req.Groups)
	if err != nil {
		respondServiceError(c, "generate_assets_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"assets": assets})
}

// GET /api/projects/:id/assets
func (h *ProjectHandler) ListAssets(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_project_id", err)
		return
	}
	assets, err := h.assets.ListByProject(requestDBC(c), id)
	if err != nil {
		respondServiceError(c, "list_assets_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"assets": assets})
}
