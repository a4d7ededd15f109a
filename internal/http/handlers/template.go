package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/http/response"
	"github.com/luminakids/storyreel-backend/internal/services"
)

type TemplateHandler struct {
	templates services.TemplateService
	gate      services.GateService
}

func NewTemplateHandler(templates services.TemplateService, gate services.GateService) *TemplateHandler {
	return &TemplateHandler{templates: templates, gate: gate}
}

type createTemplateRequest struct {
	Name           string                   `json:"name"`
	TemplateType   string                   `json:"template_type"`
	GlobalElements []types.AssetRequirement `json:"global_elements"`
	Parts          []types.TemplatePart     `json:"parts"`
}

// POST /api/templates
func (h *TemplateHandler) Create(c *gin.Context) {
	var req createTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	tpl, err := h.templates.Create(requestDBC(c), req.Name, req.TemplateType, req.GlobalElements, req.Parts)
	if err != nil {
		respondServiceError(c, "create_template_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"template": tpl})
}

// GET /api/templates
func (h *TemplateHandler) List(c *gin.Context) {
	tpls, err := h.templates.List(requestDBC(c))
	if err != nil {
		respondServiceError(c, "list_templates_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"templates": tpls})
}

// GET /api/templates/:id
func (h *TemplateHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_template_id", err)
		return
	}
	tpl, err := h.templates.Get(requestDBC(c), id)
	if err != nil {
		respondServiceError(c, "template_not_found", err)
		return
	}
	response.RespondOK(c, gin.H{"template": tpl})
}

// GET /api/templates/:id/readiness runs the approval gate without side
// effects so reviewers can see what still blocks assembly.
func (h *TemplateHandler) Readiness(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_template_id", err)
		return
	}
	ready, resolutions, err := h.gate.IsReady(requestDBC(c), id)
	if err != nil {
		respondServiceError(c, "readiness_check_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ready": ready, "requirements": resolutions})
}
