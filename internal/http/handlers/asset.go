package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/luminakids/storyreel-backend/internal/http/response"
	"github.com/luminakids/storyreel-backend/internal/services"
)

type AssetHandler struct {
	assets services.AssetService
}

func NewAssetHandler(assets services.AssetService) *AssetHandler {
	return &AssetHandler{assets: assets}
}

// GET /api/assets/:id
func (h *AssetHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_asset_id", err)
		return
	}
	asset, err := h.assets.Get(requestDBC(c), id)
	if err != nil {
		respondServiceError(c, "asset_not_found", err)
		return
	}
	response.RespondOK(c, gin.H{"asset": asset})
}

// POST /api/assets/:id/approve
func (h *AssetHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_asset_id", err)
		return
	}
	asset, err := h.assets.Approve(requestDBC(c), id)
	if err != nil {
		respondServiceError(c, "approve_asset_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"asset": asset})
}

// POST /api/assets/:id/reject
func (h *AssetHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_asset_id", err)
		return
	}
	asset, err := h.assets.Reject(requestDBC(c), id)
	if err != nil {
		respondServiceError(c, "reject_asset_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"asset": asset})
}

type completeAssetRequest struct {
	FileURL string `json:"file_url"`
}

// POST /api/assets/:id/complete is the external generator's callback.
func (h *AssetHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_asset_id", err)
		return
	}
	var req completeAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	asset, err := h.assets.CompleteGeneration(requestDBC(c), id, req.FileURL)
	if err != nil {
		respondServiceError(c, "complete_asset_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"asset": asset})
}

// GET /api/assets/search?theme=&safe_zone=&class=
func (h *AssetHandler) Search(c *gin.Context) {
	if class := c.Query("class"); class != "" {
		asset, err := h.assets.FindApprovedByClass(requestDBC(c), class)
		if err != nil {
			respondServiceError(c, "search_assets_failed", err)
			return
		}
		response.RespondOK(c, gin.H{"asset": asset})
		return
	}
	theme := c.Query("theme")
	safeZone := c.Query("safe_zone")
	if theme == "" || safeZone == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_query", errMissingSearchParams)
		return
	}
	asset, err := h.assets.FindApprovedByThemeAndSafeZone(requestDBC(c), theme, safeZone)
	if err != nil {
		respondServiceError(c, "search_assets_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"asset": asset})
}
