package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luminakids/storyreel-backend/internal/http/response"
	"github.com/luminakids/storyreel-backend/internal/services"
)

type AuthHandler struct {
	auth services.AuthService
}

func NewAuthHandler(auth services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	admin, err := h.auth.Register(requestDBC(c), req.Email, req.Password, req.Name, req.Role)
	if err != nil {
		respondServiceError(c, "register_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"admin": admin})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	token, admin, err := h.auth.Login(requestDBC(c), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, "login_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"token": token, "admin": admin})
}
