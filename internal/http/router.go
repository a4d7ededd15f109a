package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/luminakids/storyreel-backend/internal/http/handlers"
	httpMW "github.com/luminakids/storyreel-backend/internal/http/middleware"
)

type RouterConfig struct {
	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware

	ProjectHandler    *httpH.ProjectHandler
	AssetHandler      *httpH.AssetHandler
	TemplateHandler   *httpH.TemplateHandler
	JobHandler        *httpH.JobHandler
	AssignmentHandler *httpH.AssignmentHandler
	ChildHandler      *httpH.ChildHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Projects and their generation pipeline
		if cfg.ProjectHandler != nil {
			protected.POST("/projects", cfg.ProjectHandler.Create)
			protected.GET("/projects", cfg.ProjectHandler.List)
			protected.GET("/projects/:id", cfg.ProjectHandler.Get)
			protected.POST("/projects/:id/status", cfg.ProjectHandler.AdvanceStatus)
			protected.POST("/projects/:id/prompts", cfg.ProjectHandler.BuildPrompts)
			protected.POST("/projects/:id/generate", cfg.ProjectHandler.Generate)
			protected.GET("/projects/:id/assets", cfg.ProjectHandler.ListAssets)
		}

		// Asset review
		if cfg.AssetHandler != nil {
			protected.GET("/assets/search", cfg.AssetHandler.Search)
			protected.GET("/assets/:id", cfg.AssetHandler.Get)
			protected.POST("/assets/:id/approve", cfg.AssetHandler.Approve)
			protected.POST("/assets/:id/reject", cfg.AssetHandler.Reject)
			protected.POST("/assets/:id/complete", cfg.AssetHandler.Complete)
		}

		// Templates and the approval gate
		if cfg.TemplateHandler != nil {
			protected.POST("/templates", cfg.TemplateHandler.Create)
			protected.GET("/templates", cfg.TemplateHandler.List)
			protected.GET("/templates/:id", cfg.TemplateHandler.Get)
			protected.GET("/templates/:id/readiness", cfg.TemplateHandler.Readiness)
		}

		// Render jobs
		if cfg.JobHandler != nil {
			protected.POST("/jobs", cfg.JobHandler.Submit)
			protected.GET("/jobs", cfg.JobHandler.List)
			protected.GET("/jobs/stream", cfg.JobHandler.Stream)
			protected.GET("/jobs/:id", cfg.JobHandler.Get)
			protected.POST("/jobs/:id/retry", cfg.JobHandler.Retry)
			protected.POST("/jobs/:id/cancel", cfg.JobHandler.Cancel)
		}

		// Publishing
		if cfg.AssignmentHandler != nil {
			protected.POST("/assignments/preview", cfg.AssignmentHandler.Preview)
			protected.POST("/assignments", cfg.AssignmentHandler.Publish)
			protected.GET("/assignments", cfg.AssignmentHandler.List)
			protected.POST("/assignments/:id/archive", cfg.AssignmentHandler.Archive)
			protected.GET("/videos/:id/assignments", cfg.AssignmentHandler.ListByVideo)
		}

		// Children
		if cfg.ChildHandler != nil {
			protected.POST("/parents", cfg.ChildHandler.CreateParent)
			protected.GET("/parents", cfg.ChildHandler.ListParents)
			protected.POST("/children", cfg.ChildHandler.Create)
			protected.GET("/children", cfg.ChildHandler.List)
			protected.GET("/children/:id", cfg.ChildHandler.Get)
			protected.GET("/children/:id/personalized-image", cfg.ChildHandler.PersonalizedImage)
		}
	}

	return r
}
