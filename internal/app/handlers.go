package app

import (
	apihttp "github.com/luminakids/storyreel-backend/internal/http"
	httpH "github.com/luminakids/storyreel-backend/internal/http/handlers"
	httpMW "github.com/luminakids/storyreel-backend/internal/http/middleware"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
)

type Handlers struct {
	Auth       *httpH.AuthHandler
	Project    *httpH.ProjectHandler
	Asset      *httpH.AssetHandler
	Template   *httpH.TemplateHandler
	Job        *httpH.JobHandler
	Assignment *httpH.AssignmentHandler
	Child      *httpH.ChildHandler
	Health     *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:       httpH.NewAuthHandler(s.Auth),
		Project:    httpH.NewProjectHandler(s.Project, s.Asset),
		Asset:      httpH.NewAssetHandler(s.Asset),
		Template:   httpH.NewTemplateHandler(s.Template, s.Gate),
		Job:        httpH.NewJobHandler(s.Render, s.Bus),
		Assignment: httpH.NewAssignmentHandler(s.Publish),
		Child:      httpH.NewChildHandler(s.Child),
		Health:     httpH.NewHealthHandler(),
	}
}

func wireMiddleware(log *logger.Logger, s Services) *httpMW.AuthMiddleware {
	return httpMW.NewAuthMiddleware(log, s.Auth)
}

func wireRouter(log *logger.Logger, h Handlers, auth *httpMW.AuthMiddleware) *apihttp.Server {
	return apihttp.NewServer(log, apihttp.RouterConfig{
		AuthHandler:       h.Auth,
		AuthMiddleware:    auth,
		ProjectHandler:    h.Project,
		AssetHandler:      h.Asset,
		TemplateHandler:   h.Template,
		JobHandler:        h.Job,
		AssignmentHandler: h.Assignment,
		ChildHandler:      h.Child,
		HealthHandler:     h.Health,
	})
}
