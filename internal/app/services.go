package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/luminakids/storyreel-backend/internal/clients/genapi"
	redisbus "github.com/luminakids/storyreel-backend/internal/clients/redis"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
	"github.com/luminakids/storyreel-backend/internal/services"
	"github.com/luminakids/storyreel-backend/internal/worker"
)

type Services struct {
	Auth     services.AuthService
	Project  services.ProjectService
	Asset    services.AssetService
	Template services.TemplateService
	Gate     services.GateService
	Publish  services.PublishService
	Render   services.RenderJobService
	Child    services.ChildService

	Media services.MediaStore
	Gen   genapi.Client
	Bus   redisbus.StatusBus

	RenderWorker *worker.RenderWorker
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) (Services, error) {
	log.Info("Wiring services...")
	var s Services

	auth, err := services.NewAuthService(log, r.AdminUser)
	if err != nil {
		return s, fmt.Errorf("init auth service: %w", err)
	}
	s.Auth = auth

	if cfg.GenAPIBaseURL != "" {
		gen, err := genapi.NewClient(log)
		if err != nil {
			return s, fmt.Errorf("init genapi client: %w", err)
		}
		s.Gen = gen
	} else {
		log.Warn("GENAPI_BASE_URL not set, generation disabled")
	}

	if cfg.GCSBucket != "" {
		media, err := services.NewMediaStore(log)
		if err != nil {
			return s, fmt.Errorf("init media store: %w", err)
		}
		s.Media = media
	} else {
		log.Warn("GCS_BUCKET_NAME not set, media re-hosting disabled")
	}

	if cfg.RedisAddr != "" {
		bus, err := redisbus.NewStatusBus(log)
		if err != nil {
			return s, fmt.Errorf("init status bus: %w", err)
		}
		s.Bus = bus
	} else {
		log.Warn("REDIS_ADDR not set, job status events disabled")
	}

	s.Project = services.NewProjectService(db, log, r.Project)
	s.Asset = services.NewAssetService(db, log, r.Asset, r.Project, r.Saga, s.Gen, s.Media)
	s.Template = services.NewTemplateService(log, r.Template)
	s.Gate = services.NewGateService(log, r.Template, r.Asset)
	s.Publish = services.NewPublishService(log, r.Assignment, r.Child)
	s.Render = services.NewRenderJobService(db, log, r.RenderJob, r.Project, r.Asset, s.Gate, s.Bus)
	s.Child = services.NewChildService(log, r.Parent, r.Child, r.Asset)

	s.RenderWorker = worker.NewRenderWorker(log, r.RenderJob, r.Project, s.Render, s.Gen, s.Media)

	return s, nil
}
