package app

import (
	"gorm.io/gorm"

	"github.com/luminakids/storyreel-backend/internal/data/repos"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
)

type Repos struct {
	Project    repos.ProjectRepo
	Asset      repos.AssetRepo
	Template   repos.TemplateRepo
	Assignment repos.AssignmentRepo
	RenderJob  repos.RenderJobRepo
	Saga       repos.SagaRepo
	AdminUser  repos.AdminUserRepo
	Parent     repos.ParentRepo
	Child      repos.ChildRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Project:    repos.NewProjectRepo(db, log),
		Asset:      repos.NewAssetRepo(db, log),
		Template:   repos.NewTemplateRepo(db, log),
		Assignment: repos.NewAssignmentRepo(db, log),
		RenderJob:  repos.NewRenderJobRepo(db, log),
		Saga:       repos.NewSagaRepo(db, log),
		AdminUser:  repos.NewAdminUserRepo(db, log),
		Parent:     repos.NewParentRepo(db, log),
		Child:      repos.NewChildRepo(db, log),
	}
}
