package repos

import (
	"gorm.io/gorm"

	"github.com/luminakids/storyreel-backend/internal/data/repos/content"
	"github.com/luminakids/storyreel-backend/internal/data/repos/jobs"
	"github.com/luminakids/storyreel-backend/internal/data/repos/publish"
	"github.com/luminakids/storyreel-backend/internal/data/repos/user"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
)

type ProjectRepo = content.ProjectRepo
type AssetRepo = content.AssetRepo
type TemplateRepo = content.TemplateRepo

type AssignmentRepo = publish.AssignmentRepo

type RenderJobRepo = jobs.RenderJobRepo
type SagaRepo = jobs.SagaRepo

type AdminUserRepo = user.AdminUserRepo
type ParentRepo = user.ParentRepo
type ChildRepo = user.ChildRepo

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	return content.NewProjectRepo(db, baseLog)
}
func NewAssetRepo(db *gorm.DB, baseLog *logger.Logger) AssetRepo {
	return content.NewAssetRepo(db, baseLog)
}
func NewTemplateRepo(db *gorm.DB, baseLog *logger.Logger) TemplateRepo {
	return content.NewTemplateRepo(db, baseLog)
}
func NewAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) AssignmentRepo {
	return publish.NewAssignmentRepo(db, baseLog)
}
func NewRenderJobRepo(db *gorm.DB, baseLog *logger.Logger) RenderJobRepo {
	return jobs.NewRenderJobRepo(db, baseLog)
}
func NewSagaRepo(db *gorm.DB, baseLog *logger.Logger) SagaRepo {
	return jobs.NewSagaRepo(db, baseLog)
}
func NewAdminUserRepo(db *gorm.DB, baseLog *logger.Logger) AdminUserRepo {
	return user.NewAdminUserRepo(db, baseLog)
}
func NewParentRepo(db *gorm.DB, baseLog *logger.Logger) ParentRepo {
	return user.NewParentRepo(db, baseLog)
}
func NewChildRepo(db *gorm.DB, baseLog *logger.Logger) ChildRepo {
	return user.NewChildRepo(db, baseLog)
}
