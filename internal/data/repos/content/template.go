package content

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
)

// Templates are authored manually through admin forms and read-only from the
// pipeline's perspective, so the repo surface is small.
type TemplateRepo interface {
	Create(dbc dbctx.Context, rows []*types.VideoTemplate) ([]*types.VideoTemplate, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.VideoTemplate, error)
	List(dbc dbctx.Context) ([]*types.VideoTemplate, error)
}

type templateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTemplateRepo(db *gorm.DB, baseLog *logger.Logger) TemplateRepo {
	return &templateRepo{db: db, log: baseLog.With("repo", "TemplateRepo")}
}

func (r *templateRepo) Create(dbc dbctx.Context, rows []*types.VideoTemplate) ([]*types.VideoTemplate, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.VideoTemplate{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *templateRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.VideoTemplate, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.VideoTemplate
	err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *templateRepo) List(dbc dbctx.Context) ([]*types.VideoTemplate, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.VideoTemplate
	if err := t.WithContext(dbc.Ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
