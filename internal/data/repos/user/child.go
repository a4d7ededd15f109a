package user

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
)

type ChildRepo interface {
	Create(dbc dbctx.Context, rows []*types.Child) ([]*types.Child, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Child, error)
	List(dbc dbctx.Context) ([]*types.Child, error)
	ListByTheme(dbc dbctx.Context, theme string) ([]*types.Child, error)
}

type childRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChildRepo(db *gorm.DB, baseLog *logger.Logger) ChildRepo {
	return &childRepo{db: db, log: baseLog.With("repo", "ChildRepo")}
}

func (r *childRepo) Create(dbc dbctx.Context, rows []*types.Child) ([]*types.Child, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Child{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *childRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Child, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Child
	err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *childRepo) List(dbc dbctx.Context) ([]*types.Child, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Child
	if err := t.WithContext(dbc.Ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *childRepo) ListByTheme(dbc dbctx.Context, theme string) ([]*types.Child, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if theme == "" {
		return nil, nil
	}
	var out []*types.Child
	if err := t.WithContext(dbc.Ctx).
		Where("lower(primary_interest) = lower(?)", theme).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
