package user

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
)

type ParentRepo interface {
	Create(dbc dbctx.Context, rows []*types.Parent) ([]*types.Parent, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Parent, error)
	GetByEmail(dbc dbctx.Context, email string) (*types.Parent, error)
	List(dbc dbctx.Context) ([]*types.Parent, error)
}

type parentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewParentRepo(db *gorm.DB, baseLog *logger.Logger) ParentRepo {
	return &parentRepo{db: db, log: baseLog.With("repo", "ParentRepo")}
}

func (r *parentRepo) Create(dbc dbctx.Context, rows []*types.Parent) ([]*types.Parent, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Parent{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *parentRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Parent, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Parent
	err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *parentRepo) GetByEmail(dbc dbctx.Context, email string) (*types.Parent, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if email == "" {
		return nil, nil
	}
	var row types.Parent
	err := t.WithContext(dbc.Ctx).Where("lower(email) = lower(?)", email).Limit(1).Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *parentRepo) List(dbc dbctx.Context) ([]*types.Parent, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Parent
	if err := t.WithContext(dbc.Ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
