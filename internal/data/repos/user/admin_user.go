package user

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
)

type AdminUserRepo interface {
	Create(dbc dbctx.Context, rows []*types.AdminUser) ([]*types.AdminUser, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.AdminUser, error)
	GetByEmail(dbc dbctx.Context, email string) (*types.AdminUser, error)
}

type adminUserRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAdminUserRepo(db *gorm.DB, baseLog *logger.Logger) AdminUserRepo {
	return &adminUserRepo{db: db, log: baseLog.With("repo", "AdminUserRepo")}
}

func (r *adminUserRepo) Create(dbc dbctx.Context, rows []*types.AdminUser) ([]*types.AdminUser, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.AdminUser{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *adminUserRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.AdminUser, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.AdminUser
	err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *adminUserRepo) GetByEmail(dbc dbctx.Context, email string) (*types.AdminUser, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if email == "" {
		return nil, nil
	}
	var row types.AdminUser
	err := t.WithContext(dbc.Ctx).Where("email = ?", email).Limit(1).Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}
