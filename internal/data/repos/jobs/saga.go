package jobs

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
)

type SagaRepo interface {
	Create(dbc dbctx.Context, rows []*types.GenerationSaga) ([]*types.GenerationSaga, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.GenerationSaga, error)
	LockByID(dbc dbctx.Context, id uuid.UUID) (*types.GenerationSaga, error)
	GetLatestByProject(dbc dbctx.Context, projectID uuid.UUID) (*types.GenerationSaga, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error

	AppendActions(dbc dbctx.Context, rows []*types.GenerationSagaAction) ([]*types.GenerationSagaAction, error)
	ListActions(dbc dbctx.Context, sagaID uuid.UUID) ([]*types.GenerationSagaAction, error)
	UpdateActionFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
}

type sagaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSagaRepo(db *gorm.DB, baseLog *logger.Logger) SagaRepo {
	return &sagaRepo{db: db, log: baseLog.With("repo", "SagaRepo")}
}

func (r *sagaRepo) Create(dbc dbctx.Context, rows []*types.GenerationSaga) ([]*types.GenerationSaga, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.GenerationSaga{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *sagaRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.GenerationSaga, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.GenerationSaga
	err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *sagaRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*types.GenerationSaga, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.GenerationSaga
	err := t.WithContext(dbc.Ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *sagaRepo) GetLatestByProject(dbc dbctx.Context, projectID uuid.UUID) (*types.GenerationSaga, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if projectID == uuid.Nil {
		return nil, nil
	}
	var row types.GenerationSaga
	err := t.WithContext(dbc.Ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *sagaRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.GenerationSaga{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *sagaRepo) AppendActions(dbc dbctx.Context, rows []*types.GenerationSagaAction) ([]*types.GenerationSagaAction, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.GenerationSagaAction{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *sagaRepo) ListActions(dbc dbctx.Context, sagaID uuid.UUID) ([]*types.GenerationSagaAction, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if sagaID == uuid.Nil {
		return nil, nil
	}
	var out []*types.GenerationSagaAction
	if err := t.WithContext(dbc.Ctx).
		Where("saga_id = ?", sagaID).
		Order("seq ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sagaRepo) UpdateActionFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.GenerationSagaAction{}).
		Where("id = ?", id).
		Updates(updates).Error
}
