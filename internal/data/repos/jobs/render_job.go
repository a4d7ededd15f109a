package jobs

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
)

type RenderJobRepo interface {
	Create(dbc dbctx.Context, rows []*types.RenderJob) ([]*types.RenderJob, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.RenderJob, error)
	List(dbc dbctx.Context, status string, limit int) ([]*types.RenderJob, error)
	// ClaimNextPending locks and flips the oldest pending job to in_progress,
	// stamping started_at and heartbeat_at. Returns nil when nothing is
	// claimable. Stale in_progress jobs whose heartbeat is older than
	// staleRunning are reclaimed too (worker crashed mid-render).
	ClaimNextPending(dbc dbctx.Context, staleRunning time.Duration) (*types.RenderJob, error)
	Heartbeat(dbc dbctx.Context, id uuid.UUID) error
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	// UpdateFieldsIfStatus applies updates only while the row holds one of
	// the allowed statuses. Returns false when the guard blocked the write.
	UpdateFieldsIfStatus(dbc dbctx.Context, id uuid.UUID, allowedStatuses []string, updates map[string]interface{}) (bool, error)
}

type renderJobRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRenderJobRepo(db *gorm.DB, baseLog *logger.Logger) RenderJobRepo {
	return &renderJobRepo{db: db, log: baseLog.With("repo", "RenderJobRepo")}
}

func (r *renderJobRepo) Create(dbc dbctx.Context, rows []*types.RenderJob) ([]*types.RenderJob, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.RenderJob{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *renderJobRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.RenderJob, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.RenderJob
	err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *renderJobRepo) List(dbc dbctx.Context, status string, limit int) ([]*types.RenderJob, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if limit <= 0 {
		limit = 100
	}
	q := t.WithContext(dbc.Ctx).Order("created_at DESC").Limit(limit)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []*types.RenderJob
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *renderJobRepo) ClaimNextPending(dbc dbctx.Context, staleRunning time.Duration) (*types.RenderJob, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	now := time.Now()
	staleCutoff := now.Add(-staleRunning)
	var claimed *types.RenderJob
	err := t.WithContext(dbc.Ctx).Transaction(func(txx *gorm.DB) error {
		var job types.RenderJob
		q := txx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where(`
        (
          status = ?
          OR (
            status = ?
            AND heartbeat_at IS NOT NULL
            AND heartbeat_at < ?
          )
        )
      `, types.JobStatusPending, types.JobStatusInProgress, staleCutoff).
			Order("created_at ASC")
		qErr := q.First(&job).Error
		if errors.Is(qErr, gorm.ErrRecordNotFound) {
			return nil
		}
		if qErr != nil {
			return qErr
		}
		uErr := txx.Model(&types.RenderJob{}).
			Where("id = ?", job.ID).
			Updates(map[string]interface{}{
				"status":       types.JobStatusInProgress,
				"started_at":   now,
				"heartbeat_at": now,
				"updated_at":   now,
			}).Error
		if uErr != nil {
			return uErr
		}
		claimed = &job
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

func (r *renderJobRepo) Heartbeat(dbc dbctx.Context, id uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	now := time.Now()
	return t.WithContext(dbc.Ctx).
		Model(&types.RenderJob{}).
		Where("id = ? AND status = ?", id, types.JobStatusInProgress).
		Updates(map[string]interface{}{
			"heartbeat_at": now,
			"updated_at":   now,
		}).Error
}

func (r *renderJobRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.RenderJob{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *renderJobRepo) UpdateFieldsIfStatus(dbc dbctx.Context, id uuid.UUID, allowedStatuses []string, updates map[string]interface{}) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil || len(allowedStatuses) == 0 {
		return false, nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}

	q := t.WithContext(dbc.Ctx).
		Model(&types.RenderJob{}).
		Where("id = ?", id)
	if len(allowedStatuses) == 1 {
		q = q.Where("status = ?", allowedStatuses[0])
	} else {
		q = q.Where("status IN ?", allowedStatuses)
	}

	res := q.Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
