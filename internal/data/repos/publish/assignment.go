package publish

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
)

type AssignmentRepo interface {
	Create(dbc dbctx.Context, rows []*types.VideoAssignment) ([]*types.VideoAssignment, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.VideoAssignment, error)
	List(dbc dbctx.Context, status string) ([]*types.VideoAssignment, error)
	ListByVideo(dbc dbctx.Context, videoID uuid.UUID) ([]*types.VideoAssignment, error)
	// ListDue returns pending assignments whose publish date has passed.
	ListDue(dbc dbctx.Context, asOf time.Time, limit int) ([]*types.VideoAssignment, error)
	UpdateStatusFrom(dbc dbctx.Context, id uuid.UUID, from string, to string) (bool, error)
}

type assignmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) AssignmentRepo {
	return &assignmentRepo{db: db, log: baseLog.With("repo", "AssignmentRepo")}
}

func (r *assignmentRepo) Create(dbc dbctx.Context, rows []*types.VideoAssignment) ([]*types.VideoAssignment, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.VideoAssignment{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *assignmentRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.VideoAssignment, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.VideoAssignment
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *assignmentRepo) List(dbc dbctx.Context, status string) ([]*types.VideoAssignment, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(dbc.Ctx).Order("publish_date ASC, created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []*types.VideoAssignment
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *assignmentRepo) ListByVideo(dbc dbctx.Context, videoID uuid.UUID) ([]*types.VideoAssignment, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if videoID == uuid.Nil {
		return nil, nil
	}
	var out []*types.VideoAssignment
	if err := t.WithContext(dbc.Ctx).
		Where("video_id = ?", videoID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *assignmentRepo) ListDue(dbc dbctx.Context, asOf time.Time, limit int) ([]*types.VideoAssignment, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if limit <= 0 {
		limit = 100
	}
	var out []*types.VideoAssignment
	if err := t.WithContext(dbc.Ctx).
		Where("status = ? AND publish_date <= ?", types.AssignmentStatusPending, asOf).
		Order("publish_date ASC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *assignmentRepo) UpdateStatusFrom(dbc dbctx.Context, id uuid.UUID, from string, to string) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return false, nil
	}
	res := t.WithContext(dbc.Ctx).
		Model(&types.VideoAssignment{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
