package content

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
)

type AssetRepo interface {
	Create(dbc dbctx.Context, rows []*types.Asset) ([]*types.Asset, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Asset, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Asset, error)
	ListByProject(dbc dbctx.Context, projectID uuid.UUID) ([]*types.Asset, error)
	CountByProjectAndStatuses(dbc dbctx.Context, projectID uuid.UUID, statuses []string) (int64, error)
	// UpdateFieldsUnlessStatus applies updates only while the row is not in
	// one of the disallowed statuses. Returns false when the guard blocked
	// the write.
	UpdateFieldsUnlessStatus(dbc dbctx.Context, id uuid.UUID, disallowedStatuses []string, updates map[string]interface{}) (bool, error)
	// FindApprovedByThemeAndSafeZone returns the newest approved image whose
	// metadata theme contains the given theme (case-insensitive) and whose
	// review safe-zone list contains the requested zone tag.
	FindApprovedByThemeAndSafeZone(dbc dbctx.Context, theme string, safeZone string) (*types.Asset, error)
	// FindApprovedByClass returns the newest approved asset tagged with the
	// exact audio class.
	FindApprovedByClass(dbc dbctx.Context, assetClass string) (*types.Asset, error)
	// HardDeleteByIDs removes rows entirely. Used by saga compensation.
	HardDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type assetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssetRepo(db *gorm.DB, baseLog *logger.Logger) AssetRepo {
	return &assetRepo{db: db, log: baseLog.With("repo", "AssetRepo")}
}

func (r *assetRepo) Create(dbc dbctx.Context, rows []*types.Asset) ([]*types.Asset, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Asset{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *assetRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Asset, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Asset
	err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *assetRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Asset, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Asset
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *assetRepo) ListByProject(dbc dbctx.Context, projectID uuid.UUID) ([]*types.Asset, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if projectID == uuid.Nil {
		return nil, nil
	}
	var out []*types.Asset
	if err := t.WithContext(dbc.Ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *assetRepo) CountByProjectAndStatuses(dbc dbctx.Context, projectID uuid.UUID, statuses []string) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if projectID == uuid.Nil || len(statuses) == 0 {
		return 0, nil
	}
	var count int64
	err := t.WithContext(dbc.Ctx).
		Model(&types.Asset{}).
		Where("project_id = ? AND status IN ?", projectID, statuses).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *assetRepo) UpdateFieldsUnlessStatus(dbc dbctx.Context, id uuid.UUID, disallowedStatuses []string, updates map[string]interface{}) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return false, nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}

	q := t.WithContext(dbc.Ctx).
		Model(&types.Asset{}).
		Where("id = ?", id)
	if len(disallowedStatuses) == 1 {
		q = q.Where("status <> ?", disallowedStatuses[0])
	} else if len(disallowedStatuses) > 1 {
		q = q.Where("status NOT IN ?", disallowedStatuses)
	}

	res := q.Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *assetRepo) FindApprovedByThemeAndSafeZone(dbc dbctx.Context, theme string, safeZone string) (*types.Asset, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if theme == "" || safeZone == "" {
		return nil, nil
	}
	zoneJSON, err := json.Marshal([]string{safeZone})
	if err != nil {
		return nil, err
	}
	var row types.Asset
	err = t.WithContext(dbc.Ctx).
		Where("type = ? AND status = ?", types.AssetTypeImage, types.AssetStatusApproved).
		Where("lower(metadata->>'theme') LIKE ?", "%"+strings.ToLower(theme)+"%").
		Where("metadata->'review'->'safe_zone' @> ?::jsonb", string(zoneJSON)).
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

func (r *assetRepo) FindApprovedByClass(dbc dbctx.Context, assetClass string) (*types.Asset, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if assetClass == "" {
		return nil, nil
	}
	var row types.Asset
	err := t.WithContext(dbc.Ctx).
		Where("status = ?", types.AssetStatusApproved).
		Where("metadata->>'audio_class' = ?", assetClass).
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

func (r *assetRepo) HardDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Unscoped().
		Where("id IN ?", ids).
		Delete(&types.Asset{}).Error
}
