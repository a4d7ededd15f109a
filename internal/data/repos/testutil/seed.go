package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/domain/content"
	"github.com/luminakids/storyreel-backend/internal/domain/jobs"
)

func SeedAdmin(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.AdminUser {
	tb.Helper()
	u := &types.AdminUser{
		ID:       uuid.New(),
		Email:    email,
		Password: "pw",
		Name:     "Admin",
		Role:     "reviewer",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed admin: %v", err)
	}
	return u
}

func SeedParent(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.Parent {
	tb.Helper()
	p := &types.Parent{
		ID:    uuid.New(),
		Email: email,
		Name:  "Parent",
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed parent: %v", err)
	}
	return p
}

func SeedChild(tb testing.TB, ctx context.Context, tx *gorm.DB, theme string) *types.Child {
	tb.Helper()
	c := &types.Child{
		ID:              uuid.New(),
		ParentID:        uuid.New(),
		Name:            "Kid",
		Age:             4,
		PrimaryInterest: theme,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed child: %v", err)
	}
	return c
}

func SeedProject(tb testing.TB, ctx context.Context, tx *gorm.DB, title string, theme string) *types.ContentProject {
	tb.Helper()
	p := &types.ContentProject{
		ID:        uuid.New(),
		Title:     title,
		Theme:     theme,
		TargetAge: "3-5",
		Duration:  60,
		Status:    types.ProjectStatusPlanning,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed project: %v", err)
	}
	return p
}

func SeedAsset(tb testing.TB, ctx context.Context, tx *gorm.DB, projectID *uuid.UUID, assetType string, status string, md types.AssetMetadata) *types.Asset {
	tb.Helper()
	a := &types.Asset{
		ID:        uuid.New(),
		ProjectID: projectID,
		Type:      assetType,
		Prompt:    "prompt",
		Status:    status,
		Metadata:  content.MarshalAssetMetadata(md),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed asset: %v", err)
	}
	return a
}

func SeedTemplate(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, global []types.AssetRequirement, parts []types.TemplatePart) *types.VideoTemplate {
	tb.Helper()
	t := &types.VideoTemplate{
		ID:             uuid.New(),
		Name:           name,
		TemplateType:   "letter_hunt",
		GlobalElements: content.MarshalRequirements(global),
		Parts:          content.MarshalParts(parts),
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed template: %v", err)
	}
	return t
}

func SeedRenderJob(tb testing.TB, ctx context.Context, tx *gorm.DB, status string, segments []types.RenderSegment) *types.RenderJob {
	tb.Helper()
	j := &types.RenderJob{
		ID:       uuid.New(),
		Status:   status,
		Segments: marshalSegments(segments),
	}
	if err := tx.WithContext(ctx).Create(j).Error; err != nil {
		tb.Fatalf("seed render job: %v", err)
	}
	return j
}

func marshalSegments(segments []types.RenderSegment) datatypes.JSON {
	if segments == nil {
		return datatypes.JSON([]byte("[]"))
	}
	return jobs.MarshalSegments(segments)
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }

func PtrTime(v time.Time) *time.Time { return &v }

func PtrStr(v string) *string { return &v }
