package content_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/luminakids/storyreel-backend/internal/data/repos/content"
	"github.com/luminakids/storyreel-backend/internal/data/repos/testutil"
	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
)

func TestAssetRepo_FindApprovedByThemeAndSafeZone(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := content.NewAssetRepo(gdb, log)
	p := testutil.SeedProject(t, ctx, tx, "Theme Search", "dinosaurs")

	match := testutil.SeedAsset(t, ctx, tx, testutil.PtrUUID(p.ID), types.AssetTypeImage, types.AssetStatusApproved, types.AssetMetadata{
		Theme:  "Dinosaurs and Friends",
		Review: &types.AssetReview{SafeZone: []string{"intro_safe", "center_safe"}},
	})
	// Same theme but wrong zone.
	testutil.SeedAsset(t, ctx, tx, testutil.PtrUUID(p.ID), types.AssetTypeImage, types.AssetStatusApproved, types.AssetMetadata{
		Theme:  "dinosaurs",
		Review: &types.AssetReview{SafeZone: []string{"outro_safe"}},
	})
	// Right zone but not approved.
	testutil.SeedAsset(t, ctx, tx, testutil.PtrUUID(p.ID), types.AssetTypeImage, types.AssetStatusCompleted, types.AssetMetadata{
		Theme:  "dinosaurs",
		Review: &types.AssetReview{SafeZone: []string{"intro_safe"}},
	})

	got, err := repo.FindApprovedByThemeAndSafeZone(dbc, "dino", "intro_safe")
	if err != nil {
		t.Fatalf("FindApprovedByThemeAndSafeZone: %v", err)
	}
	if got == nil || got.ID != match.ID {
		t.Fatalf("expected asset %s, got %+v", match.ID, got)
	}

	got, err = repo.FindApprovedByThemeAndSafeZone(dbc, "dino", "all_ok")
	if err != nil {
		t.Fatalf("FindApprovedByThemeAndSafeZone: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no match for unreviewed zone, got %s", got.ID)
	}
}

func TestAssetRepo_FindApprovedByClass(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := content.NewAssetRepo(gdb, log)
	p := testutil.SeedProject(t, ctx, tx, "Class Search", "space")

	testutil.SeedAsset(t, ctx, tx, testutil.PtrUUID(p.ID), types.AssetTypeAudio, types.AssetStatusCompleted, types.AssetMetadata{
		AudioClass: "background_music",
	})
	match := testutil.SeedAsset(t, ctx, tx, testutil.PtrUUID(p.ID), types.AssetTypeAudio, types.AssetStatusApproved, types.AssetMetadata{
		AudioClass: "background_music",
	})

	got, err := repo.FindApprovedByClass(dbc, "background_music")
	if err != nil {
		t.Fatalf("FindApprovedByClass: %v", err)
	}
	if got == nil || got.ID != match.ID {
		t.Fatalf("expected approved asset %s, got %+v", match.ID, got)
	}

	got, err = repo.FindApprovedByClass(dbc, "outro_jingle")
	if err != nil {
		t.Fatalf("FindApprovedByClass: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no match for unknown class")
	}
}

func TestAssetRepo_UpdateFieldsUnlessStatus(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := content.NewAssetRepo(gdb, log)
	p := testutil.SeedProject(t, ctx, tx, "Guards", "ocean")
	a := testutil.SeedAsset(t, ctx, tx, testutil.PtrUUID(p.ID), types.AssetTypeImage, types.AssetStatusCompleted, types.AssetMetadata{})

	ok, err := repo.UpdateFieldsUnlessStatus(dbc, a.ID,
		[]string{types.AssetStatusRejected},
		map[string]interface{}{"status": types.AssetStatusApproved})
	if err != nil {
		t.Fatalf("UpdateFieldsUnlessStatus: %v", err)
	}
	if !ok {
		t.Fatalf("completed asset should be approvable")
	}

	rejected := testutil.SeedAsset(t, ctx, tx, testutil.PtrUUID(p.ID), types.AssetTypeImage, types.AssetStatusRejected, types.AssetMetadata{})
	ok, err = repo.UpdateFieldsUnlessStatus(dbc, rejected.ID,
		[]string{types.AssetStatusRejected},
		map[string]interface{}{"status": types.AssetStatusApproved})
	if err != nil {
		t.Fatalf("UpdateFieldsUnlessStatus: %v", err)
	}
	if ok {
		t.Fatalf("rejected asset must not be approvable")
	}
}

func TestAssetRepo_CountAndHardDelete(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := content.NewAssetRepo(gdb, log)
	p := testutil.SeedProject(t, ctx, tx, "Counting", "trains")
	a := testutil.SeedAsset(t, ctx, tx, testutil.PtrUUID(p.ID), types.AssetTypeImage, types.AssetStatusPending, types.AssetMetadata{})
	b := testutil.SeedAsset(t, ctx, tx, testutil.PtrUUID(p.ID), types.AssetTypeImage, types.AssetStatusGenerating, types.AssetMetadata{})
	testutil.SeedAsset(t, ctx, tx, testutil.PtrUUID(p.ID), types.AssetTypeImage, types.AssetStatusApproved, types.AssetMetadata{})

	n, err := repo.CountByProjectAndStatuses(dbc, p.ID, []string{types.AssetStatusPending, types.AssetStatusGenerating})
	if err != nil {
		t.Fatalf("CountByProjectAndStatuses: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 in-flight assets got %d", n)
	}

	if err := repo.HardDeleteByIDs(dbc, []uuid.UUID{a.ID, b.ID}); err != nil {
		t.Fatalf("HardDeleteByIDs: %v", err)
	}
	n, err = repo.CountByProjectAndStatuses(dbc, p.ID, []string{types.AssetStatusPending, types.AssetStatusGenerating})
	if err != nil {
		t.Fatalf("CountByProjectAndStatuses: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 after hard delete got %d", n)
	}

	got, err := repo.GetByID(dbc, a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Fatalf("hard-deleted asset must be gone, soft delete is not enough")
	}
}
