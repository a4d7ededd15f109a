package services

import (
	"context"
	"errors"
	"testing"

	"github.com/luminakids/storyreel-backend/internal/data/repos"
	"github.com/luminakids/storyreel-backend/internal/data/repos/testutil"
	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
	apperrors "github.com/luminakids/storyreel-backend/internal/platform/errors"
)

func newAssetServiceForTest(t *testing.T) AssetService {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	return NewAssetService(gdb, log,
		repos.NewAssetRepo(gdb, log),
		repos.NewProjectRepo(gdb, log),
		repos.NewSagaRepo(gdb, log),
		nil, nil)
}

func TestAssetService_ApproveIsIdempotent(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	svc := newAssetServiceForTest(t)

	p := testutil.SeedProject(t, ctx, tx, "Review", "ocean")
	a := testutil.SeedAsset(t, ctx, tx, testutil.PtrUUID(p.ID), types.AssetTypeImage, types.AssetStatusCompleted, types.AssetMetadata{})

	first, err := svc.Approve(dbc, a.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if first.Status != types.AssetStatusApproved {
		t.Fatalf("expected approved got %q", first.Status)
	}

	second, err := svc.Approve(dbc, a.ID)
	if err != nil {
		t.Fatalf("re-approve must be a no-op, got %v", err)
	}
	if second.Status != types.AssetStatusApproved {
		t.Fatalf("expected approved got %q", second.Status)
	}
}

func TestAssetService_ApproveAfterRejectFails(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	svc := newAssetServiceForTest(t)

	p := testutil.SeedProject(t, ctx, tx, "Reject", "ocean")
	a := testutil.SeedAsset(t, ctx, tx, testutil.PtrUUID(p.ID), types.AssetTypeImage, types.AssetStatusCompleted, types.AssetMetadata{})

	if _, err := svc.Reject(dbc, a.ID); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if _, err := svc.Reject(dbc, a.ID); err != nil {
		t.Fatalf("re-reject must be a no-op, got %v", err)
	}
	if _, err := svc.Approve(dbc, a.ID); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("approve after reject must fail with ErrInvalidTransition, got %v", err)
	}
}

func TestAssetService_CompleteGenerationGuarded(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	svc := newAssetServiceForTest(t)

	p := testutil.SeedProject(t, ctx, tx, "Callback", "trains")
	a := testutil.SeedAsset(t, ctx, tx, testutil.PtrUUID(p.ID), types.AssetTypeImage, types.AssetStatusGenerating, types.AssetMetadata{})

	got, err := svc.CompleteGeneration(dbc, a.ID, "https://cdn.example.com/a.png")
	if err != nil {
		t.Fatalf("CompleteGeneration: %v", err)
	}
	if got.Status != types.AssetStatusCompleted || got.FileURL == "" {
		t.Fatalf("completion must set status and file url: %+v", got)
	}

	// A late callback must not resurrect a reviewed asset.
	if _, err := svc.Reject(dbc, a.ID); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if _, err := svc.CompleteGeneration(dbc, a.ID, "https://cdn.example.com/late.png"); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("late callback must fail with ErrInvalidTransition, got %v", err)
	}

	if _, err := svc.CompleteGeneration(dbc, a.ID, ""); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("empty file url must be rejected, got %v", err)
	}
}

func TestAssetService_GenerateForProject_InFlightGuard(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	svc := newAssetServiceForTest(t)

	p := testutil.SeedProject(t, ctx, tx, "Busy", "dinosaurs")
	testutil.SeedAsset(t, ctx, tx, testutil.PtrUUID(p.ID), types.AssetTypeImage, types.AssetStatusPending, types.AssetMetadata{})

	groups := []PromptGroup{{SafeZone: "all_ok", AspectRatio: "16:9", ImagePrompts: []string{"a friendly t-rex"}}}
	if _, err := svc.GenerateForProject(dbc, p.ID, groups); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("second batch while one is in flight must be rejected, got %v", err)
	}
}

func TestAssetService_GenerateForProject_EmptyGroups(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	svc := newAssetServiceForTest(t)

	p := testutil.SeedProject(t, ctx, tx, "Empty Batch", "space")
	if _, err := svc.GenerateForProject(dbc, p.ID, nil); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("empty groups must be rejected, got %v", err)
	}
	if _, err := svc.GenerateForProject(dbc, p.ID, []PromptGroup{{SafeZone: "all_ok", ImagePrompts: []string{"  "}}}); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("blank prompts must be rejected, got %v", err)
	}
}
