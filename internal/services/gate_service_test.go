package services

import (
	"context"
	"testing"

	"github.com/luminakids/storyreel-backend/internal/data/repos"
	"github.com/luminakids/storyreel-backend/internal/data/repos/testutil"
	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
)

func TestGateService_ReadinessFlipsWithApprovals(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	templateRepo := repos.NewTemplateRepo(gdb, log)
	assetRepo := repos.NewAssetRepo(gdb, log)
	gate := NewGateService(log, templateRepo, assetRepo)

	p := testutil.SeedProject(t, ctx, tx, "Gate", "dinosaurs")
	pinned := testutil.SeedAsset(t, ctx, tx, testutil.PtrUUID(p.ID), types.AssetTypeImage, types.AssetStatusCompleted, types.AssetMetadata{})
	tpl := testutil.SeedTemplate(t, ctx, tx, "Letter Hunt",
		[]types.AssetRequirement{
			{Kind: types.RequirementByClass, AssetClass: "background_music"},
		},
		[]types.TemplatePart{
			{Name: "intro", RequiredAssets: []types.AssetRequirement{
				{Kind: types.RequirementSpecific, SpecificAssetID: testutil.PtrUUID(pinned.ID)},
			}},
		})

	ready, resolutions, err := gate.IsReady(dbc, tpl.ID)
	if err != nil {
		t.Fatalf("IsReady: %v", err)
	}
	if ready {
		t.Fatalf("nothing is approved yet, gate must be closed")
	}
	if len(resolutions) != 2 {
		t.Fatalf("expected 2 resolutions got %d", len(resolutions))
	}

	// Approve the pinned asset; the class requirement is still open.
	ok, err := assetRepo.UpdateFieldsUnlessStatus(dbc, pinned.ID, nil, map[string]interface{}{"status": types.AssetStatusApproved})
	if err != nil {
		t.Fatalf("UpdateFieldsUnlessStatus: %v", err)
	}
	if !ok {
		t.Fatalf("approval update should have applied")
	}
	ready, _, err = gate.IsReady(dbc, tpl.ID)
	if err != nil {
		t.Fatalf("IsReady: %v", err)
	}
	if ready {
		t.Fatalf("class requirement is unresolved, gate must stay closed")
	}

	// Approving a class-tagged asset opens the gate.
	testutil.SeedAsset(t, ctx, tx, testutil.PtrUUID(p.ID), types.AssetTypeAudio, types.AssetStatusApproved, types.AssetMetadata{
		AudioClass: "background_music",
	})
	ready, resolutions, err = gate.IsReady(dbc, tpl.ID)
	if err != nil {
		t.Fatalf("IsReady: %v", err)
	}
	if !ready {
		t.Fatalf("all requirements resolved, gate should open: %+v", resolutions)
	}
	for _, r := range resolutions {
		if r.AssetID == nil {
			t.Fatalf("resolved requirement must name its asset: %+v", r)
		}
	}
}

func TestGateService_EmptyTemplateNeverReady(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	gate := NewGateService(log, repos.NewTemplateRepo(gdb, log), repos.NewAssetRepo(gdb, log))
	tpl := testutil.SeedTemplate(t, ctx, tx, "Empty", nil, nil)

	ready, resolutions, err := gate.IsReady(dbc, tpl.ID)
	if err != nil {
		t.Fatalf("IsReady: %v", err)
	}
	if ready {
		t.Fatalf("a template with no requirements must never be ready")
	}
	if len(resolutions) != 0 {
		t.Fatalf("expected no resolutions got %d", len(resolutions))
	}
}
