package content_test

import (
	"context"
	"testing"

	"github.com/luminakids/storyreel-backend/internal/data/repos/content"
	"github.com/luminakids/storyreel-backend/internal/data/repos/testutil"
	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
)

func TestProjectRepo_UpdateStatusFrom_Guard(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := content.NewProjectRepo(gdb, log)
	p := testutil.SeedProject(t, ctx, tx, "Letter Hunt A", "dinosaurs")

	ok, err := repo.UpdateStatusFrom(dbc, p.ID, types.ProjectStatusPlanning, types.ProjectStatusGenerating)
	if err != nil {
		t.Fatalf("UpdateStatusFrom: %v", err)
	}
	if !ok {
		t.Fatalf("expected guard to pass from planning")
	}

	// Stale from-status loses the guard.
	ok, err = repo.UpdateStatusFrom(dbc, p.ID, types.ProjectStatusPlanning, types.ProjectStatusReviewing)
	if err != nil {
		t.Fatalf("UpdateStatusFrom: %v", err)
	}
	if ok {
		t.Fatalf("expected guard to block a stale from-status")
	}

	got, err := repo.GetByID(dbc, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != types.ProjectStatusGenerating {
		t.Fatalf("expected generating got %q", got.Status)
	}
}

func TestProjectRepo_List_NewestFirst(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := content.NewProjectRepo(gdb, log)
	a := testutil.SeedProject(t, ctx, tx, "First", "space")
	b := testutil.SeedProject(t, ctx, tx, "Second", "ocean")

	rows, err := repo.List(dbc)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) < 2 {
		t.Fatalf("expected at least 2 projects got %d", len(rows))
	}
	seenA, seenB := false, false
	for _, row := range rows {
		if row.ID == a.ID {
			seenA = true
		}
		if row.ID == b.ID {
			seenB = true
		}
	}
	if !seenA || !seenB {
		t.Fatalf("seeded projects missing from list")
	}
}
