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

func TestProjectService_Create_Validation(t *testing.T) {
	log := testutil.Logger(t)
	svc := NewProjectService(nil, log, nil)

	if _, err := svc.Create(dbctx.Background(), "", "dinosaurs", "3-5"); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("empty title must be rejected, got %v", err)
	}
	if _, err := svc.Create(dbctx.Background(), "Letter Hunt", "   ", "3-5"); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("blank theme must be rejected, got %v", err)
	}
}

func TestProjectService_AdvanceStatus(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := repos.NewProjectRepo(gdb, log)
	svc := NewProjectService(gdb, log, repo)
	p := testutil.SeedProject(t, ctx, tx, "Advance", "space")

	got, err := svc.AdvanceStatus(dbc, p.ID, types.ProjectStatusGenerating)
	if err != nil {
		t.Fatalf("AdvanceStatus: %v", err)
	}
	if got.Status != types.ProjectStatusGenerating {
		t.Fatalf("expected generating got %q", got.Status)
	}

	if _, err := svc.AdvanceStatus(dbc, p.ID, types.ProjectStatusPlanning); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("backward transition must fail with ErrInvalidTransition, got %v", err)
	}
	if _, err := svc.AdvanceStatus(dbc, p.ID, "archived"); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("unknown status must fail with ErrInvalidArgument, got %v", err)
	}
}
