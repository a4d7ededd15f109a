package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/luminakids/storyreel-backend/internal/data/repos"
	"github.com/luminakids/storyreel-backend/internal/data/repos/testutil"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
	apperrors "github.com/luminakids/storyreel-backend/internal/platform/errors"
)

func newChildServiceForTest(t *testing.T) ChildService {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	return NewChildService(log,
		repos.NewParentRepo(gdb, log),
		repos.NewChildRepo(gdb, log),
		repos.NewAssetRepo(gdb, log))
}

func TestChildService_CreateRequiresExistingParent(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	svc := newChildServiceForTest(t)

	if _, err := svc.Create(dbc, uuid.New(), "Kid", 4, "dinosaurs"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown parent must be rejected with ErrNotFound, got %v", err)
	}

	parent, err := svc.CreateParent(dbc, "family@example.com", "Jordan")
	if err != nil {
		t.Fatalf("CreateParent: %v", err)
	}
	child, err := svc.Create(dbc, parent.ID, "Kid", 4, "dinosaurs")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if child.ParentID != parent.ID {
		t.Fatalf("child must bind to its parent, got %s", child.ParentID)
	}
}

func TestChildService_CreateParentValidation(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	svc := newChildServiceForTest(t)

	if _, err := svc.CreateParent(dbc, "not-an-email", "Jordan"); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("malformed email must be rejected, got %v", err)
	}
	if _, err := svc.CreateParent(dbc, "family@example.com", "  "); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("blank name must be rejected, got %v", err)
	}

	if _, err := svc.CreateParent(dbc, "family@example.com", "Jordan"); err != nil {
		t.Fatalf("CreateParent: %v", err)
	}
	if _, err := svc.CreateParent(dbc, "FAMILY@example.com", "Other"); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("duplicate email must be rejected, got %v", err)
	}
}
