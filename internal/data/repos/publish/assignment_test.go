package publish_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	publishrepo "github.com/luminakids/storyreel-backend/internal/data/repos/publish"
	"github.com/luminakids/storyreel-backend/internal/data/repos/testutil"
	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
)

func TestAssignmentRepo_ListDueAndRelease(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := publishrepo.NewAssignmentRepo(gdb, log)
	videoID := uuid.New()
	now := time.Now().UTC()

	due := &types.VideoAssignment{
		ID:             uuid.New(),
		VideoID:        videoID,
		AssignmentType: types.AssignmentTypeGeneral,
		PublishDate:    now.Add(-time.Hour),
		Status:         types.AssignmentStatusPending,
	}
	future := &types.VideoAssignment{
		ID:             uuid.New(),
		VideoID:        videoID,
		AssignmentType: types.AssignmentTypeGeneral,
		PublishDate:    now.Add(time.Hour),
		Status:         types.AssignmentStatusPending,
	}
	if _, err := repo.Create(dbc, []*types.VideoAssignment{due, future}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, err := repo.ListDue(dbc, now, 10)
	if err != nil {
		t.Fatalf("ListDue: %v", err)
	}
	foundDue, foundFuture := false, false
	for _, row := range rows {
		if row.ID == due.ID {
			foundDue = true
		}
		if row.ID == future.ID {
			foundFuture = true
		}
	}
	if !foundDue {
		t.Fatalf("past-dated pending assignment should be due")
	}
	if foundFuture {
		t.Fatalf("future-dated assignment must not be due")
	}

	ok, err := repo.UpdateStatusFrom(dbc, due.ID, types.AssignmentStatusPending, types.AssignmentStatusPublished)
	if err != nil {
		t.Fatalf("UpdateStatusFrom: %v", err)
	}
	if !ok {
		t.Fatalf("pending assignment should be releasable")
	}

	// Released row no longer shows up as due.
	rows, err = repo.ListDue(dbc, now, 10)
	if err != nil {
		t.Fatalf("ListDue: %v", err)
	}
	for _, row := range rows {
		if row.ID == due.ID {
			t.Fatalf("published assignment must not be listed as due")
		}
	}
}

func TestAssignmentRepo_ListByVideo(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := publishrepo.NewAssignmentRepo(gdb, log)
	videoID := uuid.New()
	otherVideo := uuid.New()
	child := testutil.SeedChild(t, ctx, tx, "dinosaurs")
	now := time.Now().UTC()

	mine := &types.VideoAssignment{
		ID:             uuid.New(),
		VideoID:        videoID,
		ChildID:        testutil.PtrUUID(child.ID),
		AssignmentType: types.AssignmentTypeIndividual,
		PublishDate:    now,
		Status:         types.AssignmentStatusPending,
	}
	other := &types.VideoAssignment{
		ID:             uuid.New(),
		VideoID:        otherVideo,
		AssignmentType: types.AssignmentTypeGeneral,
		PublishDate:    now,
		Status:         types.AssignmentStatusPending,
	}
	if _, err := repo.Create(dbc, []*types.VideoAssignment{mine, other}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, err := repo.ListByVideo(dbc, videoID)
	if err != nil {
		t.Fatalf("ListByVideo: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != mine.ID {
		t.Fatalf("expected only this video's assignment, got %d rows", len(rows))
	}
	if rows[0].ChildID == nil || *rows[0].ChildID != child.ID {
		t.Fatalf("child binding lost")
	}
}
