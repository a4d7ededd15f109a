package jobs_test

import (
	"context"
	"testing"
	"time"

	jobsrepo "github.com/luminakids/storyreel-backend/internal/data/repos/jobs"
	"github.com/luminakids/storyreel-backend/internal/data/repos/testutil"
	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
)

func TestRenderJobRepo_ClaimNextPending(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := jobsrepo.NewRenderJobRepo(gdb, log)
	seeded := testutil.SeedRenderJob(t, ctx, tx, types.JobStatusPending, []types.RenderSegment{
		{Index: 0, Kind: "image", ImageURL: "https://cdn.example.com/a.png"},
	})

	claimed, err := repo.ClaimNextPending(dbc, 5*time.Minute)
	if err != nil {
		t.Fatalf("ClaimNextPending: %v", err)
	}
	if claimed == nil || claimed.ID != seeded.ID {
		t.Fatalf("expected to claim seeded job, got %+v", claimed)
	}

	got, err := repo.GetByID(dbc, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != types.JobStatusInProgress {
		t.Fatalf("claimed job should be in_progress, got %q", got.Status)
	}
	if got.StartedAt == nil || got.HeartbeatAt == nil {
		t.Fatalf("claim must stamp started_at and heartbeat_at")
	}

	// Nothing left to claim; the in_progress heartbeat is fresh.
	again, err := repo.ClaimNextPending(dbc, 5*time.Minute)
	if err != nil {
		t.Fatalf("ClaimNextPending: %v", err)
	}
	if again != nil {
		t.Fatalf("expected nothing claimable, got %s", again.ID)
	}
}

func TestRenderJobRepo_ClaimReclaimsStaleRunning(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := jobsrepo.NewRenderJobRepo(gdb, log)
	stale := testutil.SeedRenderJob(t, ctx, tx, types.JobStatusInProgress, nil)
	old := time.Now().Add(-time.Hour)
	if err := tx.Model(&types.RenderJob{}).Where("id = ?", stale.ID).
		Update("heartbeat_at", old).Error; err != nil {
		t.Fatalf("age heartbeat: %v", err)
	}

	claimed, err := repo.ClaimNextPending(dbc, 5*time.Minute)
	if err != nil {
		t.Fatalf("ClaimNextPending: %v", err)
	}
	if claimed == nil || claimed.ID != stale.ID {
		t.Fatalf("expected to reclaim stale job, got %+v", claimed)
	}
}

func TestRenderJobRepo_UpdateFieldsIfStatus_CancelBeatsCompletion(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := jobsrepo.NewRenderJobRepo(gdb, log)
	job := testutil.SeedRenderJob(t, ctx, tx, types.JobStatusInProgress, nil)

	// Admin cancel lands first.
	ok, err := repo.UpdateFieldsIfStatus(dbc, job.ID,
		[]string{types.JobStatusPending, types.JobStatusInProgress},
		map[string]interface{}{
			"status":        types.JobStatusFailed,
			"error_message": "Cancelled by admin",
			"completed_at":  time.Now(),
		})
	if err != nil {
		t.Fatalf("cancel update: %v", err)
	}
	if !ok {
		t.Fatalf("cancel should pass its guard")
	}

	// Worker completion arrives late and must lose.
	ok, err = repo.UpdateFieldsIfStatus(dbc, job.ID,
		[]string{types.JobStatusInProgress},
		map[string]interface{}{
			"status":     types.JobStatusCompleted,
			"output_url": "https://cdn.example.com/out.mp4",
		})
	if err != nil {
		t.Fatalf("completion update: %v", err)
	}
	if ok {
		t.Fatalf("late completion must not overwrite a cancellation")
	}

	got, err := repo.GetByID(dbc, job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != types.JobStatusFailed {
		t.Fatalf("expected failed got %q", got.Status)
	}
	if got.ErrorMessage == nil || *got.ErrorMessage != "Cancelled by admin" {
		t.Fatalf("cancel message lost: %+v", got.ErrorMessage)
	}
	if got.OutputURL != nil {
		t.Fatalf("output url must not be set on a cancelled job")
	}
}

func TestRenderJobRepo_RetryClearsRunFields(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := jobsrepo.NewRenderJobRepo(gdb, log)
	job := testutil.SeedRenderJob(t, ctx, tx, types.JobStatusFailed, nil)
	now := time.Now()
	if err := repo.UpdateFields(dbc, job.ID, map[string]interface{}{
		"error_message": "renderer exploded",
		"started_at":    now.Add(-time.Minute),
		"completed_at":  now,
	}); err != nil {
		t.Fatalf("seed failure fields: %v", err)
	}

	ok, err := repo.UpdateFieldsIfStatus(dbc, job.ID, []string{types.JobStatusFailed}, map[string]interface{}{
		"status":        types.JobStatusPending,
		"error_message": nil,
		"started_at":    nil,
		"completed_at":  nil,
		"heartbeat_at":  nil,
		"output_url":    nil,
	})
	if err != nil {
		t.Fatalf("retry update: %v", err)
	}
	if !ok {
		t.Fatalf("retry should pass its guard on a failed job")
	}

	got, err := repo.GetByID(dbc, job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != types.JobStatusPending {
		t.Fatalf("expected pending got %q", got.Status)
	}
	if got.ErrorMessage != nil || got.StartedAt != nil || got.CompletedAt != nil || got.HeartbeatAt != nil {
		t.Fatalf("retry must clear run fields: %+v", got)
	}
}

func TestRenderJobRepo_HeartbeatOnlyWhileInProgress(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := jobsrepo.NewRenderJobRepo(gdb, log)
	job := testutil.SeedRenderJob(t, ctx, tx, types.JobStatusCompleted, nil)

	if err := repo.Heartbeat(dbc, job.ID); err != nil {
		t.Fatalf("Heartbeat: %v", err)
	}
	got, err := repo.GetByID(dbc, job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.HeartbeatAt != nil {
		t.Fatalf("heartbeat must not touch finished jobs")
	}
}
