package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/luminakids/storyreel-backend/internal/clients/genapi"
	"github.com/luminakids/storyreel-backend/internal/data/repos"
	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
	"github.com/luminakids/storyreel-backend/internal/platform/envutil"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
	"github.com/luminakids/storyreel-backend/internal/services"
)

// RenderWorker drains the render job queue one job at a time. Claiming uses
// SKIP LOCKED so several replicas can run side by side, and jobs whose
// heartbeat went stale are reclaimed from crashed workers.
type RenderWorker struct {
	log      *logger.Logger
	jobs     repos.RenderJobRepo
	projects repos.ProjectRepo
	renders  services.RenderJobService
	gen      genapi.Client
	media    services.MediaStore

	pollInterval      time.Duration
	heartbeatInterval time.Duration
	staleAfter        time.Duration
}

func NewRenderWorker(
	baseLog *logger.Logger,
	jobRepo repos.RenderJobRepo,
	projects repos.ProjectRepo,
	renders services.RenderJobService,
	gen genapi.Client,
	media services.MediaStore,
) *RenderWorker {
	return &RenderWorker{
		log:               baseLog.With("worker", "RenderWorker"),
		jobs:              jobRepo,
		projects:          projects,
		renders:           renders,
		gen:               gen,
		media:             media,
		pollInterval:      envutil.Dur("RENDER_POLL_INTERVAL", 5*time.Second),
		heartbeatInterval: envutil.Dur("RENDER_HEARTBEAT_INTERVAL", 15*time.Second),
		staleAfter:        envutil.Dur("RENDER_STALE_AFTER", 5*time.Minute),
	}
}

// Run blocks until ctx is cancelled.
func (w *RenderWorker) Run(ctx context.Context) {
	w.log.Info("Render worker started", "poll_interval", w.pollInterval)
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Render worker stopped")
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

// drain claims and processes jobs until the queue is empty.
func (w *RenderWorker) drain(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		job, err := w.jobs.ClaimNextPending(dbctx.Context{Ctx: ctx}, w.staleAfter)
		if err != nil {
			w.log.Error("Claim failed", "error", err)
			return
		}
		if job == nil {
			return
		}
		w.process(ctx, job)
	}
}

func (w *RenderWorker) process(ctx context.Context, job *types.RenderJob) {
	log := w.log.With("job_id", job.ID)
	log.Info("Rendering")

	hbCtx, stopHeartbeat := context.WithCancel(ctx)
	defer stopHeartbeat()
	go w.heartbeat(hbCtx, job)

	outputURL, err := w.render(ctx, job)
	stopHeartbeat()

	dbc := dbctx.Context{Ctx: context.WithoutCancel(ctx)}
	if err != nil {
		log.Error("Render failed", "error", err)
		ok, fErr := w.renders.Fail(dbc, job.ID, err.Error())
		if fErr != nil {
			log.Error("Could not mark job failed", "error", fErr)
		} else if !ok {
			log.Info("Job no longer in progress, leaving as is")
		}
		return
	}

	ok, cErr := w.renders.Complete(dbc, job.ID, outputURL)
	if cErr != nil {
		log.Error("Could not mark job completed", "error", cErr)
		return
	}
	if !ok {
		// Admin cancelled while we rendered; the cancellation wins.
		log.Info("Job was cancelled mid-render, discarding output")
		return
	}
	log.Info("Render completed", "output_url", outputURL)
}

func (w *RenderWorker) heartbeat(ctx context.Context, job *types.RenderJob) {
	ticker := time.NewTicker(w.heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.jobs.Heartbeat(dbctx.Context{Ctx: ctx}, job.ID); err != nil {
				w.log.Warn("Heartbeat failed", "job_id", job.ID, "error", err)
			}
		}
	}
}

func (w *RenderWorker) render(ctx context.Context, job *types.RenderJob) (string, error) {
	if w.gen == nil {
		return "", fmt.Errorf("render client not configured")
	}
	segments, err := job.ParseSegments()
	if err != nil {
		return "", fmt.Errorf("parse segments: %w", err)
	}
	if len(segments) == 0 {
		return "", fmt.Errorf("job has no segments")
	}

	duration := w.projectDuration(ctx, job)
	result, err := w.gen.RenderVideo(ctx, segments, duration)
	if err != nil {
		return "", err
	}

	if w.media == nil {
		return result.OutputURL, nil
	}
	key := fmt.Sprintf("videos/%s.mp4", job.ID)
	hosted, err := w.media.IngestFromURL(ctx, key, result.OutputURL)
	if err != nil {
		return "", fmt.Errorf("re-host output: %w", err)
	}
	return hosted, nil
}

func (w *RenderWorker) projectDuration(ctx context.Context, job *types.RenderJob) int {
	const fallback = 60
	if job.ProjectID == nil {
		return fallback
	}
	project, err := w.projects.GetByID(dbctx.Context{Ctx: ctx}, *job.ProjectID)
	if err != nil || project == nil || project.Duration <= 0 {
		return fallback
	}
	return project.Duration
}
