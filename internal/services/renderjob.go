package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	redisbus "github.com/luminakids/storyreel-backend/internal/clients/redis"
	"github.com/luminakids/storyreel-backend/internal/data/repos"
	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/domain/jobs"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
	apperrors "github.com/luminakids/storyreel-backend/internal/platform/errors"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
)

type RenderJobService interface {
	// Submit runs the approval gate for the template and, when every
	// requirement resolves, enqueues a pending render job whose segments
	// reference the resolved approved assets.
	Submit(dbc dbctx.Context, projectID uuid.UUID, templateID uuid.UUID, childID *uuid.UUID) (*types.RenderJob, error)
	Get(dbc dbctx.Context, id uuid.UUID) (*types.RenderJob, error)
	List(dbc dbctx.Context, status string, limit int) ([]*types.RenderJob, error)
	// Retry resets a failed job to pending so the worker picks it up again.
	Retry(dbc dbctx.Context, id uuid.UUID) (*types.RenderJob, error)
	// Cancel marks a pending or in_progress job failed with a fixed message.
	// An in-flight render that finishes afterwards loses the write race and
	// cannot overwrite the cancellation.
	Cancel(dbc dbctx.Context, id uuid.UUID) (*types.RenderJob, error)
	// Complete and Fail are the worker's terminal transitions. Both are
	// guarded on in_progress and report false when the guard blocked them.
	Complete(dbc dbctx.Context, id uuid.UUID, outputURL string) (bool, error)
	Fail(dbc dbctx.Context, id uuid.UUID, message string) (bool, error)
}

type renderJobService struct {
	db       *gorm.DB
	log      *logger.Logger
	jobs     repos.RenderJobRepo
	projects repos.ProjectRepo
	assets   repos.AssetRepo
	gate     GateService
	bus      redisbus.StatusBus
}

func NewRenderJobService(
	db *gorm.DB,
	baseLog *logger.Logger,
	jobRepo repos.RenderJobRepo,
	projects repos.ProjectRepo,
	assets repos.AssetRepo,
	gate GateService,
	bus redisbus.StatusBus,
) RenderJobService {
	return &renderJobService{
		db:       db,
		log:      baseLog.With("service", "RenderJobService"),
		jobs:     jobRepo,
		projects: projects,
		assets:   assets,
		gate:     gate,
		bus:      bus,
	}
}

func (s *renderJobService) Submit(dbc dbctx.Context, projectID uuid.UUID, templateID uuid.UUID, childID *uuid.UUID) (*types.RenderJob, error) {
	project, err := s.projects.GetByID(dbc, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project %s: %w", projectID, apperrors.ErrNotFound)
	}
	if project.Status != types.ProjectStatusApproved {
		return nil, fmt.Errorf("project is %s, not approved: %w", project.Status, apperrors.ErrNotReady)
	}

	ready, resolutions, err := s.gate.IsReady(dbc, templateID)
	if err != nil {
		return nil, err
	}
	if !ready {
		return nil, fmt.Errorf("template %s has unresolved requirements: %w", templateID, apperrors.ErrNotReady)
	}

	segments, err := s.buildSegments(dbc, resolutions)
	if err != nil {
		return nil, err
	}

	pid := projectID
	tid := templateID
	job := &types.RenderJob{
		ID:         uuid.New(),
		ProjectID:  &pid,
		TemplateID: &tid,
		ChildID:    childID,
		Status:     types.JobStatusPending,
		Segments:   jobs.MarshalSegments(segments),
	}
	created, err := s.jobs.Create(dbc, []*types.RenderJob{job})
	if err != nil {
		return nil, fmt.Errorf("create render job: %w", err)
	}

	s.publish(dbc, job.ID, types.JobStatusPending, "", "")
	s.log.Info("Render job submitted", "job_id", job.ID, "project_id", projectID, "segments", len(segments))
	return created[0], nil
}

func (s *renderJobService) buildSegments(dbc dbctx.Context, resolutions []RequirementResolution) ([]types.RenderSegment, error) {
	ids := make([]uuid.UUID, 0, len(resolutions))
	for _, r := range resolutions {
		if r.AssetID != nil {
			ids = append(ids, *r.AssetID)
		}
	}
	rows, err := s.assets.GetByIDs(dbc, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*types.Asset, len(rows))
	for _, a := range rows {
		byID[a.ID] = a
	}

	segments := make([]types.RenderSegment, 0, len(resolutions))
	for i, r := range resolutions {
		asset := byID[*r.AssetID]
		if asset == nil {
			return nil, fmt.Errorf("resolved asset %s missing: %w", *r.AssetID, apperrors.ErrNotFound)
		}
		seg := types.RenderSegment{Index: i, Kind: asset.Type}
		switch asset.Type {
		case types.AssetTypeAudio:
			id := asset.ID
			seg.AudioAssetID = &id
			seg.AudioURL = asset.FileURL
		default:
			id := asset.ID
			seg.ImageAssetID = &id
			seg.ImageURL = asset.FileURL
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

func (s *renderJobService) Get(dbc dbctx.Context, id uuid.UUID) (*types.RenderJob, error) {
	row, err := s.jobs.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("render job %s: %w", id, apperrors.ErrNotFound)
	}
	return row, nil
}

func (s *renderJobService) List(dbc dbctx.Context, status string, limit int) ([]*types.RenderJob, error) {
	return s.jobs.List(dbc, status, limit)
}

func (s *renderJobService) Retry(dbc dbctx.Context, id uuid.UUID) (*types.RenderJob, error) {
	row, err := s.Get(dbc, id)
	if err != nil {
		return nil, err
	}
	if !types.CanRetryJob(row.Status) {
		return nil, fmt.Errorf("job is %s, only failed jobs retry: %w", row.Status, apperrors.ErrInvalidTransition)
	}
	ok, err := s.jobs.UpdateFieldsIfStatus(dbc, id, []string{types.JobStatusFailed}, map[string]interface{}{
		"status":        types.JobStatusPending,
		"error_message": nil,
		"started_at":    nil,
		"completed_at":  nil,
		"heartbeat_at":  nil,
		"output_url":    nil,
	})
	if err != nil {
		return nil, fmt.Errorf("retry render job: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("job is no longer failed: %w", apperrors.ErrInvalidTransition)
	}

	s.publish(dbc, id, types.JobStatusPending, "", "")
	s.log.Info("Render job retried", "job_id", id)
	return s.Get(dbc, id)
}

func (s *renderJobService) Cancel(dbc dbctx.Context, id uuid.UUID) (*types.RenderJob, error) {
	row, err := s.Get(dbc, id)
	if err != nil {
		return nil, err
	}
	if !types.CanCancelJob(row.Status) {
		return nil, fmt.Errorf("job is %s, cannot cancel: %w", row.Status, apperrors.ErrInvalidTransition)
	}
	now := time.Now()
	ok, err := s.jobs.UpdateFieldsIfStatus(dbc, id,
		[]string{types.JobStatusPending, types.JobStatusInProgress},
		map[string]interface{}{
			"status":        types.JobStatusFailed,
			"error_message": jobs.CancelledByAdminMessage,
			"completed_at":  now,
		})
	if err != nil {
		return nil, fmt.Errorf("cancel render job: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("job already finished: %w", apperrors.ErrInvalidTransition)
	}

	s.publish(dbc, id, types.JobStatusFailed, jobs.CancelledByAdminMessage, "")
	s.log.Info("Render job cancelled", "job_id", id)
	return s.Get(dbc, id)
}

func (s *renderJobService) Complete(dbc dbctx.Context, id uuid.UUID, outputURL string) (bool, error) {
	now := time.Now()
	ok, err := s.jobs.UpdateFieldsIfStatus(dbc, id, []string{types.JobStatusInProgress}, map[string]interface{}{
		"status":       types.JobStatusCompleted,
		"output_url":   outputURL,
		"completed_at": now,
	})
	if err != nil || !ok {
		return ok, err
	}

	// Flip the project when this was its first successful render. The guard
	// makes repeats harmless.
	if row, gErr := s.jobs.GetByID(dbc, id); gErr == nil && row != nil && row.ProjectID != nil {
		if _, pErr := s.projects.UpdateStatusFrom(dbc, *row.ProjectID, types.ProjectStatusApproved, types.ProjectStatusVideoReady); pErr != nil {
			s.log.Warn("Could not flip project to video_ready", "project_id", *row.ProjectID, "error", pErr)
		}
	}

	s.publish(dbc, id, types.JobStatusCompleted, "", outputURL)
	return true, nil
}

func (s *renderJobService) Fail(dbc dbctx.Context, id uuid.UUID, message string) (bool, error) {
	now := time.Now()
	ok, err := s.jobs.UpdateFieldsIfStatus(dbc, id, []string{types.JobStatusInProgress}, map[string]interface{}{
		"status":        types.JobStatusFailed,
		"error_message": message,
		"completed_at":  now,
	})
	if err != nil || !ok {
		return ok, err
	}
	s.publish(dbc, id, types.JobStatusFailed, message, "")
	return true, nil
}

func (s *renderJobService) publish(dbc dbctx.Context, id uuid.UUID, status string, errMsg string, outputURL string) {
	if s.bus == nil {
		return
	}
	evt := redisbus.JobStatusEvent{
		JobID:        id.String(),
		Status:       status,
		ErrorMessage: errMsg,
		OutputURL:    outputURL,
	}
	if err := s.bus.Publish(dbc.Ctx, evt); err != nil {
		s.log.Warn("Could not publish job status event", "job_id", id, "error", err)
	}
}
