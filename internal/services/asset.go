package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/luminakids/storyreel-backend/internal/clients/genapi"
	"github.com/luminakids/storyreel-backend/internal/data/repos"
	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/domain/content"
	"github.com/luminakids/storyreel-backend/internal/domain/jobs"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
	"github.com/luminakids/storyreel-backend/internal/platform/envutil"
	apperrors "github.com/luminakids/storyreel-backend/internal/platform/errors"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
)

// PromptGroup is one safe zone's worth of generation work: image prompts for
// backgrounds/characters/props and audio scripts for voiceover/music.
type PromptGroup struct {
	SafeZone     string   `json:"safe_zone"`
	AspectRatio  string   `json:"aspect_ratio"`
	ImagePrompts []string `json:"image_prompts"`
	AudioScripts []string `json:"audio_scripts"`
}

type AssetService interface {
	// BuildPromptGroups asks the prompt service for per-zone image prompts,
	// falling back once to deterministic templated prompts on failure.
	BuildPromptGroups(ctx context.Context, project *types.ContentProject, template string, promptCount int, aspectRatio string, safeZones []string) ([]PromptGroup, error)
	// GenerateForProject inserts pending asset rows for every prompt in the
	// groups, records a compensation saga in the same transaction, then
	// triggers external generation asynchronously. It does not block on
	// generation completing.
	GenerateForProject(dbc dbctx.Context, projectID uuid.UUID, groups []PromptGroup) ([]*types.Asset, error)
	Approve(dbc dbctx.Context, id uuid.UUID) (*types.Asset, error)
	Reject(dbc dbctx.Context, id uuid.UUID) (*types.Asset, error)
	// CompleteGeneration is the external generator's callback path.
	CompleteGeneration(dbc dbctx.Context, id uuid.UUID, fileURL string) (*types.Asset, error)
	Get(dbc dbctx.Context, id uuid.UUID) (*types.Asset, error)
	ListByProject(dbc dbctx.Context, projectID uuid.UUID) ([]*types.Asset, error)
	FindApprovedByThemeAndSafeZone(dbc dbctx.Context, theme string, safeZone string) (*types.Asset, error)
	FindApprovedByClass(dbc dbctx.Context, assetClass string) (*types.Asset, error)
}

type assetService struct {
	db       *gorm.DB
	log      *logger.Logger
	assets   repos.AssetRepo
	projects repos.ProjectRepo
	sagas    repos.SagaRepo
	gen      genapi.Client
	media    MediaStore
}

func NewAssetService(
	db *gorm.DB,
	baseLog *logger.Logger,
	assets repos.AssetRepo,
	projects repos.ProjectRepo,
	sagas repos.SagaRepo,
	gen genapi.Client,
	media MediaStore,
) AssetService {
	return &assetService{
		db:       db,
		log:      baseLog.With("service", "AssetService"),
		assets:   assets,
		projects: projects,
		sagas:    sagas,
		gen:      gen,
		media:    media,
	}
}

func (s *assetService) BuildPromptGroups(ctx context.Context, project *types.ContentProject, template string, promptCount int, aspectRatio string, safeZones []string) ([]PromptGroup, error) {
	if project == nil {
		return nil, fmt.Errorf("project required: %w", apperrors.ErrInvalidArgument)
	}
	req := genapi.PromptRequest{
		Theme:       project.Theme,
		AgeRange:    project.TargetAge,
		Template:    template,
		SafeZones:   safeZones,
		PromptCount: promptCount,
		AspectRatio: aspectRatio,
	}

	var resp genapi.PromptResponse
	if s.gen != nil {
		var err error
		resp, err = s.gen.GeneratePrompts(ctx, req)
		if err != nil {
			s.log.Warn("Prompt service failed, using templated fallback", "project_id", project.ID, "error", err)
			resp = nil
		}
	}
	if resp == nil {
		resp = genapi.FallbackPrompts(req)
	}

	groups := make([]PromptGroup, 0, len(resp))
	for _, zone := range safeZones {
		zp, ok := resp[zone]
		if !ok {
			continue
		}
		groups = append(groups, PromptGroup{
			SafeZone:     zone,
			AspectRatio:  aspectRatio,
			ImagePrompts: zp.Images,
		})
	}
	return groups, nil
}

func (s *assetService) GenerateForProject(dbc dbctx.Context, projectID uuid.UUID, groups []PromptGroup) ([]*types.Asset, error) {
	if projectID == uuid.Nil {
		return nil, fmt.Errorf("project id required: %w", apperrors.ErrInvalidArgument)
	}
	project, err := s.projects.GetByID(dbc, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project %s: %w", projectID, apperrors.ErrNotFound)
	}

	rows := buildAssetRows(project, groups)
	if len(rows) == 0 {
		return nil, fmt.Errorf("no prompts in any group: %w", apperrors.ErrInvalidArgument)
	}

	// Idempotency guard: one in-flight batch per project. A finished batch
	// may be re-run deliberately (regeneration creates new rows).
	inFlight, err := s.assets.CountByProjectAndStatuses(dbc, projectID, []string{
		types.AssetStatusPending, types.AssetStatusGenerating,
	})
	if err != nil {
		return nil, err
	}
	if inFlight > 0 {
		return nil, fmt.Errorf("generation already in progress for project %s: %w", projectID, apperrors.ErrInvalidArgument)
	}

	saga := &types.GenerationSaga{
		ID:        uuid.New(),
		ProjectID: projectID,
		Status:    jobs.SagaStatusRunning,
	}

	// Bulk insert + saga ledger commit together. The external trigger and
	// the project status flip happen after commit, with the ledger as the
	// undo path.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		txc := dbctx.Context{Ctx: dbc.Ctx, Tx: tx}
		if _, err := s.sagas.Create(txc, []*types.GenerationSaga{saga}); err != nil {
			return fmt.Errorf("create saga: %w", err)
		}
		if _, err := s.assets.Create(txc, rows); err != nil {
			return fmt.Errorf("bulk insert assets: %w", err)
		}
		ids := make([]uuid.UUID, 0, len(rows))
		for _, a := range rows {
			ids = append(ids, a.ID)
		}
		payload, err := json.Marshal(map[string]any{"asset_ids": ids})
		if err != nil {
			return err
		}
		action := &types.GenerationSagaAction{
			ID:      uuid.New(),
			SagaID:  saga.ID,
			Seq:     1,
			Kind:    jobs.SagaActionAssetDeleteIDs,
			Payload: datatypes.JSON(payload),
			Status:  "pending",
		}
		if _, err := s.sagas.AppendActions(txc, []*types.GenerationSagaAction{action}); err != nil {
			return fmt.Errorf("append saga action: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.projects.UpdateStatusFrom(dbc, projectID, types.ProjectStatusPlanning, types.ProjectStatusGenerating); err != nil {
		s.log.Warn("Could not flip project to generating", "project_id", projectID, "error", err)
	}

	go s.runGeneration(context.Background(), saga.ID, projectID, rows)

	s.log.Info("Asset batch created", "project_id", projectID, "saga_id", saga.ID, "assets", len(rows))
	return rows, nil
}

func buildAssetRows(project *types.ContentProject, groups []PromptGroup) []*types.Asset {
	var rows []*types.Asset
	index := 0
	for _, g := range groups {
		for _, prompt := range g.ImagePrompts {
			prompt = strings.TrimSpace(prompt)
			if prompt == "" {
				continue
			}
			rows = append(rows, newPendingAsset(project, types.AssetTypeImage, prompt, g, index))
			index++
		}
		for _, script := range g.AudioScripts {
			script = strings.TrimSpace(script)
			if script == "" {
				continue
			}
			rows = append(rows, newPendingAsset(project, types.AssetTypeAudio, script, g, index))
			index++
		}
	}
	return rows
}

func newPendingAsset(project *types.ContentProject, assetType string, prompt string, g PromptGroup, index int) *types.Asset {
	projectID := project.ID
	return &types.Asset{
		ID:        uuid.New(),
		ProjectID: &projectID,
		Type:      assetType,
		Prompt:    prompt,
		Status:    types.AssetStatusPending,
		Metadata: content.MarshalAssetMetadata(types.AssetMetadata{
			Theme:       project.Theme,
			AspectRatio: g.AspectRatio,
			Index:       index,
			Review: &types.AssetReview{
				SafeZone: []string{g.SafeZone},
			},
		}),
	}
}

// runGeneration drives the external generator for one saga's assets. Any
// failure compensates the whole batch: inserted rows are deleted and any
// re-hosted media removed, so a retry starts clean.
func (s *assetService) runGeneration(ctx context.Context, sagaID uuid.UUID, projectID uuid.UUID, assets []*types.Asset) {
	dbc := dbctx.Context{Ctx: ctx}

	if s.gen == nil {
		s.log.Error("Generation client not configured, compensating batch", "saga_id", sagaID)
		s.compensate(dbc, sagaID, projectID)
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(envutil.Int("GENERATION_CONCURRENCY", 4))
	for _, asset := range assets {
		g.Go(func() error {
			return s.generateOne(gctx, sagaID, asset)
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error("Asset generation failed, compensating batch", "saga_id", sagaID, "error", err)
		if uerr := s.sagas.UpdateFields(dbc, sagaID, map[string]interface{}{"status": jobs.SagaStatusFailed}); uerr != nil {
			s.log.Error("Could not mark saga failed", "saga_id", sagaID, "error", uerr)
		}
		s.compensate(dbc, sagaID, projectID)
		return
	}

	if err := s.sagas.UpdateFields(dbc, sagaID, map[string]interface{}{"status": jobs.SagaStatusSucceeded}); err != nil {
		s.log.Error("Could not mark saga succeeded", "saga_id", sagaID, "error", err)
	}
	s.log.Info("Asset batch generated", "saga_id", sagaID, "assets", len(assets))
}

func (s *assetService) generateOne(ctx context.Context, sagaID uuid.UUID, asset *types.Asset) error {
	dbc := dbctx.Context{Ctx: ctx}

	if _, err := s.assets.UpdateFieldsUnlessStatus(dbc, asset.ID,
		[]string{types.AssetStatusApproved, types.AssetStatusRejected},
		map[string]interface{}{"status": types.AssetStatusGenerating},
	); err != nil {
		return err
	}

	md, err := asset.ParseMetadata()
	if err != nil {
		return fmt.Errorf("asset %s metadata: %w", asset.ID, err)
	}

	var file genapi.GeneratedFile
	switch asset.Type {
	case types.AssetTypeImage:
		file, err = s.gen.GenerateImage(ctx, asset.Prompt, md.AspectRatio)
	case types.AssetTypeAudio:
		file, err = s.gen.GenerateAudio(ctx, asset.Prompt, "narrator")
	default:
		return fmt.Errorf("asset %s: unsupported type %q", asset.ID, asset.Type)
	}
	if err != nil {
		return fmt.Errorf("generate asset %s: %w", asset.ID, err)
	}

	fileURL := file.URL
	if s.media != nil {
		key := mediaKeyFor(asset)
		hosted, ingestErr := s.media.IngestFromURL(ctx, key, file.URL)
		if ingestErr != nil {
			return fmt.Errorf("ingest asset %s: %w", asset.ID, ingestErr)
		}
		fileURL = hosted
		s.appendMediaCompensation(dbc, sagaID, key)
	}

	if _, err := s.CompleteGeneration(dbc, asset.ID, fileURL); err != nil {
		return err
	}
	return nil
}

func mediaKeyFor(asset *types.Asset) string {
	ext := ".png"
	if asset.Type == types.AssetTypeAudio {
		ext = ".mp3"
	}
	return fmt.Sprintf("assets/%s%s", asset.ID, ext)
}

func (s *assetService) appendMediaCompensation(dbc dbctx.Context, sagaID uuid.UUID, key string) {
	actions, err := s.sagas.ListActions(dbc, sagaID)
	if err != nil {
		s.log.Error("Could not list saga actions", "saga_id", sagaID, "error", err)
		return
	}
	seq := int64(len(actions) + 1)
	payload, _ := json.Marshal(map[string]any{"key": key})
	_, err = s.sagas.AppendActions(dbc, []*types.GenerationSagaAction{{
		ID:      uuid.New(),
		SagaID:  sagaID,
		Seq:     seq,
		Kind:    jobs.SagaActionMediaDeleteKey,
		Payload: datatypes.JSON(payload),
		Status:  "pending",
	}})
	if err != nil {
		s.log.Error("Could not append media compensation", "saga_id", sagaID, "key", key, "error", err)
	}
}

// compensate replays the saga's ledger in reverse, then returns the project
// to planning so the batch can be resubmitted.
func (s *assetService) compensate(dbc dbctx.Context, sagaID uuid.UUID, projectID uuid.UUID) {
	// Claim the saga under a row lock so two compensators cannot replay the
	// same ledger. The lock is released before any media calls run.
	claimed := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		txc := dbctx.Context{Ctx: dbc.Ctx, Tx: tx}
		saga, err := s.sagas.LockByID(txc, sagaID)
		if err != nil {
			return err
		}
		if saga == nil {
			return fmt.Errorf("saga %s: %w", sagaID, apperrors.ErrNotFound)
		}
		if saga.Status == jobs.SagaStatusCompensating || saga.Status == jobs.SagaStatusCompensated {
			return nil
		}
		claimed = true
		return s.sagas.UpdateFields(txc, sagaID, map[string]interface{}{"status": jobs.SagaStatusCompensating})
	})
	if err != nil {
		s.log.Error("Could not mark saga compensating", "saga_id", sagaID, "error", err)
		return
	}
	if !claimed {
		s.log.Info("Saga already being compensated, skipping", "saga_id", sagaID)
		return
	}

	actions, err := s.sagas.ListActions(dbc, sagaID)
	if err != nil {
		s.log.Error("Could not list saga actions for compensation", "saga_id", sagaID, "error", err)
		return
	}

	allDone := true
	for i := len(actions) - 1; i >= 0; i-- {
		action := actions[i]
		if action.Status == "done" {
			continue
		}
		if err := s.runCompensation(dbc, action); err != nil {
			s.log.Error("Compensation action failed", "saga_id", sagaID, "action_id", action.ID, "kind", action.Kind, "error", err)
			_ = s.sagas.UpdateActionFields(dbc, action.ID, map[string]interface{}{"status": "failed"})
			allDone = false
			continue
		}
		_ = s.sagas.UpdateActionFields(dbc, action.ID, map[string]interface{}{"status": "done"})
	}

	status := jobs.SagaStatusCompensated
	if !allDone {
		status = jobs.SagaStatusFailed
	}
	if err := s.sagas.UpdateFields(dbc, sagaID, map[string]interface{}{"status": status}); err != nil {
		s.log.Error("Could not finalize saga", "saga_id", sagaID, "error", err)
	}

	if _, err := s.projects.UpdateStatusFrom(dbc, projectID, types.ProjectStatusGenerating, types.ProjectStatusPlanning); err != nil {
		s.log.Error("Could not return project to planning", "project_id", projectID, "error", err)
	}
}

func (s *assetService) runCompensation(dbc dbctx.Context, action *types.GenerationSagaAction) error {
	switch action.Kind {
	case jobs.SagaActionAssetDeleteIDs:
		var payload struct {
			AssetIDs []uuid.UUID `json:"asset_ids"`
		}
		if err := json.Unmarshal(action.Payload, &payload); err != nil {
			return err
		}
		return s.assets.HardDeleteByIDs(dbc, payload.AssetIDs)
	case jobs.SagaActionMediaDeleteKey:
		var payload struct {
			Key string `json:"key"`
		}
		if err := json.Unmarshal(action.Payload, &payload); err != nil {
			return err
		}
		if s.media == nil {
			return nil
		}
		return s.media.Delete(dbc.Ctx, payload.Key)
	}
	return fmt.Errorf("unknown compensation kind %q", action.Kind)
}

func (s *assetService) Approve(dbc dbctx.Context, id uuid.UUID) (*types.Asset, error) {
	row, err := s.Get(dbc, id)
	if err != nil {
		return nil, err
	}
	if row.Status == types.AssetStatusApproved {
		// Idempotent: re-approving is a no-op.
		return row, nil
	}
	if row.Status == types.AssetStatusRejected {
		return nil, fmt.Errorf("asset %s is rejected: %w", id, apperrors.ErrInvalidTransition)
	}
	ok, err := s.assets.UpdateFieldsUnlessStatus(dbc, id,
		[]string{types.AssetStatusRejected},
		map[string]interface{}{"status": types.AssetStatusApproved},
	)
	if err != nil {
		return nil, fmt.Errorf("approve asset: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("asset %s is rejected: %w", id, apperrors.ErrInvalidTransition)
	}
	row.Status = types.AssetStatusApproved
	return row, nil
}

func (s *assetService) Reject(dbc dbctx.Context, id uuid.UUID) (*types.Asset, error) {
	row, err := s.Get(dbc, id)
	if err != nil {
		return nil, err
	}
	if row.Status == types.AssetStatusRejected {
		return row, nil
	}
	if _, err := s.assets.UpdateFieldsUnlessStatus(dbc, id, nil,
		map[string]interface{}{"status": types.AssetStatusRejected},
	); err != nil {
		return nil, fmt.Errorf("reject asset: %w", err)
	}
	row.Status = types.AssetStatusRejected
	return row, nil
}

func (s *assetService) CompleteGeneration(dbc dbctx.Context, id uuid.UUID, fileURL string) (*types.Asset, error) {
	if fileURL == "" {
		return nil, fmt.Errorf("file url required: %w", apperrors.ErrInvalidArgument)
	}
	row, err := s.Get(dbc, id)
	if err != nil {
		return nil, err
	}
	ok, err := s.assets.UpdateFieldsUnlessStatus(dbc, id,
		[]string{types.AssetStatusApproved, types.AssetStatusRejected},
		map[string]interface{}{
			"status":   types.AssetStatusCompleted,
			"file_url": fileURL,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("complete generation: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("asset %s already reviewed: %w", id, apperrors.ErrInvalidTransition)
	}
	row.Status = types.AssetStatusCompleted
	row.FileURL = fileURL
	return row, nil
}

func (s *assetService) Get(dbc dbctx.Context, id uuid.UUID) (*types.Asset, error) {
	row, err := s.assets.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("asset %s: %w", id, apperrors.ErrNotFound)
	}
	return row, nil
}

func (s *assetService) ListByProject(dbc dbctx.Context, projectID uuid.UUID) ([]*types.Asset, error) {
	return s.assets.ListByProject(dbc, projectID)
}

func (s *assetService) FindApprovedByThemeAndSafeZone(dbc dbctx.Context, theme string, safeZone string) (*types.Asset, error) {
	return s.assets.FindApprovedByThemeAndSafeZone(dbc, theme, safeZone)
}

func (s *assetService) FindApprovedByClass(dbc dbctx.Context, assetClass string) (*types.Asset, error) {
	return s.assets.FindApprovedByClass(dbc, assetClass)
}
