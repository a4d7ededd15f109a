package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luminakids/storyreel-backend/internal/data/repos"
	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/domain/content"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
	apperrors "github.com/luminakids/storyreel-backend/internal/platform/errors"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
)

const defaultProjectDuration = 60

type ProjectService interface {
	Create(dbc dbctx.Context, title string, theme string, targetAge string) (*types.ContentProject, error)
	Get(dbc dbctx.Context, id uuid.UUID) (*types.ContentProject, error)
	List(dbc dbctx.Context) ([]*types.ContentProject, error)
	// AdvanceStatus moves the project forward in its lifecycle. Backward
	// transitions are rejected with ErrInvalidTransition.
	AdvanceStatus(dbc dbctx.Context, id uuid.UUID, next string) (*types.ContentProject, error)
}

type projectService struct {
	db   *gorm.DB
	log  *logger.Logger
	repo repos.ProjectRepo
}

func NewProjectService(db *gorm.DB, baseLog *logger.Logger, repo repos.ProjectRepo) ProjectService {
	return &projectService{
		db:   db,
		log:  baseLog.With("service", "ProjectService"),
		repo: repo,
	}
}

func (s *projectService) Create(dbc dbctx.Context, title string, theme string, targetAge string) (*types.ContentProject, error) {
	title = strings.TrimSpace(title)
	theme = strings.TrimSpace(theme)
	if title == "" {
		return nil, fmt.Errorf("title is required: %w", apperrors.ErrInvalidArgument)
	}
	if theme == "" {
		return nil, fmt.Errorf("theme is required: %w", apperrors.ErrInvalidArgument)
	}

	row := &types.ContentProject{
		ID:        uuid.New(),
		Title:     title,
		Theme:     theme,
		TargetAge: strings.TrimSpace(targetAge),
		Duration:  defaultProjectDuration,
		Status:    types.ProjectStatusPlanning,
	}
	created, err := s.repo.Create(dbc, []*types.ContentProject{row})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	s.log.Info("Project created", "project_id", row.ID, "theme", theme)
	return created[0], nil
}

func (s *projectService) Get(dbc dbctx.Context, id uuid.UUID) (*types.ContentProject, error) {
	row, err := s.repo.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("project %s: %w", id, apperrors.ErrNotFound)
	}
	return row, nil
}

func (s *projectService) List(dbc dbctx.Context) ([]*types.ContentProject, error) {
	return s.repo.List(dbc)
}

func (s *projectService) AdvanceStatus(dbc dbctx.Context, id uuid.UUID, next string) (*types.ContentProject, error) {
	if !content.ValidProjectStatus(next) {
		return nil, fmt.Errorf("unknown status %q: %w", next, apperrors.ErrInvalidArgument)
	}
	row, err := s.Get(dbc, id)
	if err != nil {
		return nil, err
	}
	if !content.CanAdvanceProject(row.Status, next) {
		return nil, fmt.Errorf("%s -> %s: %w", row.Status, next, apperrors.ErrInvalidTransition)
	}
	ok, err := s.repo.UpdateStatusFrom(dbc, id, row.Status, next)
	if err != nil {
		return nil, fmt.Errorf("advance project status: %w", err)
	}
	if !ok {
		// Guard lost to a concurrent writer; report the conflict rather
		// than silently re-reading.
		return nil, fmt.Errorf("%s -> %s: %w", row.Status, next, apperrors.ErrInvalidTransition)
	}
	row.Status = next
	s.log.Info("Project status advanced", "project_id", id, "status", next)
	return row, nil
}
