package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/luminakids/storyreel-backend/internal/data/repos"
	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/domain/content"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
	apperrors "github.com/luminakids/storyreel-backend/internal/platform/errors"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
)

type TemplateService interface {
	Create(dbc dbctx.Context, name, templateType string, global []types.AssetRequirement, parts []types.TemplatePart) (*types.VideoTemplate, error)
	Get(dbc dbctx.Context, id uuid.UUID) (*types.VideoTemplate, error)
	List(dbc dbctx.Context) ([]*types.VideoTemplate, error)
}

type templateService struct {
	log  *logger.Logger
	repo repos.TemplateRepo
}

func NewTemplateService(baseLog *logger.Logger, repo repos.TemplateRepo) TemplateService {
	return &templateService{
		log:  baseLog.With("service", "TemplateService"),
		repo: repo,
	}
}

func (s *templateService) Create(dbc dbctx.Context, name, templateType string, global []types.AssetRequirement, parts []types.TemplatePart) (*types.VideoTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", apperrors.ErrInvalidArgument)
	}
	for i, r := range global {
		if !r.Valid() {
			return nil, fmt.Errorf("global element %d is malformed: %w", i, apperrors.ErrInvalidArgument)
		}
	}
	for _, p := range parts {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("part name is required: %w", apperrors.ErrInvalidArgument)
		}
		for i, r := range p.RequiredAssets {
			if !r.Valid() {
				return nil, fmt.Errorf("part %q requirement %d is malformed: %w", p.Name, i, apperrors.ErrInvalidArgument)
			}
		}
	}

	row := &types.VideoTemplate{
		ID:             uuid.New(),
		Name:           name,
		TemplateType:   strings.TrimSpace(templateType),
		GlobalElements: content.MarshalRequirements(global),
		Parts:          content.MarshalParts(parts),
	}
	created, err := s.repo.Create(dbc, []*types.VideoTemplate{row})
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	s.log.Info("Template created", "template_id", row.ID, "name", name)
	return created[0], nil
}

func (s *templateService) Get(dbc dbctx.Context, id uuid.UUID) (*types.VideoTemplate, error) {
	row, err := s.repo.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("template %s: %w", id, apperrors.ErrNotFound)
	}
	return row, nil
}

func (s *templateService) List(dbc dbctx.Context) ([]*types.VideoTemplate, error) {
	return s.repo.List(dbc)
}
