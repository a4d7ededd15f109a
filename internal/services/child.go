package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/luminakids/storyreel-backend/internal/data/repos"
	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
	apperrors "github.com/luminakids/storyreel-backend/internal/platform/errors"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
)

type ChildService interface {
	CreateParent(dbc dbctx.Context, email string, name string) (*types.Parent, error)
	ListParents(dbc dbctx.Context) ([]*types.Parent, error)
	Create(dbc dbctx.Context, parentID uuid.UUID, name string, age int, primaryInterest string) (*types.Child, error)
	Get(dbc dbctx.Context, id uuid.UUID) (*types.Child, error)
	List(dbc dbctx.Context) ([]*types.Child, error)
	// ListByTheme returns children whose primary interest matches the theme,
	// used to fan out theme-targeted assignments.
	ListByTheme(dbc dbctx.Context, theme string) ([]*types.Child, error)
	// PersonalizedImage picks the newest approved image matching the child's
	// interest and the requested safe zone. Returns nil when nothing fits.
	PersonalizedImage(dbc dbctx.Context, childID uuid.UUID, safeZone string) (*types.Asset, error)
}

type childService struct {
	log      *logger.Logger
	parents  repos.ParentRepo
	children repos.ChildRepo
	assets   repos.AssetRepo
}

func NewChildService(baseLog *logger.Logger, parents repos.ParentRepo, children repos.ChildRepo, assets repos.AssetRepo) ChildService {
	return &childService{
		log:      baseLog.With("service", "ChildService"),
		parents:  parents,
		children: children,
		assets:   assets,
	}
}

func (s *childService) CreateParent(dbc dbctx.Context, email string, name string) (*types.Parent, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("valid email required: %w", apperrors.ErrInvalidArgument)
	}
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", apperrors.ErrInvalidArgument)
	}
	existing, err := s.parents.GetByEmail(dbc, email)
	if err != nil {
		return nil, fmt.Errorf("lookup parent: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email %s already registered: %w", email, apperrors.ErrInvalidArgument)
	}
	created, err := s.parents.Create(dbc, []*types.Parent{{
		ID:    uuid.New(),
		Email: email,
		Name:  name,
	}})
	if err != nil {
		return nil, fmt.Errorf("create parent: %w", err)
	}
	return created[0], nil
}

func (s *childService) ListParents(dbc dbctx.Context) ([]*types.Parent, error) {
	return s.parents.List(dbc)
}

func (s *childService) Create(dbc dbctx.Context, parentID uuid.UUID, name string, age int, primaryInterest string) (*types.Child, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", apperrors.ErrInvalidArgument)
	}
	if parentID == uuid.Nil {
		return nil, fmt.Errorf("parent id required: %w", apperrors.ErrInvalidArgument)
	}
	parent, err := s.parents.GetByID(dbc, parentID)
	if err != nil {
		return nil, fmt.Errorf("lookup parent: %w", err)
	}
	if parent == nil {
		return nil, fmt.Errorf("parent %s: %w", parentID, apperrors.ErrNotFound)
	}
	row := &types.Child{
		ID:              uuid.New(),
		ParentID:        parentID,
		Name:            name,
		Age:             age,
		PrimaryInterest: strings.TrimSpace(primaryInterest),
	}
	created, err := s.children.Create(dbc, []*types.Child{row})
	if err != nil {
		return nil, fmt.Errorf("create child: %w", err)
	}
	return created[0], nil
}

func (s *childService) Get(dbc dbctx.Context, id uuid.UUID) (*types.Child, error) {
	row, err := s.children.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("child %s: %w", id, apperrors.ErrNotFound)
	}
	return row, nil
}

func (s *childService) List(dbc dbctx.Context) ([]*types.Child, error) {
	return s.children.List(dbc)
}

func (s *childService) ListByTheme(dbc dbctx.Context, theme string) ([]*types.Child, error) {
	return s.children.ListByTheme(dbc, theme)
}

func (s *childService) PersonalizedImage(dbc dbctx.Context, childID uuid.UUID, safeZone string) (*types.Asset, error) {
	child, err := s.Get(dbc, childID)
	if err != nil {
		return nil, err
	}
	if child.PrimaryInterest == "" {
		return nil, nil
	}
	return s.assets.FindApprovedByThemeAndSafeZone(dbc, child.PrimaryInterest, safeZone)
}
