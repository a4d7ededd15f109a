package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/luminakids/storyreel-backend/internal/data/repos"
	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
	apperrors "github.com/luminakids/storyreel-backend/internal/platform/errors"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
)

// RequirementResolution is the per-requirement outcome of an approval gate
// check. Resolved means an approved asset satisfies the requirement.
type RequirementResolution struct {
	Requirement types.AssetRequirement `json:"requirement"`
	Part        string                 `json:"part"`
	Resolved    bool                   `json:"resolved"`
	AssetID     *uuid.UUID             `json:"asset_id,omitempty"`
	Reason      string                 `json:"reason,omitempty"`
}

// GateService decides whether a template's requirements are all satisfied by
// approved assets. Video assembly must not start until IsReady reports true.
type GateService interface {
	Validate(dbc dbctx.Context, templateID uuid.UUID) ([]RequirementResolution, error)
	// IsReady is true only when the template has at least one requirement
	// and every requirement resolves to an approved asset.
	IsReady(dbc dbctx.Context, templateID uuid.UUID) (bool, []RequirementResolution, error)
}

type gateService struct {
	log       *logger.Logger
	templates repos.TemplateRepo
	assets    repos.AssetRepo
}

func NewGateService(baseLog *logger.Logger, templates repos.TemplateRepo, assets repos.AssetRepo) GateService {
	return &gateService{
		log:       baseLog.With("service", "GateService"),
		templates: templates,
		assets:    assets,
	}
}

func (s *gateService) Validate(dbc dbctx.Context, templateID uuid.UUID) ([]RequirementResolution, error) {
	tpl, err := s.templates.GetByID(dbc, templateID)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, fmt.Errorf("template %s: %w", templateID, apperrors.ErrNotFound)
	}

	reqs, err := tpl.PartRequirements()
	if err != nil {
		return nil, fmt.Errorf("template %s requirements: %w", templateID, err)
	}

	out := make([]RequirementResolution, 0, len(reqs))
	for _, pr := range reqs {
		res := RequirementResolution{Requirement: pr.Requirement, Part: pr.Part}
		if !pr.Requirement.Valid() {
			res.Reason = fmt.Sprintf("malformed requirement kind %q", pr.Requirement.Kind)
			out = append(out, res)
			continue
		}
		s.resolve(dbc, &res)
		out = append(out, res)
	}
	return out, nil
}

func (s *gateService) resolve(dbc dbctx.Context, res *RequirementResolution) {
	switch res.Requirement.Kind {
	case types.RequirementSpecific:
		id := *res.Requirement.SpecificAssetID
		asset, err := s.assets.GetByID(dbc, id)
		if err != nil {
			res.Reason = err.Error()
			return
		}
		if asset == nil {
			res.Reason = fmt.Sprintf("asset %s not found", id)
			return
		}
		if asset.Status != types.AssetStatusApproved {
			res.Reason = fmt.Sprintf("asset %s is %s, not approved", id, asset.Status)
			return
		}
		res.Resolved = true
		res.AssetID = &asset.ID
	case types.RequirementByClass:
		asset, err := s.assets.FindApprovedByClass(dbc, res.Requirement.AssetClass)
		if err != nil {
			res.Reason = err.Error()
			return
		}
		if asset == nil {
			res.Reason = fmt.Sprintf("no approved asset with class %q", res.Requirement.AssetClass)
			return
		}
		res.Resolved = true
		res.AssetID = &asset.ID
	default:
		res.Reason = fmt.Sprintf("unknown requirement kind %q", res.Requirement.Kind)
	}
}

func (s *gateService) IsReady(dbc dbctx.Context, templateID uuid.UUID) (bool, []RequirementResolution, error) {
	resolutions, err := s.Validate(dbc, templateID)
	if err != nil {
		return false, nil, err
	}
	return AllResolved(resolutions), resolutions, nil
}

// AllResolved reports whether the set is non-empty and fully resolved. An
// empty requirement list means the template declares nothing to assemble
// from, which is never ready.
func AllResolved(resolutions []RequirementResolution) bool {
	if len(resolutions) == 0 {
		return false
	}
	for _, r := range resolutions {
		if !r.Resolved {
			return false
		}
	}
	return true
}
