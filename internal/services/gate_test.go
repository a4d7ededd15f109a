package services

import (
	"testing"

	"github.com/google/uuid"

	types "github.com/luminakids/storyreel-backend/internal/domain"
)

func TestAllResolved_EmptyIsNotReady(t *testing.T) {
	if AllResolved(nil) {
		t.Fatalf("empty requirement set must not be ready")
	}
	if AllResolved([]RequirementResolution{}) {
		t.Fatalf("empty requirement set must not be ready")
	}
}

func TestAllResolved_SingleUnresolvedFlipsReadiness(t *testing.T) {
	id := uuid.New()
	resolved := RequirementResolution{
		Requirement: types.AssetRequirement{Kind: types.RequirementSpecific, SpecificAssetID: &id},
		Resolved:    true,
		AssetID:     &id,
	}
	unresolved := RequirementResolution{
		Requirement: types.AssetRequirement{Kind: types.RequirementByClass, AssetClass: "outro_jingle"},
		Reason:      `no approved asset with class "outro_jingle"`,
	}

	if !AllResolved([]RequirementResolution{resolved}) {
		t.Fatalf("fully resolved set should be ready")
	}
	if AllResolved([]RequirementResolution{resolved, unresolved}) {
		t.Fatalf("one unresolved requirement must block readiness")
	}
}
