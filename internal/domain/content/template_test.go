package content

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAssetRequirement_Valid(t *testing.T) {
	id := uuid.New()
	cases := []struct {
		name string
		req  AssetRequirement
		want bool
	}{
		{"specific with id", AssetRequirement{Kind: RequirementSpecific, SpecificAssetID: &id}, true},
		{"specific without id", AssetRequirement{Kind: RequirementSpecific}, false},
		{"class with tag", AssetRequirement{Kind: RequirementByClass, AssetClass: "background_music"}, true},
		{"class without tag", AssetRequirement{Kind: RequirementByClass}, false},
		{"unknown kind", AssetRequirement{Kind: "fuzzy"}, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, tc.req.Valid(), tc.name)
	}
}

func TestRequirements_FlattensGlobalThenParts(t *testing.T) {
	id := uuid.New()
	tpl := VideoTemplate{
		GlobalElements: MarshalRequirements([]AssetRequirement{
			{Kind: RequirementByClass, AssetClass: "background_music"},
		}),
		Parts: MarshalParts([]TemplatePart{
			{Name: "intro", RequiredAssets: []AssetRequirement{
				{Kind: RequirementSpecific, SpecificAssetID: &id},
			}},
			{Name: "outro", RequiredAssets: []AssetRequirement{
				{Kind: RequirementByClass, AssetClass: "outro_jingle"},
			}},
		}),
	}

	reqs, err := tpl.Requirements()
	require.NoError(t, err)
	require.Len(t, reqs, 3)
	require.Equal(t, "background_music", reqs[0].AssetClass, "global element comes first")
	require.NotNil(t, reqs[1].SpecificAssetID)
	require.Equal(t, id, *reqs[1].SpecificAssetID)

	parted, err := tpl.PartRequirements()
	require.NoError(t, err)
	require.Len(t, parted, 3)
	require.Empty(t, parted[0].Part, "global element has no part")
	require.Equal(t, "intro", parted[1].Part)
	require.Equal(t, "outro", parted[2].Part)
}

func TestRequirements_EmptyTemplate(t *testing.T) {
	var tpl VideoTemplate
	reqs, err := tpl.Requirements()
	require.NoError(t, err)
	require.Empty(t, reqs)
}

func TestRequirements_MalformedJSON(t *testing.T) {
	tpl := VideoTemplate{GlobalElements: []byte(`{not json`)}
	_, err := tpl.Requirements()
	require.Error(t, err)
}
