package content

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RequirementSpecific = "specific"
	RequirementByClass  = "class"
)

// AssetRequirement is one element-requirement descriptor from a template.
// Exactly one resolution strategy applies: a pinned asset id, or a late-bound
// class lookup against approved assets.
type AssetRequirement struct {
	Kind            string     `json:"asset_type"`
	SpecificAssetID *uuid.UUID `json:"specific_asset_id,omitempty"`
	AssetClass      string     `json:"asset_class,omitempty"`
	Description     string     `json:"description,omitempty"`
}

func (r AssetRequirement) Valid() bool {
	switch r.Kind {
	case RequirementSpecific:
		return r.SpecificAssetID != nil && *r.SpecificAssetID != uuid.Nil
	case RequirementByClass:
		return r.AssetClass != ""
	}
	return false
}

// TemplatePart groups the requirements of one segment of the video.
type TemplatePart struct {
	Name           string             `json:"name"`
	RequiredAssets []AssetRequirement `json:"required_assets"`
}

type VideoTemplate struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name         string    `gorm:"not null;column:name" json:"name"`
	TemplateType string    `gorm:"column:template_type;index" json:"template_type"`
	// GlobalElements is an ordered JSON array of AssetRequirement.
	GlobalElements datatypes.JSON `gorm:"column:global_elements;type:jsonb" json:"global_elements"`
	// Parts is an ordered JSON array of TemplatePart.
	Parts datatypes.JSON `gorm:"column:parts;type:jsonb" json:"parts"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (VideoTemplate) TableName() string { return "video_templates" }

// Requirements flattens global elements followed by each part's required
// assets, preserving declaration order.
func (t *VideoTemplate) Requirements() ([]AssetRequirement, error) {
	var out []AssetRequirement
	if len(t.GlobalElements) > 0 {
		var global []AssetRequirement
		if err := json.Unmarshal(t.GlobalElements, &global); err != nil {
			return nil, fmt.Errorf("parse global_elements: %w", err)
		}
		out = append(out, global...)
	}
	if len(t.Parts) > 0 {
		var parts []TemplatePart
		if err := json.Unmarshal(t.Parts, &parts); err != nil {
			return nil, fmt.Errorf("parse parts: %w", err)
		}
		for _, p := range parts {
			out = append(out, p.RequiredAssets...)
		}
	}
	return out, nil
}

// PartRequirement pairs a requirement with the part it was declared in.
// Global elements carry an empty part name.
type PartRequirement struct {
	Part        string           `json:"part,omitempty"`
	Requirement AssetRequirement `json:"requirement"`
}

// PartRequirements flattens like Requirements but keeps part attribution.
func (t *VideoTemplate) PartRequirements() ([]PartRequirement, error) {
	var out []PartRequirement
	if len(t.GlobalElements) > 0 {
		var global []AssetRequirement
		if err := json.Unmarshal(t.GlobalElements, &global); err != nil {
			return nil, fmt.Errorf("parse global_elements: %w", err)
		}
		for _, r := range global {
			out = append(out, PartRequirement{Requirement: r})
		}
	}
	if len(t.Parts) > 0 {
		var parts []TemplatePart
		if err := json.Unmarshal(t.Parts, &parts); err != nil {
			return nil, fmt.Errorf("parse parts: %w", err)
		}
		for _, p := range parts {
			for _, r := range p.RequiredAssets {
				out = append(out, PartRequirement{Part: p.Name, Requirement: r})
			}
		}
	}
	return out, nil
}

func MarshalRequirements(reqs []AssetRequirement) datatypes.JSON {
	b, err := json.Marshal(reqs)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(b)
}

func MarshalParts(parts []TemplatePart) datatypes.JSON {
	b, err := json.Marshal(parts)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(b)
}
