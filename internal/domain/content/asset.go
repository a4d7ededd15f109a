package content

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	AssetTypeImage  = "image"
	AssetTypeAudio  = "audio"
	AssetTypeVideo  = "video"
	AssetTypePrompt = "prompt"
)

const (
	AssetStatusPending    = "pending"
	AssetStatusGenerating = "generating"
	AssetStatusCompleted  = "completed"
	AssetStatusApproved   = "approved"
	AssetStatusRejected   = "rejected"
)

// CanApproveAsset reports whether an asset in the given status may be
// approved. Approving an already-approved asset is allowed (idempotent);
// rejected assets stay rejected.
func CanApproveAsset(status string) bool {
	switch status {
	case AssetStatusCompleted, AssetStatusApproved, AssetStatusPending, AssetStatusGenerating:
		return true
	}
	return false
}

// CanRejectAsset mirrors CanApproveAsset for the reject action.
func CanRejectAsset(status string) bool {
	return status != "" // any non-terminal state plus idempotent re-reject
}

type Asset struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProjectID *uuid.UUID `gorm:"type:uuid;column:project_id;index" json:"project_id,omitempty"`
	Type      string     `gorm:"column:type;not null;index" json:"type"`
	Prompt    string     `gorm:"column:prompt;type:text" json:"prompt"`
	FileURL   string     `gorm:"column:file_url" json:"file_url,omitempty"`
	Status    string     `gorm:"column:status;not null;default:'pending';index" json:"status"`
	// Metadata is a schemaless bag: theme, safe zones, audio class,
	// template context, aspect ratio, per-project index, and so on.
	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata"`

	CreatedAt time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Asset) TableName() string { return "assets" }

// AssetMetadata is the typed view of the metadata bag. Only the fields the
// pipeline reads are declared; unknown keys round-trip untouched in the raw
// JSON column.
type AssetMetadata struct {
	Theme        string       `json:"theme,omitempty"`
	Template     string       `json:"template,omitempty"`
	AudioClass   string       `json:"audio_class,omitempty"`
	AspectRatio  string       `json:"aspect_ratio,omitempty"`
	Category     string       `json:"category,omitempty"`
	Index        int          `json:"index,omitempty"`
	TargetLetter string       `json:"target_letter,omitempty"`
	Duration     float64      `json:"duration,omitempty"`
	Review       *AssetReview `json:"review,omitempty"`
}

// AssetReview carries reviewer annotations, notably which safe zones the
// image was approved for.
type AssetReview struct {
	SafeZone   []string `json:"safe_zone,omitempty"`
	ReviewedBy string   `json:"reviewed_by,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

func (a *Asset) ParseMetadata() (AssetMetadata, error) {
	var md AssetMetadata
	if len(a.Metadata) == 0 {
		return md, nil
	}
	err := json.Unmarshal(a.Metadata, &md)
	return md, err
}

func MarshalAssetMetadata(md AssetMetadata) datatypes.JSON {
	b, err := json.Marshal(md)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(b)
}
