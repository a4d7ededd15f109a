package jobs

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	JobStatusPending    = "pending"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// CancelledByAdminMessage is the fixed error_message written by an admin
// cancel action.
const CancelledByAdminMessage = "Cancelled by admin"

// CanRetryJob: only failed jobs are retryable; completed is terminal.
func CanRetryJob(status string) bool {
	return status == JobStatusFailed
}

// CanCancelJob: cancel is valid while the job has not reached a terminal state.
func CanCancelJob(status string) bool {
	return status == JobStatusPending || status == JobStatusInProgress
}

// RenderSegment describes one segment handed to the external renderer.
type RenderSegment struct {
	Index        int        `json:"index"`
	Kind         string     `json:"kind"`
	ImageAssetID *uuid.UUID `json:"image_asset_id,omitempty"`
	AudioAssetID *uuid.UUID `json:"audio_asset_id,omitempty"`
	ImageURL     string     `json:"image_url,omitempty"`
	AudioURL     string     `json:"audio_url,omitempty"`
	Duration     float64    `json:"duration,omitempty"`
}

// RenderJob is one submission to the external video renderer. All recovery
// is manual: a failed job stays failed until an admin retries it.
type RenderJob struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ChildID      *uuid.UUID `gorm:"type:uuid;column:child_id;index" json:"child_id,omitempty"`
	ProjectID    *uuid.UUID `gorm:"type:uuid;column:project_id;index" json:"project_id,omitempty"`
	TemplateID   *uuid.UUID `gorm:"type:uuid;column:template_id" json:"template_id,omitempty"`
	Status       string     `gorm:"column:status;not null;default:'pending';index" json:"status"`
	StartedAt    *time.Time `gorm:"column:started_at" json:"started_at,omitempty"`
	CompletedAt  *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	HeartbeatAt  *time.Time `gorm:"column:heartbeat_at;index" json:"heartbeat_at,omitempty"`
	ErrorMessage *string    `gorm:"column:error_message" json:"error_message,omitempty"`
	OutputURL    *string    `gorm:"column:output_url" json:"output_url,omitempty"`
	// Segments is an ordered JSON array of RenderSegment.
	Segments datatypes.JSON `gorm:"column:segments;type:jsonb" json:"segments"`

	CreatedAt time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now();index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (RenderJob) TableName() string { return "video_generation_jobs" }

func (j *RenderJob) ParseSegments() ([]RenderSegment, error) {
	if len(j.Segments) == 0 {
		return nil, nil
	}
	var segs []RenderSegment
	if err := json.Unmarshal(j.Segments, &segs); err != nil {
		return nil, err
	}
	return segs, nil
}

func MarshalSegments(segs []RenderSegment) datatypes.JSON {
	b, err := json.Marshal(segs)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(b)
}
