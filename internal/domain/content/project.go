package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProjectStatusPlanning   = "planning"
	ProjectStatusGenerating = "generating"
	ProjectStatusReviewing  = "reviewing"
	ProjectStatusApproved   = "approved"
	ProjectStatusVideoReady = "video_ready"
)

// projectStatusOrder defines the forward-only lifecycle. A transition is
// legal only when it moves strictly forward in this order.
var projectStatusOrder = map[string]int{
	ProjectStatusPlanning:   0,
	ProjectStatusGenerating: 1,
	ProjectStatusReviewing:  2,
	ProjectStatusApproved:   3,
	ProjectStatusVideoReady: 4,
}

func ValidProjectStatus(s string) bool {
	_, ok := projectStatusOrder[s]
	return ok
}

func CanAdvanceProject(from, to string) bool {
	f, okF := projectStatusOrder[from]
	t, okT := projectStatusOrder[to]
	return okF && okT && t > f
}

type ContentProject struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title     string    `gorm:"not null;column:title" json:"title"`
	Theme     string    `gorm:"not null;column:theme;index" json:"theme"`
	TargetAge string    `gorm:"column:target_age" json:"target_age"`
	// Duration of the finished video in seconds.
	Duration int    `gorm:"column:duration;not null;default:60" json:"duration"`
	Status   string `gorm:"column:status;not null;default:'planning';index" json:"status"`

	CreatedAt time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ContentProject) TableName() string { return "content_projects" }
