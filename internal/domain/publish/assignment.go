package publish

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AssignmentTypeIndividual = "individual"
	AssignmentTypeTheme      = "theme"
	AssignmentTypeGeneral    = "general"
)

const (
	AssignmentStatusPending   = "pending"
	AssignmentStatusPublished = "published"
	AssignmentStatusArchived  = "archived"
)

func ValidAssignmentType(t string) bool {
	switch t {
	case AssignmentTypeIndividual, AssignmentTypeTheme, AssignmentTypeGeneral:
		return true
	}
	return false
}

// VideoAssignment binds a rendered video to its audience: a single child,
// a theme cohort, or everyone. Exactly one of ChildID/Theme is set for
// individual/theme assignments; general uses neither.
type VideoAssignment struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VideoID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"video_id"`
	ChildID        *uuid.UUID `gorm:"type:uuid;column:child_id;index" json:"child_id,omitempty"`
	Theme          *string    `gorm:"column:theme;index" json:"theme,omitempty"`
	AssignmentType string     `gorm:"column:assignment_type;not null;index" json:"assignment_type"`
	PublishDate    time.Time  `gorm:"column:publish_date;not null;index" json:"publish_date"`
	Status         string     `gorm:"column:status;not null;default:'pending';index" json:"status"`
	AssignedBy     *uuid.UUID `gorm:"type:uuid;column:assigned_by" json:"assigned_by,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (VideoAssignment) TableName() string { return "video_assignments" }
