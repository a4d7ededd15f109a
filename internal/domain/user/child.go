package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Child is a child profile owned by a parent account. PrimaryInterest is the
// theme used to pick personalized imagery for that child's videos.
type Child struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ParentID        uuid.UUID `gorm:"type:uuid;not null;index" json:"parent_id"`
	Name            string    `gorm:"not null;column:name" json:"name"`
	Age             int       `gorm:"column:age" json:"age"`
	PrimaryInterest string    `gorm:"column:primary_interest" json:"primary_interest"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Child) TableName() string { return "children" }
