package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Parent is the account that owns one or more child profiles. Assignments
// target children, never parents directly.
type Parent struct {
	ID    uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Name  string    `gorm:"not null;column:name" json:"name"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Parent) TableName() string { return "parents" }
