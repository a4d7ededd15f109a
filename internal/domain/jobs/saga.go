package jobs

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	SagaStatusRunning      = "running"
	SagaStatusSucceeded    = "succeeded"
	SagaStatusFailed       = "failed"
	SagaStatusCompensating = "compensating"
	SagaStatusCompensated  = "compensated"
)

const (
	SagaActionAssetDeleteIDs = "asset_delete_ids"
	SagaActionMediaDeleteKey = "media_delete_key"
)

// GenerationSaga is the durable ledger header for one multi-step
// asset-generation run: bulk insert + external trigger + project status
// update. It links the steps so partial failures can be compensated instead
// of leaving orphan rows behind.
type GenerationSaga struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	// running|succeeded|failed|compensating|compensated
	Status string `gorm:"column:status;not null;index" json:"status"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now();index" json:"updated_at"`
}

func (GenerationSaga) TableName() string { return "generation_sagas" }

// GenerationSagaAction is a durable compensation record for one side effect.
// Actions are appended inside the same DB transaction that commits the state
// they would undo.
type GenerationSagaAction struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SagaID uuid.UUID `gorm:"type:uuid;not null;index:idx_generation_saga_action_seq,unique,priority:1" json:"saga_id"`
	Seq    int64     `gorm:"column:seq;type:bigint;not null;index:idx_generation_saga_action_seq,unique,priority:2" json:"seq"`
	// asset_delete_ids|media_delete_key
	Kind    string         `gorm:"column:kind;not null;index" json:"kind"`
	Payload datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload"`
	// pending|done|failed
	Status string `gorm:"column:status;not null;index" json:"status"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now();index" json:"updated_at"`
}

func (GenerationSagaAction) TableName() string { return "generation_saga_actions" }
