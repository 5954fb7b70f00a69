package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	GroupStatusActive   = "ACTIVE"
	GroupStatusInactive = "INACTIVE"
)

// Group is a self-formed team inside a batch. MemberCount tracks the
// current number of GroupMember rows and is only updated in the same
// transaction as the membership write; the maximum size is configuration,
// not a column.
type Group struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Tags        datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"tags"`
	BatchID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"batch_id"`
	BatchName   string         `gorm:"size:100" json:"batch_name"`
	MemberCount int            `gorm:"not null;default:0" json:"member_count"`
	LeaderID    uuid.UUID      `gorm:"type:uuid;not null" json:"leader_id"`
	Status      string         `gorm:"size:20;default:'ACTIVE'" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Members     []GroupMember  `gorm:"foreignKey:GroupID" json:"members,omitempty"`
}
