package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ApplicationStatusPending  = "PENDING"
	ApplicationStatusApproved = "APPROVED"
	ApplicationStatusRejected = "REJECTED"
)

// JoinApplication is a request to join a group. Approved and rejected rows
// are kept as history; the partial unique index only covers PENDING rows,
// so a user can have at most one outstanding application while still being
// able to apply again after a rejection.
type JoinApplication struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_join_applications_user_pending,where:status = 'PENDING'" json:"user_id"`
	GroupID   uuid.UUID `gorm:"type:uuid;not null;index" json:"group_id"`
	GroupName string    `gorm:"size:100" json:"group_name"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Reason    string    `gorm:"size:500;not null" json:"reason"`
	Status    string    `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
